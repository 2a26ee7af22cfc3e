package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pinory-system/internal/model"

	goredis "github.com/redis/go-redis/v9"
)

// 分享缓存相关常量
const (
	ShareCacheKeyPrefix = "pinory:share:" // 分享记录缓存key前缀
)

// 缓存TTL：浏览计数允许在此窗口内滞后
var ShareCacheTTL = 5 * time.Minute

// SetShareCacheTTL 设置分享缓存TTL
func SetShareCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		ShareCacheTTL = ttl
	}
}

func shareKey(slug string) string {
	return ShareCacheKeyPrefix + slug
}

// CacheShare 缓存分享记录（含关联的pinory快照）
func CacheShare(link *model.ShareLink) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	if link == nil {
		return fmt.Errorf("分享记录为空")
	}

	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("序列化分享记录失败: %w", err)
	}

	if err := Set(shareKey(link.ShareSlug), data, ShareCacheTTL); err != nil {
		return fmt.Errorf("缓存分享记录失败: %w", err)
	}
	return nil
}

// GetCachedShare 读取缓存的分享记录，未命中返回 (nil, nil)
func GetCachedShare(slug string) (*model.ShareLink, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	data, err := Get(shareKey(slug))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取分享缓存失败: %w", err)
	}

	var link model.ShareLink
	if err := json.Unmarshal([]byte(data), &link); err != nil {
		// 反序列化失败时删除坏数据，回落数据库
		_ = Del(shareKey(slug))
		return nil, fmt.Errorf("解析分享缓存失败: %w", err)
	}
	return &link, nil
}

// InvalidateShare 删除分享缓存（撤销/删除后调用）
func InvalidateShare(slug string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return Del(shareKey(slug))
}
