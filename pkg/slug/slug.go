// Package slug 生成分享链接使用的不可猜测令牌
package slug

import (
	"crypto/rand"
	"fmt"

	"pinory-system/internal/errs"
)

// URL安全字符集（62个字符，10位长度约59比特熵）
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength 默认slug长度
const DefaultLength = 10

// DefaultMaxAttempts 唯一性检查的最大重试次数
const DefaultMaxAttempts = 5

// Generator slug生成器
type Generator struct {
	length      int
	maxAttempts int
}

// NewGenerator 创建生成器，length/maxAttempts非正时使用默认值
func NewGenerator(length, maxAttempts int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{length: length, maxAttempts: maxAttempts}
}

// Generate 生成一个随机slug
// 使用crypto/rand保证不可预测，拒绝采样避免取模偏差
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	// 256 - 256%62 = 248，大于等于248的字节丢弃重采
	const maxByte = 248
	raw := make([]byte, g.length*2)
	i := 0
	for i < g.length {
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("read random bytes failed: %w", err)
		}
		for _, b := range raw {
			if b >= maxByte {
				continue
			}
			buf[i] = alphabet[int(b)%len(alphabet)]
			i++
			if i == g.length {
				break
			}
		}
	}
	return string(buf), nil
}

// GenerateUnique 生成唯一slug
// existsFn 查询slug是否已被占用；全部重试碰撞时返回 errs.ErrSlugExhausted
// 检查与落库之间仍有竞争窗口，最终以存储层唯一索引为准
func (g *Generator) GenerateUnique(existsFn func(slug string) (bool, error)) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		s, err := g.Generate()
		if err != nil {
			return "", err
		}
		exists, err := existsFn(s)
		if err != nil {
			return "", fmt.Errorf("check slug existence failed: %w", err)
		}
		if !exists {
			return s, nil
		}
	}
	return "", errs.ErrSlugExhausted
}
