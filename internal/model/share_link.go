package model

import "time"

// 分享可见性
const (
	VisibilityPrivate         = "private"
	VisibilityFriends         = "friends"
	VisibilitySelectedFriends = "selected_friends"
	VisibilityPublic          = "public"
)

// ValidVisibility 校验可见性取值是否合法
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPrivate, VisibilityFriends, VisibilitySelectedFriends, VisibilityPublic:
		return true
	}
	return false
}

// ShareLink 分享链接
// ShareSlug 全局唯一，是对外URL中的不可猜测令牌
// Active 取值只有 true 或 NULL：uk_share_active 唯一索引由此保证同一
// (PinoryID, CreatedBy) 最多一条有效记录，而MySQL唯一索引不约束NULL，
// 任意多条已撤销记录可以共存。并发重复创建在存储层被拒绝
// 撤销（Active置NULL + RevokedAt）保留记录用于审计；删除为物理删除释放slug
// 注意：不使用gorm软删除，否则唯一索引会占住已删除的slug

type ShareLink struct {
	ID         uint       `gorm:"primaryKey"`
	PinoryID   uint       `gorm:"not null;uniqueIndex:uk_share_active,priority:1;comment:被分享的pinory ID"`
	CreatedBy  uint       `gorm:"not null;uniqueIndex:uk_share_active,priority:2;comment:创建者(内容所有者)用户ID"`
	ShareSlug  string     `gorm:"type:varchar(32);not null;uniqueIndex;comment:分享令牌"`
	Visibility string     `gorm:"type:varchar(32);not null;default:'friends';comment:可见性"`
	Active     *bool      `gorm:"column:is_active;uniqueIndex:uk_share_active,priority:3;comment:有效标记，true或NULL"`
	ExpiresAt  *time.Time `gorm:"comment:过期时间"`
	RevokedAt  *time.Time `gorm:"comment:撤销时间"`
	ViewCount  int64      `gorm:"not null;default:0;comment:浏览次数"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`

	// 关联的pinory，Resolve时预加载
	Pinory *Pinory `gorm:"foreignKey:PinoryID"`
}

func (ShareLink) TableName() string { return "share_link" }

// IsActive 判断分享是否有效（未撤销）
func (s *ShareLink) IsActive() bool {
	return s.Active != nil && *s.Active
}

// IsExpired 判断在给定时刻是否已过期（未设置过期时间视为永不过期）
func (s *ShareLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
