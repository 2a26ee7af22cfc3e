package model

import (
	"time"

	"gorm.io/gorm"
)

// 好友关系状态
const (
	FriendshipStatusNone     = "none" // 无关系（仅作为查询结果，不落库）
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusBlocked  = "blocked"
)

// Friendship 好友关系
// 一对用户之间最多只有一条有效记录，查询时必须双向匹配
// （requester=A,addressee=B 或 requester=B,addressee=A）
// Status: pending/accepted/blocked，blocked为终态，阻止后续请求

type Friendship struct {
	ID          uint           `gorm:"primaryKey"`
	RequesterID uint           `gorm:"not null;index;comment:发起方用户ID"`
	AddresseeID uint           `gorm:"not null;index;comment:接收方用户ID"`
	Status      string         `gorm:"type:varchar(32);default:'pending';comment:关系状态"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Friendship) TableName() string { return "friendship" }

// Involves 判断用户是否为关系双方之一
func (f *Friendship) Involves(userID uint) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}
