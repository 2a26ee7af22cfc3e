package model

import (
	"time"

	"gorm.io/gorm"
)

// Pinory 用户收藏的地点（带笔记的"记忆点"）
// 本服务只关心 ID、OwnerID 和默认可见性，内容字段按原样存取
// 地图渲染、图片等不在本服务范围内

type Pinory struct {
	ID         uint           `gorm:"primaryKey"`
	OwnerID    uint           `gorm:"not null;index;comment:所有者用户ID"`
	Title      string         `gorm:"type:varchar(128);not null;comment:标题"`
	Note       string         `gorm:"type:text;comment:笔记内容"`
	Latitude   float64        `gorm:"comment:纬度"`
	Longitude  float64        `gorm:"comment:经度"`
	Address    string         `gorm:"type:varchar(255);comment:地址描述"`
	Visibility string         `gorm:"type:varchar(32);default:'private';comment:默认可见性"`
	CreatedAt  time.Time      `gorm:"comment:创建时间"`
	UpdatedAt  time.Time      `gorm:"comment:更新时间"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Pinory) TableName() string { return "pinory" }
