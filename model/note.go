package model

import "time"

// Note 笔记模型
type Note struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	CategoryID  uint64    `gorm:"not null;index" json:"category_id"`
	Description string    `gorm:"not null;size:200" json:"description"`
	Text        string    `gorm:"not null;size:500" json:"text"`
	Photo       string    `gorm:"not null;size:64;default:default.png" json:"photo"`
	CreatedAt   time.Time `json:"created_at"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`         // 关联用户
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}
