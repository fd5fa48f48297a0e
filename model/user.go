package model

import "time"

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;size:50" json:"name"`
	Email        string    `gorm:"unique;not null;size:50" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	CreatedAt    time.Time `json:"created_at"`
}
