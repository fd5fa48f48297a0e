package model

// Category 分类模型
type Category struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	UserID      uint64 `gorm:"not null;index" json:"user_id"`
	Description string `gorm:"not null;size:100" json:"description"`
	User        User   `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联用户
}
