package models

import "time"

// Board 表示一篇帖子，归属于创建它的用户
// 归属关系在创建后不会变更
type Board struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
