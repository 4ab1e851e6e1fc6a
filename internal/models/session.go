package models

import "time"

// Session stores one browser session's login state.
// The row is created on login and deleted on logout (full invalidation).
type Session struct {
	ID        string `gorm:"primaryKey;size:36"` // UUID
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
