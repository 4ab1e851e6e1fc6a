package models

import "time"

// User represents a registered account.
// Password is stored as entered; login matches it verbatim.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Password  string `gorm:"size:64;not null"`
	Email     string `gorm:"size:128"`
	CreatedAt time.Time
}
