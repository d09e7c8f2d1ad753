package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset holds a single-use token mailed to a user who forgot
// their password. Tokens expire and are marked used after a reset.
type PasswordReset struct {
	gorm.Model
	UserID    uint      `gorm:"not null" json:"user_id"`
	Email     string    `gorm:"size:100;index" json:"email"`
	Token     string    `gorm:"size:64;index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
}
