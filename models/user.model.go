package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values recognised across the platform
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	FirstName string     `json:"first_name" gorm:"default:''"`
	LastName  string     `json:"last_name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'student'"` // student, instructor, admin
	Bio       string     `json:"bio" gorm:"type:text;default:''"`
	Avatar    string     `json:"avatar" gorm:"default:''"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login"`
}
