package models

import "gorm.io/gorm"

// User is an account holder. Passwords are generated server-side at
// registration and emailed, never chosen by the user.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone    string `gorm:"size:50" json:"phone"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	IsAdmin  bool   `gorm:"not null;default:false" json:"isAdmin"`
}
