package models

import "gorm.io/gorm"

// Category groups cars in the catalogue (SUV, Sedan, Luxury, ...).
type Category struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
