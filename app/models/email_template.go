package models

import "gorm.io/gorm"

// Email template audiences.
const (
	TemplateOrder  = "order"
	TemplateUser   = "user"
	TemplateSystem = "system"
)

// EmailTemplate is a reusable notification body with {{variable}}
// placeholders.
type EmailTemplate struct {
	gorm.Model
	Name      string     `gorm:"size:255;not null" json:"name"`
	Subject   string     `gorm:"size:255;not null" json:"subject"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Type      string     `gorm:"size:20;not null" json:"type"` // order | user | system
	Variables StringList `gorm:"type:text" json:"variables"`
}
