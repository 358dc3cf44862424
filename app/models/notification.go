package models

import "gorm.io/gorm"

// Notification delivery states.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification records one outbound email: who it went to, what was
// rendered, and whether delivery succeeded.
type Notification struct {
	gorm.Model
	Recipient  string         `gorm:"size:255;not null;index" json:"recipient"`
	Subject    string         `gorm:"size:255;not null" json:"subject"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Type       string         `gorm:"size:20;not null" json:"type"` // order | user | system
	Status     string         `gorm:"size:20;not null;default:pending;index" json:"status"`
	TemplateID *uint          `gorm:"index" json:"templateId,omitempty"`
	Template   *EmailTemplate `json:"template,omitempty"`
	Metadata   JSONMap        `gorm:"type:text" json:"metadata,omitempty"`
}
