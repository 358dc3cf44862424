package models

import (
	"time"

	"gorm.io/gorm"
)

// Order types.
const (
	OrderBuy  = "Buy"
	OrderRent = "Rent"
)

// Order statuses.
const (
	OrderPending   = "Pending"
	OrderConfirmed = "Confirmed"
	OrderCompleted = "Completed"
)

// MaxRentalDays caps a rental span at one month.
const MaxRentalDays = 30

// Order records a purchase or rental of a car.
type Order struct {
	gorm.Model
	UserID           uint       `gorm:"not null;index" json:"userId"`
	User             *User      `json:"user,omitempty"`
	CarID            uint       `gorm:"not null;index" json:"carId"`
	Car              *Car       `json:"car,omitempty"`
	Type             string     `gorm:"size:10;not null" json:"type"` // Rent | Buy
	WithDriver       bool       `gorm:"not null;default:false" json:"withDriver"`
	StartDate        *time.Time `json:"startDate,omitempty"` // required for Rent
	EndDate          *time.Time `json:"endDate,omitempty"`   // required for Rent
	Status           string     `gorm:"size:20;not null;default:Pending;index" json:"status"`
	ContractApproved bool       `gorm:"not null;default:false" json:"contractApproved"`
	ContractURL      string     `gorm:"size:512" json:"contractUrl,omitempty"`
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderCompleted
}
