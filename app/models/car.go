package models

import "gorm.io/gorm"

// Car availability states. Transitions happen only through the order
// lifecycle: placing an order marks a car Sold or Rented, deleting the
// order resets it to Available.
const (
	CarAvailable = "Available"
	CarSold      = "Sold"
	CarRented    = "Rented"
)

// Car is a vehicle listed for sale and/or rent.
type Car struct {
	gorm.Model
	Title        string     `gorm:"size:255;not null;index" json:"title"`
	Brand        string     `gorm:"size:100;not null;index" json:"brand"`
	CarModel     string     `gorm:"size:100;not null;column:car_model" json:"model"`
	Year         int        `gorm:"not null" json:"year"`
	Fuel         string     `gorm:"size:50;not null" json:"fuel"`
	Mileage      int        `gorm:"not null" json:"mileage"`
	Transmission string     `gorm:"size:50;not null" json:"transmission"`
	Image        string     `gorm:"size:512" json:"image"` // primary image, kept for older clients
	Images       StringList `gorm:"type:text" json:"images"`
	SalePrice    float64    `gorm:"not null" json:"salePrice"`
	RentPrice    float64    `gorm:"not null" json:"rentPrice"`
	Status       string     `gorm:"size:20;not null;default:Available;index" json:"status"`
	CategoryID   uint       `gorm:"not null;index" json:"categoryId"`
	Category     *Category  `json:"category,omitempty"`
	WithDriver   bool       `gorm:"not null;default:false" json:"withDriver"`
}
