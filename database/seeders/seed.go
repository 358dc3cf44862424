package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("cars", SeedCars)
	Register("email-templates", SeedEmailTemplates)
}

// SeedAdminUser creates the default admin account if none exists.
// Change the password immediately in any real deployment.
func SeedAdminUser(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Admin",
		Email:    "admin@drivehub.app",
		Password: hash,
		IsAdmin:  true,
	}).Error
}

func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "SUV", Description: "Sport utility vehicles"},
		{Name: "Sedan", Description: "Comfortable family cars"},
		{Name: "Hatchback", Description: "Compact city cars"},
		{Name: "Luxury", Description: "Premium vehicles"},
	}
	for _, category := range categories {
		var existing models.Category
		err := db.Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedCars(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Car{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var sedan, suv models.Category
	if err := db.Where("name = ?", "Sedan").First(&sedan).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "SUV").First(&suv).Error; err != nil {
		return err
	}

	cars := []models.Car{
		{
			Title: "Toyota Corolla 2022", Brand: "Toyota", CarModel: "Corolla",
			Year: 2022, Fuel: "Petrol", Mileage: 18000, Transmission: "Automatic",
			SalePrice: 21000, RentPrice: 45, Status: models.CarAvailable,
			CategoryID: sedan.ID,
		},
		{
			Title: "Honda CR-V 2023", Brand: "Honda", CarModel: "CR-V",
			Year: 2023, Fuel: "Hybrid", Mileage: 9000, Transmission: "Automatic",
			SalePrice: 34000, RentPrice: 70, Status: models.CarAvailable,
			CategoryID: suv.ID, WithDriver: true,
		},
	}
	for _, car := range cars {
		if err := db.Create(&car).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedEmailTemplates(db *gorm.DB) error {
	templates := []models.EmailTemplate{
		{
			Name:      "welcome",
			Subject:   "Welcome to DriveHub",
			Body:      "<p>Hello {{name}}, welcome to DriveHub!</p>",
			Type:      models.TemplateUser,
			Variables: models.StringList{"name"},
		},
		{
			Name:      "order-update",
			Subject:   "Your order {{orderId}} was updated",
			Body:      "<p>Hello {{name}}, your order {{orderId}} is now {{status}}.</p>",
			Type:      models.TemplateOrder,
			Variables: models.StringList{"name", "orderId", "status"},
		},
	}
	for _, template := range templates {
		var existing models.EmailTemplate
		err := db.Where("name = ?", template.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&template).Error; err != nil {
			return err
		}
	}
	return nil
}
