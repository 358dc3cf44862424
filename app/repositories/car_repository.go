package repositories

import (
	"strconv"
	"strings"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// CarFilter holds the optional catalogue query parameters.
type CarFilter struct {
	CategoryID uint
	Status     string
	Search     string // matched against brand, model, title and year
	Sort       string // price-asc | price-desc | newest | oldest
	Page       int
	Limit      int
}

// CarRepository handles database operations for Car.
type CarRepository struct{}

func NewCarRepository() *CarRepository {
	return &CarRepository{}
}

// FindByID looks up a car with its category populated.
func (r *CarRepository) FindByID(id uint) (models.Car, error) {
	var car models.Car
	err := orm.DB().Model(&models.Car{}).Preload("Category").Where("id = ?", id).First(&car)
	return car, err
}

// Create persists a new car.
func (r *CarRepository) Create(car *models.Car) error {
	return orm.DB().Create(car)
}

// Update persists changes to an existing car.
func (r *CarRepository) Update(car *models.Car) error {
	return orm.DB().Save(car)
}

// Delete removes a car.
func (r *CarRepository) Delete(car *models.Car) error {
	return orm.DB().Delete(car)
}

// Filter returns one page of cars matching the filter. Sale price is the
// sort key for the price orderings; the default ordering is newest first.
func (r *CarRepository) Filter(f CarFilter) ([]models.Car, orm.Pagination, error) {
	q := orm.DB().Model(&models.Car{}).Preload("Category")

	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		if year, err := strconv.Atoi(f.Search); err == nil {
			q = q.Where("LOWER(brand) LIKE ? OR LOWER(car_model) LIKE ? OR LOWER(title) LIKE ? OR year = ?",
				term, term, term, year)
		} else {
			q = q.Where("LOWER(brand) LIKE ? OR LOWER(car_model) LIKE ? OR LOWER(title) LIKE ?",
				term, term, term)
		}
	}

	switch f.Sort {
	case "price-asc":
		q = q.Order("sale_price asc")
	case "price-desc":
		q = q.Order("sale_price desc")
	case "oldest":
		q = q.Order("created_at asc")
	default: // "newest" and anything unrecognised
		q = q.Order("created_at desc")
	}

	var cars []models.Car
	pagination, err := q.GetWithPagination(&cars, f.Page, f.Limit)
	return cars, pagination, err
}

// Count returns the total number of cars.
func (r *CarRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Car{}).Count(&n)
	return n, err
}
