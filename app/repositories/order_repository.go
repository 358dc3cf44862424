package repositories

import (
	"strings"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// OrderFilter holds the optional admin order-list query parameters.
type OrderFilter struct {
	Status string
	Type   string
	Search string // matched against customer name/email
	Page   int
	Limit  int
}

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID looks up an order with user and car populated.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("User").
		Preload("Car").
		Preload("Car.Category").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// ByUser returns all of one user's orders, newest first, with cars
// populated.
func (r *OrderRepository) ByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Car").
		Preload("Car.Category").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// Filter returns one page of orders for the admin list.
func (r *OrderRepository) Filter(f OrderFilter) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("User").Preload("Car")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("user_id IN (SELECT id FROM users WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?)",
			term, term)
	}

	var orders []models.Order
	pagination, err := q.Order("created_at desc").GetWithPagination(&orders, f.Page, f.Limit)
	return orders, pagination, err
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return orm.DB().Save(order)
}

// Delete removes an order.
func (r *OrderRepository) Delete(order *models.Order) error {
	return orm.DB().Delete(order)
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}

// CompletedWithCars returns all completed orders with their cars, for the
// revenue aggregation.
func (r *OrderRepository) CompletedWithCars() ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Car").
		Where("status = ?", models.OrderCompleted).
		Get(&orders)
	return orders, err
}
