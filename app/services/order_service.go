package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/event"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
)

var (
	ErrOrderNotFound       = errors.New("Order not found")
	ErrCarNotAvailable     = errors.New("Car not available")
	ErrRentalDatesRequired = errors.New("Start date and end date are required for rentals")
	ErrRentalDateOrder     = errors.New("End date must be after start date")
	ErrRentalTooLong       = errors.New("Rental duration cannot exceed 30 days (1 month)")
	ErrInvalidStatus       = errors.New("Invalid status")
	ErrContractNotApproved = errors.New("Contract must be approved before completing the order.")
)

// OrderEvent is the payload fired on the event bus for every order mutation.
// The server relays these to the admin WebSocket feed.
type OrderEvent struct {
	Event   string `json:"event"`
	OrderID uint   `json:"orderId"`
	CarID   uint   `json:"carId"`
	Type    string `json:"type"`
	Status  string `json:"status"`
}

func broadcastOrderEvent(name string, order models.Order) {
	event.Fire(name, OrderEvent{
		Event:   name,
		OrderID: order.ID,
		CarID:   order.CarID,
		Type:    order.Type,
		Status:  order.Status,
	})
}

// OrderService owns the order lifecycle: placement, status transitions,
// contract approval, and deletion.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// OrderInput carries a placement request.
type OrderInput struct {
	CarID      uint
	Type       string // Rent | Buy
	WithDriver bool
	StartDate  *time.Time
	EndDate    *time.Time
}

// Place creates an order and claims the car in one transaction. The car
// row is flipped with a conditional update so two concurrent buyers can
// never both win: whoever's UPDATE matches zero rows loses.
func (s *OrderService) Place(userID uint, in OrderInput) (models.Order, error) {
	if in.Type == models.OrderRent {
		if err := validateRentalDates(in.StartDate, in.EndDate); err != nil {
			return models.Order{}, err
		}
	}

	nextCarStatus := models.CarSold
	if in.Type == models.OrderRent {
		nextCarStatus = models.CarRented
	}

	var order models.Order
	err := orm.DB().Gorm().Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Car{}).
			Where("id = ? AND status = ?", in.CarID, models.CarAvailable).
			Update("status", nextCarStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing car from a claimed one.
			var n int64
			if err := tx.Model(&models.Car{}).Where("id = ?", in.CarID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrCarNotFound
			}
			return ErrCarNotAvailable
		}

		order = models.Order{
			UserID:           userID,
			CarID:            in.CarID,
			Type:             in.Type,
			WithDriver:       in.WithDriver,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			Status:           models.OrderPending,
			ContractApproved: false,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.WithLabelValues(order.Type).Inc()

	full, err := s.orders.FindByID(order.ID)
	if err != nil {
		// The order exists; return it bare rather than failing.
		logger.Error("order: reload after place failed", "order_id", order.ID, "error", err)
		full = order
	}

	if err := queue.Dispatch(jobs.OrderConfirmationJob{OrderID: order.ID}); err != nil {
		logger.Error("order: confirmation email dispatch failed", "order_id", order.ID, "error", err)
	}
	broadcastOrderEvent("order.placed", full)

	return full, nil
}

// validateRentalDates enforces the rental window rules. The span counts
// partial days as whole ones.
func validateRentalDates(start, end *time.Time) error {
	if start == nil || end == nil {
		return ErrRentalDatesRequired
	}
	if !end.After(*start) {
		return ErrRentalDateOrder
	}
	days := int(math.Ceil(end.Sub(*start).Hours() / 24))
	if days > models.MaxRentalDays {
		return ErrRentalTooLong
	}
	return nil
}

// Find returns an order with user and car populated.
func (s *OrderService) Find(id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

// ByUser returns a customer's own orders, newest first. Orders whose
// car was deleted from the catalog are dropped from the listing.
func (s *OrderService) ByUser(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ByUser(userID)
	if err != nil {
		return nil, err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.Car != nil {
			kept = append(kept, o)
		}
	}
	return kept, nil
}

// List returns one admin page of orders.
func (s *OrderService) List(f repositories.OrderFilter) ([]models.Order, orm.Pagination, error) {
	return s.orders.Filter(f)
}

// UpdateStatus moves an order to a new status. Completing an order
// requires an approved contract.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	order, err := s.Find(id)
	if err != nil {
		return models.Order{}, err
	}

	if status == models.OrderCompleted && !order.ContractApproved {
		return models.Order{}, ErrContractNotApproved
	}

	order.Status = status
	if err := s.orders.Save(&order); err != nil {
		return models.Order{}, err
	}

	if err := queue.Dispatch(jobs.OrderStatusJob{OrderID: order.ID, Status: status}); err != nil {
		logger.Error("order: status email dispatch failed", "order_id", order.ID, "error", err)
	}
	broadcastOrderEvent("order.status", order)

	return order, nil
}

// BulkUpdateStatus applies a status change to several orders and returns
// how many actually changed. Orders that fail their guard are skipped,
// not fatal.
func (s *OrderService) BulkUpdateStatus(ids []uint, status string) (int, error) {
	if !models.ValidStatus(status) {
		return 0, ErrInvalidStatus
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.UpdateStatus(id, status); err != nil {
			logger.Warn("order: bulk status skip", "order_id", id, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// ApproveContract marks the order's contract as approved. Approval is
// one-way; there is no un-approve.
func (s *OrderService) ApproveContract(id uint) (models.Order, error) {
	order, err := s.Find(id)
	if err != nil {
		return models.Order{}, err
	}

	if !order.ContractApproved {
		order.ContractApproved = true
		if err := s.orders.Save(&order); err != nil {
			return models.Order{}, err
		}
	}
	return order, nil
}

// Delete removes an order and releases its car. A car the order had
// claimed goes back to Available so it can be listed again.
func (s *OrderService) Delete(id uint) error {
	order, err := s.Find(id)
	if err != nil {
		return err
	}

	err = orm.DB().Gorm().Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Car{}).
			Where("id = ? AND status IN ?", order.CarID, []string{models.CarSold, models.CarRented}).
			Update("status", models.CarAvailable)
		if res.Error != nil {
			return res.Error
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
	if err != nil {
		return err
	}

	broadcastOrderEvent("order.deleted", order)
	return nil
}
