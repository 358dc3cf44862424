package services

import (
	"fmt"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	Cars    int64  `json:"cars"`
	Users   int64  `json:"users"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

// AdminService aggregates the dashboard numbers.
type AdminService struct {
	cars   *repositories.CarRepository
	users  *repositories.UserRepository
	orders *repositories.OrderRepository
}

func NewAdminService() *AdminService {
	return &AdminService{
		cars:   repositories.NewCarRepository(),
		users:  repositories.NewUserRepository(),
		orders: repositories.NewOrderRepository(),
	}
}

// Stats returns entity counts and total revenue. Revenue sums completed
// orders only, taking the sale price for purchases and the rent price
// for rentals.
func (s *AdminService) Stats() (DashboardStats, error) {
	cars, err := s.cars.Count()
	if err != nil {
		return DashboardStats{}, err
	}
	users, err := s.users.Count()
	if err != nil {
		return DashboardStats{}, err
	}
	orders, err := s.orders.Count()
	if err != nil {
		return DashboardStats{}, err
	}

	completed, err := s.orders.CompletedWithCars()
	if err != nil {
		return DashboardStats{}, err
	}

	var revenue float64
	for _, order := range completed {
		if order.Type == models.OrderRent {
			revenue += order.Car.RentPrice
		} else {
			revenue += order.Car.SalePrice
		}
	}

	return DashboardStats{
		Cars:    cars,
		Users:   users,
		Orders:  orders,
		Revenue: fmt.Sprintf("%.2f", revenue),
	}, nil
}
