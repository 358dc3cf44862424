package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
)

func TestDashboardStatsRevenueByOrderType(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com", false)

	sold := seedCar(t, db, models.CarSold)       // SalePrice 21000
	rented := seedCar(t, db, models.CarRented)   // RentPrice 45
	pending := seedCar(t, db, models.CarSold)    // not completed, excluded

	orders := []models.Order{
		{UserID: user.ID, CarID: sold.ID, Type: models.OrderBuy, Status: models.OrderCompleted, ContractApproved: true},
		{UserID: user.ID, CarID: rented.ID, Type: models.OrderRent, Status: models.OrderCompleted, ContractApproved: true},
		{UserID: user.ID, CarID: pending.ID, Type: models.OrderBuy, Status: models.OrderPending},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	stats, err := services.NewAdminService().Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Cars)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(3), stats.Orders)
	// 21000 (sale) + 45 (rent); the pending buy contributes nothing.
	assert.Equal(t, "21045.00", stats.Revenue)
}

func TestDashboardStatsEmptyDatabase(t *testing.T) {
	setupDB(t)

	stats, err := services.NewAdminService().Stats()
	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.Revenue)
	assert.Zero(t, stats.Orders)
}
