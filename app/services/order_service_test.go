package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/event"
)

func TestPlaceBuyOrderClaimsCar(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{
		CarID: car.ID,
		Type:  models.OrderBuy,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.False(t, order.ContractApproved)
	assert.Equal(t, user.ID, order.UserID)

	var updated models.Car
	require.NoError(t, db.First(&updated, car.ID).Error)
	assert.Equal(t, models.CarSold, updated.Status)
}

func TestPlaceRentOrderClaimsCar(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "renter@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	start := time.Now().AddDate(0, 0, 1)
	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{
		CarID:     car.ID,
		Type:      models.OrderRent,
		StartDate: datePtr(start),
		EndDate:   datePtr(start.AddDate(0, 0, 7)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderRent, order.Type)

	var updated models.Car
	require.NoError(t, db.First(&updated, car.ID).Error)
	assert.Equal(t, models.CarRented, updated.Status)
}

func TestPlaceOrderCarMissing(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com", false)

	svc := services.NewOrderService()
	_, err := svc.Place(user.ID, services.OrderInput{CarID: 999, Type: models.OrderBuy})
	assert.ErrorIs(t, err, services.ErrCarNotFound)
}

func TestPlaceOrderCarAlreadyClaimed(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	first := seedUser(t, db, "first@example.com", false)
	second := seedUser(t, db, "second@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	_, err := svc.Place(first.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	_, err = svc.Place(second.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	assert.ErrorIs(t, err, services.ErrCarNotAvailable)

	// No second order row exists.
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestPlaceRentOrderDateRules(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "renter@example.com", false)
	car := seedCar(t, db, models.CarAvailable)
	svc := services.NewOrderService()
	start := time.Now().AddDate(0, 0, 1)

	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr error
	}{
		{"missing dates", nil, nil, services.ErrRentalDatesRequired},
		{"end before start", datePtr(start), datePtr(start.AddDate(0, 0, -1)), services.ErrRentalDateOrder},
		{"end equals start", datePtr(start), datePtr(start), services.ErrRentalDateOrder},
		{"over thirty days", datePtr(start), datePtr(start.AddDate(0, 0, 31)), services.ErrRentalTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Place(user.ID, services.OrderInput{
				CarID:     car.ID,
				Type:      models.OrderRent,
				StartDate: tc.start,
				EndDate:   tc.end,
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// The car was never claimed by any failed attempt.
	var updated models.Car
	require.NoError(t, db.First(&updated, car.ID).Error)
	assert.Equal(t, models.CarAvailable, updated.Status)
}

func TestPlaceRentOrderThirtyDaysExactlyAllowed(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "renter@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	start := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	svc := services.NewOrderService()
	_, err := svc.Place(user.ID, services.OrderInput{
		CarID:     car.ID,
		Type:      models.OrderRent,
		StartDate: datePtr(start),
		EndDate:   datePtr(start.AddDate(0, 0, 30)),
	})
	assert.NoError(t, err)
}

func TestUpdateStatusCompletedRequiresApprovedContract(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.OrderCompleted)
	assert.ErrorIs(t, err, services.ErrContractNotApproved)

	_, err = svc.ApproveContract(order.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, updated.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	_, err := svc.UpdateStatus(1, "Shipped")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestBulkUpdateStatusSkipsGuardedOrders(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	carA := seedCar(t, db, models.CarAvailable)
	carB := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	approved, err := svc.Place(user.ID, services.OrderInput{CarID: carA.ID, Type: models.OrderBuy})
	require.NoError(t, err)
	unapproved, err := svc.Place(user.ID, services.OrderInput{CarID: carB.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	_, err = svc.ApproveContract(approved.ID)
	require.NoError(t, err)

	updated, err := svc.BulkUpdateStatus([]uint{approved.ID, unapproved.ID, 999}, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestDeleteOrderReleasesCar(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	var updated models.Car
	require.NoError(t, db.First(&updated, car.ID).Error)
	assert.Equal(t, models.CarAvailable, updated.Status)

	_, err = svc.Find(order.ID)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestApproveContractIsMonotonic(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	first, err := svc.ApproveContract(order.ID)
	require.NoError(t, err)
	assert.True(t, first.ContractApproved)

	second, err := svc.ApproveContract(order.ID)
	require.NoError(t, err)
	assert.True(t, second.ContractApproved)
}

func TestMyOrdersOmitsDeletedCars(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	kept := seedCar(t, db, models.CarAvailable)
	gone := seedCar(t, db, models.CarAvailable)

	svc := services.NewOrderService()
	_, err := svc.Place(user.ID, services.OrderInput{CarID: kept.ID, Type: models.OrderBuy})
	require.NoError(t, err)
	_, err = svc.Place(user.ID, services.OrderInput{CarID: gone.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	require.NoError(t, services.NewCarService().Delete(gone.ID))

	orders, err := svc.ByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, kept.ID, orders[0].CarID)
}

func TestOrderLifecycleFiresEvents(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	var seen []services.OrderEvent
	event.Listen("order.placed", func(payload interface{}) {
		if ev, ok := payload.(services.OrderEvent); ok {
			seen = append(seen, ev)
		}
	})
	event.Listen("order.deleted", func(payload interface{}) {
		if ev, ok := payload.(services.OrderEvent); ok {
			seen = append(seen, ev)
		}
	})
	t.Cleanup(event.Flush)

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(order.ID))

	require.Len(t, seen, 2)
	assert.Equal(t, "order.placed", seen[0].Event)
	assert.Equal(t, order.ID, seen[0].OrderID)
	assert.Equal(t, car.ID, seen[0].CarID)
	assert.Equal(t, "order.deleted", seen[1].Event)
}
