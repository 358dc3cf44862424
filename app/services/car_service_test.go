package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
)

// Car.Status is owned by the order lifecycle. No catalog write may
// change it.
func TestListingUpdateKeepsStatus(t *testing.T) {
	db := setupDB(t)

	for _, status := range []string{models.CarSold, models.CarRented, models.CarAvailable} {
		car := seedCar(t, db, status)

		svc := services.NewCarService()
		updated, err := svc.Update(car.ID, services.CarInput{
			Title:      "Toyota Corolla 2023",
			Brand:      "Toyota",
			Model:      "Corolla",
			Year:       2023,
			SalePrice:  22000,
			RentPrice:  50,
			CategoryID: car.CategoryID,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestCreateListingStartsAvailable(t *testing.T) {
	db := setupDB(t)
	category := seedCar(t, db, models.CarAvailable).CategoryID

	svc := services.NewCarService()
	car, err := svc.Create(services.CarInput{
		Title:      "Honda Civic 2021",
		Brand:      "Honda",
		Model:      "Civic",
		Year:       2021,
		SalePrice:  18000,
		RentPrice:  40,
		CategoryID: category,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.CarAvailable, car.Status)
}
