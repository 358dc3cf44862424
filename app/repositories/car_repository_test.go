package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
)

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Category) {
	t.Helper()

	suv := models.Category{Name: "SUV"}
	sedan := models.Category{Name: "Sedan"}
	require.NoError(t, db.Create(&suv).Error)
	require.NoError(t, db.Create(&sedan).Error)

	cars := []models.Car{
		{Title: "Toyota Corolla 2020", Brand: "Toyota", CarModel: "Corolla", Year: 2020,
			SalePrice: 15000, Status: models.CarAvailable, CategoryID: sedan.ID},
		{Title: "Toyota RAV4 2022", Brand: "Toyota", CarModel: "RAV4", Year: 2022,
			SalePrice: 30000, Status: models.CarAvailable, CategoryID: suv.ID},
		{Title: "Honda Civic 2021", Brand: "Honda", CarModel: "Civic", Year: 2021,
			SalePrice: 22000, Status: models.CarSold, CategoryID: sedan.ID},
		{Title: "Ford Explorer 2019", Brand: "Ford", CarModel: "Explorer", Year: 2019,
			SalePrice: 27000, Status: models.CarAvailable, CategoryID: suv.ID},
	}
	for i := range cars {
		require.NoError(t, db.Create(&cars[i]).Error)
		// Spread creation times out so the newest/oldest orderings are
		// deterministic.
		ts := time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Model(&cars[i]).Update("created_at", ts).Error)
	}
	return suv, sedan
}

func titles(cars []models.Car) []string {
	out := make([]string, 0, len(cars))
	for _, car := range cars {
		out = append(out, car.Title)
	}
	return out
}

func TestCarFilterByCategoryAndStatus(t *testing.T) {
	db := setupDB(t)
	suv, sedan := seedCatalog(t, db)
	repo := repositories.NewCarRepository()

	cars, _, err := repo.Filter(repositories.CarFilter{CategoryID: suv.ID})
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	cars, _, err = repo.Filter(repositories.CarFilter{
		CategoryID: sedan.ID,
		Status:     models.CarAvailable,
	})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Toyota Corolla 2020", cars[0].Title)
	require.NotNil(t, cars[0].Category)
	assert.Equal(t, "Sedan", cars[0].Category.Name)
}

func TestCarFilterSearch(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	repo := repositories.NewCarRepository()

	cars, _, err := repo.Filter(repositories.CarFilter{Search: "toyota"})
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	cars, _, err = repo.Filter(repositories.CarFilter{Search: "civic"})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Honda Civic 2021", cars[0].Title)

	// A numeric search also matches the year column.
	cars, _, err = repo.Filter(repositories.CarFilter{Search: "2019"})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Ford Explorer 2019", cars[0].Title)
}

func TestCarFilterSort(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	repo := repositories.NewCarRepository()

	cars, _, err := repo.Filter(repositories.CarFilter{Sort: "price-asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Toyota Corolla 2020", "Honda Civic 2021", "Ford Explorer 2019", "Toyota RAV4 2022",
	}, titles(cars))

	cars, _, err = repo.Filter(repositories.CarFilter{Sort: "price-desc"})
	require.NoError(t, err)
	assert.Equal(t, "Toyota RAV4 2022", cars[0].Title)

	cars, _, err = repo.Filter(repositories.CarFilter{Sort: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla 2020", cars[0].Title)

	// Unrecognised sorts fall back to newest first.
	cars, _, err = repo.Filter(repositories.CarFilter{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "Ford Explorer 2019", cars[0].Title)
}

func TestCarFilterPagination(t *testing.T) {
	db := setupDB(t)
	sedan := models.Category{Name: "Sedan"}
	require.NoError(t, db.Create(&sedan).Error)
	for i := 0; i < 25; i++ {
		car := models.Car{
			Title: fmt.Sprintf("Car %02d", i), Brand: "Brand", CarModel: "Model",
			Year: 2020, Status: models.CarAvailable, CategoryID: sedan.ID,
		}
		require.NoError(t, db.Create(&car).Error)
	}
	repo := repositories.NewCarRepository()

	cars, pagination, err := repo.Filter(repositories.CarFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, cars, 10)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, int64(25), pagination.TotalItems)
	assert.Equal(t, 10, pagination.ItemsPerPage)

	cars, pagination, err = repo.Filter(repositories.CarFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, cars, 5)
	assert.Equal(t, 3, pagination.CurrentPage)
}
