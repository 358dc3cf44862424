package jobs_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/database"
	"github.com/shashiranjanraj/drivehub/pkg/mail"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Car{},
		&models.Order{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

type recordingSender struct {
	mu   sync.Mutex
	sent int
}

func (r *recordingSender) Send(_ string, _ []string, _ []byte, _ mail.SMTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent++
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

func useFakeMail(t *testing.T) *recordingSender {
	t.Helper()
	r := &recordingSender{}
	mail.SetSender(r)
	return r
}

// seedOrder creates a user, a car, and a pending order between them.
func seedOrder(t *testing.T, db *gorm.DB) (models.User, models.Car, models.Order) {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    "buyer@example.com",
		Phone:    "12345",
		Password: "$2a$10$fakefakefakefakefakefu",
	}
	require.NoError(t, db.Create(&user).Error)

	category := models.Category{Name: "Sedan"}
	require.NoError(t, db.Create(&category).Error)

	car := models.Car{
		Title:      "Toyota Corolla 2022",
		Brand:      "Toyota",
		CarModel:   "Corolla",
		Year:       2022,
		SalePrice:  21000,
		RentPrice:  45,
		Status:     models.CarSold,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&car).Error)

	order := models.Order{
		UserID: user.ID,
		CarID:  car.ID,
		Type:   models.OrderBuy,
		Status: models.OrderPending,
	}
	require.NoError(t, db.Create(&order).Error)
	return user, car, order
}

func TestOrderConfirmationJobDeliversMail(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)
	_, _, order := seedOrder(t, db)

	err := jobs.OrderConfirmationJob{OrderID: order.ID}.Handle()
	require.NoError(t, err)
	assert.Equal(t, 1, sender.count())
}

func TestOrderConfirmationJobSkipsDeletedCar(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)
	_, car, order := seedOrder(t, db)

	require.NoError(t, db.Delete(&car).Error)

	err := jobs.OrderConfirmationJob{OrderID: order.ID}.Handle()
	require.NoError(t, err)
	assert.Equal(t, 0, sender.count())
}

func TestOrderStatusJobSkipsDeletedCar(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)
	_, car, order := seedOrder(t, db)

	require.NoError(t, db.Delete(&car).Error)

	err := jobs.OrderStatusJob{OrderID: order.ID, Status: models.OrderConfirmed}.Handle()
	require.NoError(t, err)
	assert.Equal(t, 0, sender.count())
}

func TestContractEmailJobSkipsDeletedUser(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)
	user, _, order := seedOrder(t, db)

	require.NoError(t, db.Delete(&user).Error)

	err := jobs.ContractEmailJob{OrderID: order.ID, StoragePath: "contracts/none.pdf"}.Handle()
	require.NoError(t, err)
	assert.Equal(t, 0, sender.count())
}
