package services_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/database"
	"github.com/shashiranjanraj/drivehub/pkg/mail"
)

// setupDB opens a fresh in-memory database, migrates the schema, and
// installs it as the global connection for the duration of the test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Car{},
		&models.Order{},
		&models.EmailTemplate{},
		&models.ContractTemplate{},
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

// fakeSender records outgoing mail instead of talking to SMTP.
type fakeSender struct {
	mu       sync.Mutex
	sent     []fakeMail
	failNext bool
}

type fakeMail struct {
	To          []string
	Raw         string
	AttachCount int
}

func (f *fakeSender) Send(from string, to []string, raw []byte, cfg mail.SMTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, fakeMail{
		To:          to,
		Raw:         string(raw),
		AttachCount: strings.Count(string(raw), "Content-Disposition: attachment"),
	})
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) last() fakeMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

// useFakeMail swaps the mail transport for the test.
func useFakeMail(t *testing.T) *fakeSender {
	t.Helper()
	f := &fakeSender{}
	mail.SetSender(f)
	return f
}

// ─── Fixtures ─────────────────────────────────────────────────────────────────

func seedUser(t *testing.T, db *gorm.DB, email string, admin bool) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Phone:    "12345",
		Password: "$2a$10$fakefakefakefakefakefu",
		IsAdmin:  admin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCar(t *testing.T, db *gorm.DB, status string) models.Car {
	t.Helper()
	category := models.Category{Name: fmt.Sprintf("cat-%d", time.Now().UnixNano())}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	car := models.Car{
		Title:      "Toyota Corolla 2022",
		Brand:      "Toyota",
		CarModel:   "Corolla",
		Year:       2022,
		SalePrice:  21000,
		RentPrice:  45,
		Status:     status,
		CategoryID: category.ID,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func datePtr(t time.Time) *time.Time { return &t }
