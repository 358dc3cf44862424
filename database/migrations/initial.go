package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/migration"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260301000002_create_cars_table", &CreateCarsTable{})
	migration.Register("20260301000003_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260301000004_create_email_templates_table", &CreateEmailTemplatesTable{})
	migration.Register("20260301000005_create_contract_templates_table", &CreateContractTemplatesTable{})
	migration.Register("20260301000006_create_notifications_table", &CreateNotificationsTable{})
	migration.Register("20260301000007_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0003: cars --------

type CreateCarsTable struct{}

func (m *CreateCarsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Car{})
}

func (m *CreateCarsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cars")
}

// -------- 0004: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0005: email templates --------

type CreateEmailTemplatesTable struct{}

func (m *CreateEmailTemplatesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.EmailTemplate{})
}

func (m *CreateEmailTemplatesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("email_templates")
}

// -------- 0006: contract templates --------

type CreateContractTemplatesTable struct{}

func (m *CreateContractTemplatesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ContractTemplate{})
}

func (m *CreateContractTemplatesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("contract_templates")
}

// -------- 0007: notifications --------

type CreateNotificationsTable struct{}

func (m *CreateNotificationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Notification{})
}

func (m *CreateNotificationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("notifications")
}

// -------- 0008: failed jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
