package repositories

import (
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// NotificationRepository handles database operations for Notification.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Create persists a new notification record.
func (r *NotificationRepository) Create(n *models.Notification) error {
	return orm.DB().Create(n)
}

// Update persists a status change.
func (r *NotificationRepository) Update(n *models.Notification) error {
	return orm.DB().Save(n)
}

// FindByID looks up a notification by primary key.
func (r *NotificationRepository) FindByID(id uint) (models.Notification, error) {
	var n models.Notification
	err := orm.DB().Model(&models.Notification{}).Where("id = ?", id).First(&n)
	return n, err
}

// Latest returns the most recent notifications with their templates.
func (r *NotificationRepository) Latest(limit int) ([]models.Notification, error) {
	var ns []models.Notification
	err := orm.DB().Model(&models.Notification{}).
		Preload("Template").
		Order("created_at desc").
		Limit(limit).
		Get(&ns)
	return ns, err
}

// Failed returns notifications stuck in the failed state, oldest first,
// for the retry sweep.
func (r *NotificationRepository) Failed(limit int) ([]models.Notification, error) {
	var ns []models.Notification
	err := orm.DB().Model(&models.Notification{}).
		Where("status = ?", models.NotificationFailed).
		Order("created_at asc").
		Limit(limit).
		Get(&ns)
	return ns, err
}
