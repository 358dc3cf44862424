package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
)

func TestSendTestRecordsOutcome(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)

	svc := services.NewNotificationService()
	template, err := svc.CreateTemplate("welcome", "Hi there", "<p>Hello</p>",
		models.TemplateUser, nil)
	require.NoError(t, err)

	require.NoError(t, svc.SendTest(template.ID, "admin@example.com"))
	assert.Equal(t, 1, sender.count())

	var notif models.Notification
	require.NoError(t, db.Where("recipient = ?", "admin@example.com").First(&notif).Error)
	assert.Equal(t, models.NotificationSent, notif.Status)
	assert.Equal(t, "Hi there", notif.Subject)
	require.NotNil(t, notif.TemplateID)
	assert.Equal(t, template.ID, *notif.TemplateID)
}

func TestSendTestFailureMarksNotificationFailed(t *testing.T) {
	db := setupDB(t)
	sender := useFakeMail(t)
	sender.failNext = true

	svc := services.NewNotificationService()
	template, err := svc.CreateTemplate("welcome", "Hi there", "<p>Hello</p>",
		models.TemplateUser, nil)
	require.NoError(t, err)

	err = svc.SendTest(template.ID, "admin@example.com")
	assert.Error(t, err)

	var notif models.Notification
	require.NoError(t, db.Where("recipient = ?", "admin@example.com").First(&notif).Error)
	assert.Equal(t, models.NotificationFailed, notif.Status)
}

func TestSendTestUnknownTemplate(t *testing.T) {
	setupDB(t)
	svc := services.NewNotificationService()
	err := svc.SendTest(999, "admin@example.com")
	assert.ErrorIs(t, err, services.ErrTemplateNotFound)
}

func TestSendBulkCreatesNotificationPerUser(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	seedUser(t, db, "a@example.com", false)
	seedUser(t, db, "b@example.com", false)
	seedUser(t, db, "c@example.com", true)

	svc := services.NewNotificationService()
	template, err := svc.CreateTemplate("announce", "News", "<p>News</p>",
		models.TemplateSystem, nil)
	require.NoError(t, err)

	count, err := svc.SendBulk(template.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var rows int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&rows).Error)
	assert.Equal(t, int64(3), rows)

	// Deliveries run in the background; every row eventually leaves
	// pending.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var pending int64
		require.NoError(t, db.Model(&models.Notification{}).
			Where("status = ?", models.NotificationPending).Count(&pending).Error)
		if pending == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("bulk deliveries did not finish")
}
