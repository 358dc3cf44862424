package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/mail"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
	"github.com/shashiranjanraj/drivehub/pkg/workerpool"
)

var ErrTemplateNotFound = errors.New("Template not found")

// bulkSendWorkers bounds how many emails a bulk send pushes out at once.
const bulkSendWorkers = 8

// NotificationService manages email templates and templated sends. Every
// send leaves a Notification row recording the outcome.
type NotificationService struct {
	templates     *repositories.EmailTemplateRepository
	notifications *repositories.NotificationRepository
	users         *repositories.UserRepository
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		templates:     repositories.NewEmailTemplateRepository(),
		notifications: repositories.NewNotificationRepository(),
		users:         repositories.NewUserRepository(),
	}
}

// ─── Email templates ──────────────────────────────────────────────────────────

func (s *NotificationService) Templates() ([]models.EmailTemplate, error) {
	return s.templates.All()
}

func (s *NotificationService) FindTemplate(id uint) (models.EmailTemplate, error) {
	template, err := s.templates.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.EmailTemplate{}, ErrTemplateNotFound
	}
	return template, err
}

func (s *NotificationService) CreateTemplate(name, subject, body, kind string, variables models.StringList) (models.EmailTemplate, error) {
	template := models.EmailTemplate{
		Name:      name,
		Subject:   subject,
		Body:      body,
		Type:      kind,
		Variables: variables,
	}
	if err := s.templates.Create(&template); err != nil {
		return models.EmailTemplate{}, err
	}
	return template, nil
}

func (s *NotificationService) UpdateTemplate(id uint, name, subject, body, kind string, variables models.StringList) (models.EmailTemplate, error) {
	template, err := s.FindTemplate(id)
	if err != nil {
		return models.EmailTemplate{}, err
	}

	template.Name = name
	template.Subject = subject
	template.Body = body
	template.Type = kind
	template.Variables = variables

	if err := s.templates.Update(&template); err != nil {
		return models.EmailTemplate{}, err
	}
	return template, nil
}

func (s *NotificationService) DeleteTemplate(id uint) error {
	template, err := s.FindTemplate(id)
	if err != nil {
		return err
	}
	return s.templates.Delete(&template)
}

// ─── Notifications ────────────────────────────────────────────────────────────

// Latest returns the most recent notifications for the admin feed.
func (s *NotificationService) Latest(limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.notifications.Latest(limit)
}

// SendTest delivers a template to a single address, synchronously, so
// the admin sees the real outcome.
func (s *NotificationService) SendTest(templateID uint, recipient string) error {
	template, err := s.FindTemplate(templateID)
	if err != nil {
		return err
	}

	notif := models.Notification{
		Recipient:  recipient,
		Subject:    template.Subject,
		Body:       template.Body,
		Type:       template.Type,
		TemplateID: &template.ID,
		Status:     models.NotificationPending,
	}
	if err := s.notifications.Create(&notif); err != nil {
		return err
	}

	sendErr := mail.To(recipient).
		Subject(template.Subject).
		Body(template.Body).
		Send()

	if sendErr != nil {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
		notif.Status = models.NotificationFailed
	} else {
		metrics.EmailsSent.WithLabelValues("sent").Inc()
		notif.Status = models.NotificationSent
	}
	if err := s.notifications.Update(&notif); err != nil {
		logger.Error("notification: outcome update failed", "id", notif.ID, "error", err)
	}
	return sendErr
}

// SendBulk creates a pending notification for every user and fans the
// deliveries out over a bounded worker pool. It returns the recipient
// count immediately; deliveries finish in the background.
func (s *NotificationService) SendBulk(templateID uint) (int, error) {
	template, err := s.FindTemplate(templateID)
	if err != nil {
		return 0, err
	}

	users, err := s.users.All()
	if err != nil {
		return 0, err
	}

	var recipients []models.Notification
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		notif := models.Notification{
			Recipient:  u.Email,
			Subject:    template.Subject,
			Body:       template.Body,
			Type:       template.Type,
			TemplateID: &template.ID,
			Status:     models.NotificationPending,
		}
		if err := s.notifications.Create(&notif); err != nil {
			return 0, err
		}
		recipients = append(recipients, notif)
	}

	pool := workerpool.New(bulkSendWorkers)
	go func() {
		defer pool.Shutdown()
		for _, notif := range recipients {
			id := notif.ID
			if err := pool.SubmitWait(func() {
				if err := (jobs.NotificationEmailJob{NotificationID: id}).Handle(); err != nil {
					logger.Warn("notification: bulk delivery failed", "id", id, "error", err)
				}
			}); err != nil {
				logger.Error("notification: bulk submit failed", "id", id, "error", err)
				return
			}
		}
	}()

	return len(recipients), nil
}

// RetryFailed re-queues the oldest failed notifications. The scheduler
// calls this periodically.
func (s *NotificationService) RetryFailed(limit int) error {
	if limit <= 0 {
		limit = 50
	}
	failed, err := s.notifications.Failed(limit)
	if err != nil {
		return err
	}

	for _, notif := range failed {
		notif.Status = models.NotificationPending
		if err := s.notifications.Update(&notif); err != nil {
			return fmt.Errorf("retry notification %d: %w", notif.ID, err)
		}
		if err := queue.Dispatch(jobs.NotificationEmailJob{NotificationID: notif.ID}); err != nil {
			return fmt.Errorf("retry notification %d: %w", notif.ID, err)
		}
	}
	if len(failed) > 0 {
		logger.Info("notification: retry queued", "count", len(failed))
	}
	return nil
}
