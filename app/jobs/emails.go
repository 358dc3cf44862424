// Package jobs defines the queued email side-effects. Every job here is
// best-effort: failures are retried by the queue and recorded, but never
// bubble back into the request that dispatched them.
package jobs

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/mail"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
	"github.com/shashiranjanraj/drivehub/pkg/storage"
)

// RegisterAll makes every job type known to the queue. Call once at boot,
// before workers start.
func RegisterAll() {
	queue.Register("jobs.WelcomeEmailJob", func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register("jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register("jobs.OrderStatusJob", func() queue.Job { return &OrderStatusJob{} })
	queue.Register("jobs.ContractEmailJob", func() queue.Job { return &ContractEmailJob{} })
	queue.Register("jobs.NotificationEmailJob", func() queue.Job { return &NotificationEmailJob{} })
}

func sendTracked(err error) error {
	if err != nil {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues("sent").Inc()
	return nil
}

// ─────────────────────────── Welcome ───────────────────────────

// WelcomeEmailJob delivers the generated password to a freshly
// registered user.
type WelcomeEmailJob struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (j WelcomeEmailJob) Handle() error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Welcome!</h2>
  <p>Dear %s,</p>
  <p>Your account has been created. Here are your login details:</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Email:</strong> %s</p>
    <p><strong>Password:</strong> %s</p>
  </div>
  <p>You can now log in and manage your account.</p>
  <p>Best regards,<br>DriveHub Team</p>
</div>`, j.Name, j.Email, j.Password)

	return sendTracked(mail.To(j.Email).
		Subject("Welcome to DriveHub - Your Account Details").
		Body(body).
		Send())
}

// ─────────────────────────── Order confirmation ───────────────────────────

// OrderConfirmationJob emails the customer after an order was placed.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

func (j OrderConfirmationJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}
	if order.User == nil || order.Car == nil {
		// The user or car was deleted after dispatch. Nothing to send,
		// and no retry can change that.
		logger.Warn("order confirmation: user or car gone, skipping", "order_id", j.OrderID)
		return nil
	}

	price := order.Car.SalePrice
	if order.Type == models.OrderRent {
		price = order.Car.RentPrice
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Order Confirmation</h2>
  <p>Dear %s,</p>
  <p>Your order has been placed successfully!</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Order Details:</h3>
    <p><strong>Order ID:</strong> %d</p>
    <p><strong>Car:</strong> %s %s</p>
    <p><strong>Price:</strong> %.2f</p>
    <p><strong>Status:</strong> %s</p>
    <p><strong>Date:</strong> %s</p>
  </div>
  <p>Thank you for choosing DriveHub!</p>
  <p>Best regards,<br>DriveHub Team</p>
</div>`, order.User.Name, order.ID, order.Car.Brand, order.Car.CarModel,
		price, order.Status, order.CreatedAt.Format("02/01/2006"))

	return sendTracked(mail.To(order.User.Email).
		Subject("Order Confirmation - DriveHub").
		Body(body).
		Send())
}

// ─────────────────────────── Status update ───────────────────────────

// OrderStatusJob emails the customer after an admin changed the order
// status.
type OrderStatusJob struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

func (j OrderStatusJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order status: load order %d: %w", j.OrderID, err)
	}
	if order.User == nil || order.Car == nil {
		logger.Warn("order status: user or car gone, skipping", "order_id", j.OrderID)
		return nil
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Order Status Update</h2>
  <p>Dear %s,</p>
  <p>Your order status has been updated.</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Order Details:</h3>
    <p><strong>Order ID:</strong> %d</p>
    <p><strong>Car:</strong> %s %s</p>
    <p><strong>New Status:</strong> %s</p>
    <p><strong>Updated:</strong> %s</p>
  </div>
  <p>Thank you for choosing DriveHub!</p>
  <p>Best regards,<br>DriveHub Team</p>
</div>`, order.User.Name, order.ID, order.Car.Brand, order.Car.CarModel,
		j.Status, time.Now().Format("02/01/2006"))

	return sendTracked(mail.To(order.User.Email).
		Subject(fmt.Sprintf("Order Status Update - %s", j.Status)).
		Body(body).
		Send())
}

// ─────────────────────────── Contract ───────────────────────────

// ContractEmailJob emails the generated contract PDF to the customer.
// The PDF was already uploaded to storage by the contract service; the
// job fetches it back so a retried delivery never depends on request
// state.
type ContractEmailJob struct {
	OrderID     uint   `json:"order_id"`
	StoragePath string `json:"storage_path"`
}

func (j ContractEmailJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("contract email: load order %d: %w", j.OrderID, err)
	}
	if order.User == nil {
		logger.Warn("contract email: user gone, skipping", "order_id", j.OrderID)
		return nil
	}

	pdfBytes, err := storage.Get(j.StoragePath)
	if err != nil {
		return fmt.Errorf("contract email: fetch %s: %w", j.StoragePath, err)
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Your Contract</h2>
  <p>Dear %s,</p>
  <p>Please find your contract attached to this email.</p>
  <p><strong>Order ID:</strong> %d</p>
  <p>Best regards,<br>DriveHub Team</p>
</div>`, order.User.Name, order.ID)

	return sendTracked(mail.To(order.User.Email).
		Subject("Your Car Rent/Sale Contract").
		Body(body).
		Attach("contract.pdf", pdfBytes).
		Send())
}

// ─────────────────────────── Notification ───────────────────────────

// NotificationEmailJob delivers a stored notification row and records the
// outcome on it. Used for retries of failed notifications.
type NotificationEmailJob struct {
	NotificationID uint `json:"notification_id"`
}

func (j NotificationEmailJob) Handle() error {
	repo := repositories.NewNotificationRepository()
	notif, err := repo.FindByID(j.NotificationID)
	if err != nil {
		return fmt.Errorf("notification email: load %d: %w", j.NotificationID, err)
	}

	sendErr := sendTracked(mail.To(notif.Recipient).
		Subject(notif.Subject).
		Body(notif.Body).
		Send())

	if sendErr != nil {
		notif.Status = models.NotificationFailed
	} else {
		notif.Status = models.NotificationSent
	}
	if err := repo.Update(&notif); err != nil {
		return fmt.Errorf("notification email: update %d: %w", j.NotificationID, err)
	}
	return sendErr
}
