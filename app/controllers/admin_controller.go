package controllers

import (
	"fmt"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
)

type AdminController struct {
	admin         *services.AdminService
	auth          *services.AuthService
	notifications *services.NotificationService
}

func NewAdminController() *AdminController {
	return &AdminController{
		admin:         services.NewAdminService(),
		auth:          services.NewAuthService(),
		notifications: services.NewNotificationService(),
	}
}

// Stats serves the dashboard summary.
func (ac *AdminController) Stats(c *ctx.Context) {
	stats, err := ac.admin.Stats()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(stats)
}

// ─── Email templates ──────────────────────────────────────────────────────────

func (ac *AdminController) EmailTemplates(c *ctx.Context) {
	templates, err := ac.notifications.Templates()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(templates)
}

type emailTemplateInput struct {
	Name      string   `json:"name" validate:"required,min=2,max=100"`
	Subject   string   `json:"subject" validate:"required,max=200"`
	Body      string   `json:"body" validate:"required"`
	Type      string   `json:"type" validate:"required,in=order,user,system"`
	Variables []string `json:"variables"`
}

func (ac *AdminController) CreateEmailTemplate(c *ctx.Context) {
	var input emailTemplateInput
	if !c.BindJSON(&input) {
		return
	}

	template, err := ac.notifications.CreateTemplate(
		input.Name, input.Subject, input.Body, input.Type,
		models.StringList(input.Variables))
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(template)
}

func (ac *AdminController) UpdateEmailTemplate(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	var input emailTemplateInput
	if !c.BindJSON(&input) {
		return
	}

	template, err := ac.notifications.UpdateTemplate(id,
		input.Name, input.Subject, input.Body, input.Type,
		models.StringList(input.Variables))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(template)
}

func (ac *AdminController) DeleteEmailTemplate(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	if err := ac.notifications.DeleteTemplate(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Template deleted successfully", nil)
}

// ─── Notifications ────────────────────────────────────────────────────────────

func (ac *AdminController) Notifications(c *ctx.Context) {
	notifications, err := ac.notifications.Latest(c.QueryInt("limit", 100))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(notifications)
}

// SendTestEmail delivers the template to the requesting admin's own
// address.
func (ac *AdminController) SendTestEmail(c *ctx.Context) {
	templateID, err := c.ParamUint("templateId")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	admin, err := ac.auth.Profile(middleware.UserID(c.Context()))
	if err != nil {
		fail(c, err)
		return
	}

	if err := ac.notifications.SendTest(templateID, admin.Email); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Test email sent successfully", nil)
}

// SendBulkEmail queues the template to every user.
func (ac *AdminController) SendBulkEmail(c *ctx.Context) {
	templateID, err := c.ParamUint("templateId")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	count, err := ac.notifications.SendBulk(templateID)
	if err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage(fmt.Sprintf("Bulk email sent to %d users", count), nil)
}
