package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/pdf"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
	"github.com/shashiranjanraj/drivehub/pkg/storage"
	tpl "github.com/shashiranjanraj/drivehub/pkg/template"
)

var (
	ErrContractTemplateNotFound = errors.New("Contract template not found")
	ErrInvalidContractType      = errors.New("Invalid contract template type")
	ErrNotPDF                   = errors.New("Only PDF files are accepted")
	ErrOrderDataMissing         = errors.New("Order user or car no longer exists")
)

const standardTerms = "Standard terms and conditions apply."

// ContractService builds order contracts and manages the contract
// templates behind them.
type ContractService struct {
	orders    *repositories.OrderRepository
	templates *repositories.ContractTemplateRepository
}

func NewContractService() *ContractService {
	return &ContractService{
		orders:    repositories.NewOrderRepository(),
		templates: repositories.NewContractTemplateRepository(),
	}
}

// ─── Order contracts ──────────────────────────────────────────────────────────

// GenerateOrderContract renders the contract PDF for an order, stores
// it, queues the delivery email, and records the URL on the order.
// contractText overrides the standard terms when present.
func (s *ContractService) GenerateOrderContract(orderID uint, contractText string) (string, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	if order.User == nil || order.Car == nil {
		return "", ErrOrderDataMissing
	}

	doc := buildContractDocument(order, contractText)
	content, err := pdf.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render contract: %w", err)
	}

	key := fmt.Sprintf("contracts/order_%d_%d.pdf", order.ID, time.Now().Unix())
	if err := storage.Put(key, content); err != nil {
		return "", fmt.Errorf("store contract: %w", err)
	}
	metrics.ContractsGenerated.Inc()

	order.ContractURL = storage.URL(key)
	if err := s.orders.Save(&order); err != nil {
		return "", err
	}

	if err := queue.Dispatch(jobs.ContractEmailJob{OrderID: order.ID, StoragePath: key}); err != nil {
		logger.Error("contract: email dispatch failed", "order_id", order.ID, "error", err)
	}

	return order.ContractURL, nil
}

func buildContractDocument(order models.Order, contractText string) pdf.Document {
	fields := []pdf.Field{
		{Label: "Order ID", Value: fmt.Sprintf("%d", order.ID)},
		{Label: "User", Value: fmt.Sprintf("%s (%s, %s)", order.User.Name, order.User.Email, order.User.Phone)},
		{Label: "Car", Value: fmt.Sprintf("%s %s (%d)", order.Car.Brand, order.Car.CarModel, order.Car.Year)},
		{Label: "Type", Value: order.Type},
	}
	if order.Type == models.OrderRent {
		dates := ""
		if order.StartDate != nil && order.EndDate != nil {
			dates = fmt.Sprintf("%s to %s",
				order.StartDate.Format("02/01/2006"),
				order.EndDate.Format("02/01/2006"))
		}
		withDriver := "No"
		if order.WithDriver {
			withDriver = "Yes"
		}
		fields = append(fields,
			pdf.Field{Label: "Rental Dates", Value: dates},
			pdf.Field{Label: "With Driver", Value: withDriver},
		)
	}
	fields = append(fields, pdf.Field{Label: "Status", Value: order.Status})

	terms := contractText
	if terms == "" {
		terms = standardTerms
	}

	return pdf.Document{
		Title:     "Car Rent/Sale Contract",
		Reference: fmt.Sprintf("Order #%d", order.ID),
		Sections:  []pdf.Section{{Heading: "Order Details", Fields: fields}},
		Body:      terms,
		IssuedAt:  time.Now(),
	}
}

// ─── Templates ────────────────────────────────────────────────────────────────

// ListTemplates returns contract templates, optionally filtered by type
// and active flag.
func (s *ContractService) ListTemplates(kind string, isActive *bool) ([]models.ContractTemplate, error) {
	return s.templates.All(kind, isActive)
}

// TemplatesByType returns the active templates usable for one order
// kind, including the "both" ones.
func (s *ContractService) TemplatesByType(kind string) ([]models.ContractTemplate, error) {
	if kind != models.ContractBuy && kind != models.ContractRent {
		return nil, ErrInvalidContractType
	}
	return s.templates.ActiveByType(kind)
}

func (s *ContractService) FindTemplate(id uint) (models.ContractTemplate, error) {
	template, err := s.templates.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContractTemplate{}, ErrContractTemplateNotFound
	}
	return template, err
}

// ContractTemplateInput carries the writable template fields.
type ContractTemplateInput struct {
	Name      string
	Type      string
	Content   string
	Variables models.ContractVariables
	IsActive  *bool
}

func (s *ContractService) CreateTemplate(in ContractTemplateInput, createdByID uint) (models.ContractTemplate, error) {
	if !models.ValidContractType(in.Type) {
		return models.ContractTemplate{}, ErrInvalidContractType
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	template := models.ContractTemplate{
		Name:        in.Name,
		Type:        in.Type,
		Content:     in.Content,
		Variables:   in.Variables,
		IsActive:    active,
		CreatedByID: createdByID,
	}
	if err := s.templates.Create(&template); err != nil {
		return models.ContractTemplate{}, err
	}
	return s.FindTemplate(template.ID)
}

func (s *ContractService) UpdateTemplate(id uint, in ContractTemplateInput) (models.ContractTemplate, error) {
	if !models.ValidContractType(in.Type) {
		return models.ContractTemplate{}, ErrInvalidContractType
	}

	template, err := s.FindTemplate(id)
	if err != nil {
		return models.ContractTemplate{}, err
	}

	template.Name = in.Name
	template.Type = in.Type
	template.Content = in.Content
	template.Variables = in.Variables
	if in.IsActive != nil {
		template.IsActive = *in.IsActive
	}

	if err := s.templates.Update(&template); err != nil {
		return models.ContractTemplate{}, err
	}
	return template, nil
}

func (s *ContractService) DeleteTemplate(id uint) error {
	template, err := s.FindTemplate(id)
	if err != nil {
		return err
	}
	return s.templates.Delete(&template)
}

// UploadTemplatePDF attaches a pre-made PDF to a template. Anything that
// is not a PDF is rejected.
func (s *ContractService) UploadTemplatePDF(id uint, fh *multipart.FileHeader) (models.ContractTemplate, error) {
	template, err := s.FindTemplate(id)
	if err != nil {
		return models.ContractTemplate{}, err
	}

	if !strings.EqualFold(path.Ext(fh.Filename), ".pdf") {
		return models.ContractTemplate{}, ErrNotPDF
	}

	f, err := fh.Open()
	if err != nil {
		return models.ContractTemplate{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.ContractTemplate{}, fmt.Errorf("read upload: %w", err)
	}
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return models.ContractTemplate{}, ErrNotPDF
	}

	key := fmt.Sprintf("contract-templates/%d_%d.pdf", template.ID, time.Now().Unix())
	if err := storage.Put(key, content); err != nil {
		return models.ContractTemplate{}, fmt.Errorf("store upload: %w", err)
	}

	template.PDFURL = storage.URL(key)
	template.PDFFilename = fh.Filename
	if err := s.templates.Update(&template); err != nil {
		return models.ContractTemplate{}, err
	}
	return template, nil
}

// GeneratedContract is what the template preview endpoint returns.
type GeneratedContract struct {
	Template         models.ContractTemplate `json:"template"`
	GeneratedContent string                  `json:"generatedContent"`
	Variables        map[string]string       `json:"variables"`
}

// GenerateFromTemplate renders a template's content with the given
// variables. Unknown placeholders stay in the output so gaps in the
// variable set are visible.
func (s *ContractService) GenerateFromTemplate(templateID uint, vars map[string]string) (GeneratedContract, error) {
	template, err := s.FindTemplate(templateID)
	if err != nil {
		return GeneratedContract{}, err
	}

	if vars == nil {
		vars = map[string]string{}
	}
	// Template-declared defaults fill in for variables the caller omitted.
	for _, v := range template.Variables {
		if _, ok := vars[v.Name]; !ok && v.DefaultValue != "" {
			vars[v.Name] = v.DefaultValue
		}
	}

	return GeneratedContract{
		Template:         template,
		GeneratedContent: tpl.Render(template.Content, vars),
		Variables:        vars,
	}, nil
}
