package repositories

import (
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
)

// ─── Email templates ──────────────────────────────────────────────────────────

// EmailTemplateRepository handles database operations for EmailTemplate.
type EmailTemplateRepository struct{}

func NewEmailTemplateRepository() *EmailTemplateRepository {
	return &EmailTemplateRepository{}
}

func (r *EmailTemplateRepository) All() ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := orm.DB().Model(&models.EmailTemplate{}).Order("created_at desc").Get(&templates)
	return templates, err
}

func (r *EmailTemplateRepository) FindByID(id uint) (models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := orm.DB().Model(&models.EmailTemplate{}).Where("id = ?", id).First(&template)
	return template, err
}

func (r *EmailTemplateRepository) Create(template *models.EmailTemplate) error {
	return orm.DB().Create(template)
}

func (r *EmailTemplateRepository) Update(template *models.EmailTemplate) error {
	return orm.DB().Save(template)
}

func (r *EmailTemplateRepository) Delete(template *models.EmailTemplate) error {
	return orm.DB().Delete(template)
}

// ─── Contract templates ───────────────────────────────────────────────────────

// ContractTemplateRepository handles database operations for ContractTemplate.
type ContractTemplateRepository struct{}

func NewContractTemplateRepository() *ContractTemplateRepository {
	return &ContractTemplateRepository{}
}

// All returns contract templates newest first, optionally narrowed by
// type and active flag.
func (r *ContractTemplateRepository) All(kind string, isActive *bool) ([]models.ContractTemplate, error) {
	q := orm.DB().Model(&models.ContractTemplate{}).Preload("CreatedBy")
	if kind != "" {
		q = q.Where("type = ?", kind)
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}

	var templates []models.ContractTemplate
	err := q.Order("created_at desc").Get(&templates)
	return templates, err
}

func (r *ContractTemplateRepository) FindByID(id uint) (models.ContractTemplate, error) {
	var template models.ContractTemplate
	err := orm.DB().Model(&models.ContractTemplate{}).
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&template)
	return template, err
}

// ActiveByType returns active templates applicable to the given order
// kind. A template marked "both" matches either kind.
func (r *ContractTemplateRepository) ActiveByType(kind string) ([]models.ContractTemplate, error) {
	var templates []models.ContractTemplate
	err := orm.DB().Model(&models.ContractTemplate{}).
		Preload("CreatedBy").
		Where("is_active = ?", true).
		Where("type = ? OR type = ?", kind, models.ContractBoth).
		Order("created_at desc").
		Get(&templates)
	return templates, err
}

func (r *ContractTemplateRepository) Create(template *models.ContractTemplate) error {
	return orm.DB().Create(template)
}

func (r *ContractTemplateRepository) Update(template *models.ContractTemplate) error {
	return orm.DB().Save(template)
}

func (r *ContractTemplateRepository) Delete(template *models.ContractTemplate) error {
	return orm.DB().Delete(template)
}
