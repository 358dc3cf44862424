package controllers

import (
	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
)

type ContractTemplateController struct {
	contracts *services.ContractService
}

func NewContractTemplateController() *ContractTemplateController {
	return &ContractTemplateController{contracts: services.NewContractService()}
}

func (tc *ContractTemplateController) Index(c *ctx.Context) {
	var isActive *bool
	switch c.Query("isActive") {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	templates, err := tc.contracts.ListTemplates(c.Query("type"), isActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(templates)
}

// ByType lists the active templates usable for one order kind.
func (tc *ContractTemplateController) ByType(c *ctx.Context) {
	templates, err := tc.contracts.TemplatesByType(c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(templates)
}

func (tc *ContractTemplateController) Show(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	template, err := tc.contracts.FindTemplate(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(template)
}

type contractTemplateInput struct {
	Name      string                    `json:"name" validate:"required,min=2,max=100"`
	Type      string                    `json:"type" validate:"required,in=buy,rent,both"`
	Content   string                    `json:"content" validate:"required"`
	Variables []models.ContractVariable `json:"variables"`
	IsActive  *bool                     `json:"isActive"`
}

func (tc *ContractTemplateController) Store(c *ctx.Context) {
	var input contractTemplateInput
	if !c.BindJSON(&input) {
		return
	}

	template, err := tc.contracts.CreateTemplate(services.ContractTemplateInput{
		Name:      input.Name,
		Type:      input.Type,
		Content:   input.Content,
		Variables: models.ContractVariables(input.Variables),
		IsActive:  input.IsActive,
	}, middleware.UserID(c.Context()))
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(template)
}

func (tc *ContractTemplateController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	var input contractTemplateInput
	if !c.BindJSON(&input) {
		return
	}

	template, err := tc.contracts.UpdateTemplate(id, services.ContractTemplateInput{
		Name:      input.Name,
		Type:      input.Type,
		Content:   input.Content,
		Variables: models.ContractVariables(input.Variables),
		IsActive:  input.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(template)
}

func (tc *ContractTemplateController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	if err := tc.contracts.DeleteTemplate(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Contract template deleted successfully", nil)
}

// UploadPDF attaches a ready-made PDF to a template.
func (tc *ContractTemplateController) UploadPDF(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid template id")
		return
	}

	files, err := c.FormFiles("file", 1)
	if err != nil {
		c.Error(400, err.Error())
		return
	}
	if len(files) == 0 {
		c.Error(400, "No file uploaded")
		return
	}

	template, err := tc.contracts.UploadTemplatePDF(id, files[0])
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(template)
}

// Generate previews a template with variables substituted.
func (tc *ContractTemplateController) Generate(c *ctx.Context) {
	var input struct {
		TemplateID uint              `json:"templateId" validate:"required"`
		Variables  map[string]string `json:"variables"`
	}
	if !c.BindJSON(&input) {
		return
	}

	result, err := tc.contracts.GenerateFromTemplate(input.TemplateID, input.Variables)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(result)
}
