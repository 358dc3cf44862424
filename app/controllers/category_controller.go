package controllers

import (
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{categories: services.NewCategoryService()}
}

func (cc *CategoryController) Index(c *ctx.Context) {
	categories, err := cc.categories.All()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(categories)
}

func (cc *CategoryController) Show(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid category id")
		return
	}

	category, err := cc.categories.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(category)
}

type categoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"nullable,max=500"`
}

func (cc *CategoryController) Store(c *ctx.Context) {
	var input categoryInput
	if !c.BindJSON(&input) {
		return
	}

	category, err := cc.categories.Create(input.Name, input.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(category)
}

func (cc *CategoryController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid category id")
		return
	}

	var input categoryInput
	if !c.BindJSON(&input) {
		return
	}

	category, err := cc.categories.Update(id, input.Name, input.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(category)
}

func (cc *CategoryController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid category id")
		return
	}

	if err := cc.categories.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Category deleted successfully", nil)
}
