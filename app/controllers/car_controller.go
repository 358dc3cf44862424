package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/validate"
)

type CarController struct {
	cars *services.CarService
}

func NewCarController() *CarController {
	return &CarController{cars: services.NewCarService()}
}

// Index is the public catalog listing with filters, sort and
// pagination.
func (cc *CarController) Index(c *ctx.Context) {
	var categoryID uint
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			categoryID = uint(id)
		}
	}

	cars, pagination, err := cc.cars.List(repositories.CarFilter{
		CategoryID: categoryID,
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 12),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(cars, pagination)
}

func (cc *CarController) Show(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid car id")
		return
	}

	car, err := cc.cars.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(car)
}

// carForm mirrors the multipart fields of the listing form. Images
// arrive separately as file uploads.
type carForm struct {
	Title        string  `json:"title" validate:"required,min=2,max=150"`
	Brand        string  `json:"brand" validate:"required,min=1,max=50"`
	Model        string  `json:"model" validate:"required,min=1,max=50"`
	Year         int     `json:"year" validate:"required,gte=1950,lte=2100"`
	Fuel         string  `json:"fuel" validate:"nullable,max=20"`
	Mileage      int     `json:"mileage" validate:"nullable,gte=0"`
	Transmission string  `json:"transmission" validate:"nullable,max=20"`
	SalePrice    float64 `json:"salePrice" validate:"nullable,gte=0"`
	RentPrice    float64 `json:"rentPrice" validate:"nullable,gte=0"`
	Category     uint    `json:"category" validate:"required"`
	WithDriver   bool    `json:"withDriver"`
}

func (cc *CarController) bindForm(c *ctx.Context) (services.CarInput, bool) {
	form := carForm{
		Title:        c.PostForm("title"),
		Brand:        c.PostForm("brand"),
		Model:        c.PostForm("model"),
		Fuel:         c.PostForm("fuel"),
		Transmission: c.PostForm("transmission"),
	}
	form.Year, _ = strconv.Atoi(c.PostForm("year"))
	form.Mileage, _ = strconv.Atoi(c.PostForm("mileage"))
	form.SalePrice, _ = strconv.ParseFloat(c.PostForm("salePrice"), 64)
	form.RentPrice, _ = strconv.ParseFloat(c.PostForm("rentPrice"), 64)
	if id, err := strconv.ParseUint(c.PostForm("category"), 10, 64); err == nil {
		form.Category = uint(id)
	}
	form.WithDriver = c.PostForm("withDriver") == "true"

	if errs := validate.Struct(form); validate.HasErrors(errs) {
		c.ValidationError(errs)
		return services.CarInput{}, false
	}

	return services.CarInput{
		Title:        form.Title,
		Brand:        form.Brand,
		Model:        form.Model,
		Year:         form.Year,
		Fuel:         form.Fuel,
		Mileage:      form.Mileage,
		Transmission: form.Transmission,
		SalePrice:    form.SalePrice,
		RentPrice:    form.RentPrice,
		CategoryID:   form.Category,
		WithDriver:   form.WithDriver,
	}, true
}

func (cc *CarController) Store(c *ctx.Context) {
	input, ok := cc.bindForm(c)
	if !ok {
		return
	}

	files, err := c.FormFiles("images", services.MaxCarImages)
	if err != nil {
		c.Error(400, err.Error())
		return
	}

	car, err := cc.cars.Create(input, files)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(car)
}

func (cc *CarController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid car id")
		return
	}

	input, ok := cc.bindForm(c)
	if !ok {
		return
	}

	files, err := c.FormFiles("images", services.MaxCarImages)
	if err != nil {
		c.Error(400, err.Error())
		return
	}

	car, err := cc.cars.Update(id, input, files)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(car)
}

func (cc *CarController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid car id")
		return
	}

	if err := cc.cars.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Car deleted", nil)
}
