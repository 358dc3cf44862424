package controllers

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
	"github.com/shashiranjanraj/drivehub/pkg/validate"
)

type OrderController struct {
	orders    *services.OrderService
	contracts *services.ContractService
}

func NewOrderController() *OrderController {
	return &OrderController{
		orders:    services.NewOrderService(),
		contracts: services.NewContractService(),
	}
}

// Store places an order for the authenticated user.
func (oc *OrderController) Store(c *ctx.Context) {
	var input struct {
		Car        uint   `json:"car" validate:"required"`
		Type       string `json:"type" validate:"required,in=Rent,Buy"`
		WithDriver bool   `json:"withDriver"`
		StartDate  string `json:"startDate" validate:"nullable,date"`
		EndDate    string `json:"endDate" validate:"nullable,date"`
	}
	if !c.BindJSON(&input) {
		return
	}

	var start, end *time.Time
	if input.StartDate != "" {
		t, _ := validate.ParseDate(input.StartDate)
		start = &t
	}
	if input.EndDate != "" {
		t, _ := validate.ParseDate(input.EndDate)
		end = &t
	}

	order, err := oc.orders.Place(middleware.UserID(c.Context()), services.OrderInput{
		CarID:      input.Car,
		Type:       input.Type,
		WithDriver: input.WithDriver,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// MyOrders lists the authenticated user's orders.
func (oc *OrderController) MyOrders(c *ctx.Context) {
	orders, err := oc.orders.ByUser(middleware.UserID(c.Context()))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Show returns one order. Customers only see their own.
func (oc *OrderController) Show(c *ctx.Context) {
	order, ok := oc.loadAuthorized(c)
	if !ok {
		return
	}
	c.Success(order)
}

// Index is the admin order list with filters.
func (oc *OrderController) Index(c *ctx.Context) {
	orders, pagination, err := oc.orders.List(repositories.OrderFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(orders, pagination)
}

func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid order id")
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,in=Pending,Confirmed,Completed"`
	}
	if !c.BindJSON(&input) {
		return
	}

	order, err := oc.orders.UpdateStatus(id, input.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// BulkUpdateStatus applies one status to many orders. Orders that fail
// their transition guard are skipped; the count reflects actual
// changes.
func (oc *OrderController) BulkUpdateStatus(c *ctx.Context) {
	var input struct {
		OrderIDs []uint `json:"orderIds" validate:"required"`
		Status   string `json:"status" validate:"required,in=Pending,Confirmed,Completed"`
	}
	if !c.BindJSON(&input) {
		return
	}

	updated, err := oc.orders.BulkUpdateStatus(input.OrderIDs, input.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage(fmt.Sprintf("%d orders updated successfully", updated), map[string]interface{}{
		"updated": updated,
	})
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid order id")
		return
	}

	if err := oc.orders.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Order deleted successfully", nil)
}

// GenerateContract builds and emails the contract PDF. Available to the
// order's owner and to admins.
func (oc *OrderController) GenerateContract(c *ctx.Context) {
	order, ok := oc.loadAuthorized(c)
	if !ok {
		return
	}

	var input struct {
		ContractText string `json:"contractText" validate:"nullable,max=20000"`
	}
	if !c.BindJSON(&input) {
		return
	}

	url, err := oc.contracts.GenerateOrderContract(order.ID, input.ContractText)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"contractUrl": url})
}

// ApproveContract marks the order's contract approved.
func (oc *OrderController) ApproveContract(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid order id")
		return
	}

	order, err := oc.orders.ApproveContract(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Contract approved", order)
}

// loadAuthorized fetches the order in the URL and enforces that the
// caller is its owner or an admin.
func (oc *OrderController) loadAuthorized(c *ctx.Context) (models.Order, bool) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid order id")
		return models.Order{}, false
	}

	order, err := oc.orders.Find(id)
	if err != nil {
		fail(c, err)
		return models.Order{}, false
	}

	claims := middleware.Claims(c.Context())
	if claims == nil || (!claims.IsAdmin && order.UserID != claims.UserID) {
		c.Forbidden("Not authorized")
		return models.Order{}, false
	}
	return order, true
}
