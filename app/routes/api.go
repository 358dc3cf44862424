package routes

import (
	"net/http"

	"github.com/shashiranjanraj/drivehub/app/controllers"
	"github.com/shashiranjanraj/drivehub/app/graph"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
	"github.com/shashiranjanraj/drivehub/pkg/router"
	"github.com/shashiranjanraj/drivehub/pkg/ws"
)

// RegisterAPI wires every HTTP endpoint. orderFeed is the hub backing the
// admin live feed; the server relays order lifecycle events into it.
func RegisterAPI(r *router.Router, orderFeed *ws.Hub) {
	users := controllers.NewUserController()
	cars := controllers.NewCarController()
	categories := controllers.NewCategoryController()
	orders := controllers.NewOrderController()
	contracts := controllers.NewContractTemplateController()
	admin := controllers.NewAdminController()

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	api := r.Group("/api")

	// Public
	api.Post("/users/register", "users.register", ctx.Wrap(users.Register))
	api.Post("/users/login", "users.login", ctx.Wrap(users.Login))

	api.Get("/cars", "cars.index", ctx.Wrap(cars.Index))
	api.Get("/cars/{id}", "cars.show", ctx.Wrap(cars.Show))
	api.Get("/categories", "categories.index", ctx.Wrap(categories.Index))
	api.Get("/categories/{id}", "categories.show", ctx.Wrap(categories.Show))

	if schema, err := graph.NewSchema(); err == nil {
		api.Post("/graphql", "graphql", graph.Handler(schema))
	} else {
		logger.Error("routes: graphql schema build failed", "error", err)
	}

	// Authenticated customers
	authed := api.Group("", middleware.Auth)
	authed.Get("/users/profile", "users.profile", ctx.Wrap(users.Profile))
	authed.Put("/users/profile", "users.profile.update", ctx.Wrap(users.UpdateProfile))
	authed.Put("/users/change-password", "users.change-password", ctx.Wrap(users.ChangePassword))

	authed.Post("/orders", "orders.store", ctx.Wrap(orders.Store))
	authed.Get("/orders/my", "orders.mine", ctx.Wrap(orders.MyOrders))
	authed.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	authed.Post("/orders/{id}/contract", "orders.contract", ctx.Wrap(orders.GenerateContract))

	// Admin
	adm := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	adm.Get("/stats", "admin.stats", ctx.Wrap(admin.Stats))

	adm.Get("/users", "admin.users.index", ctx.Wrap(users.Index))
	adm.Put("/users/{id}", "admin.users.update", ctx.Wrap(users.Update))
	adm.Delete("/users/{id}", "admin.users.destroy", ctx.Wrap(users.Destroy))

	adm.Post("/cars", "admin.cars.store", ctx.Wrap(cars.Store))
	adm.Put("/cars/{id}", "admin.cars.update", ctx.Wrap(cars.Update))
	adm.Delete("/cars/{id}", "admin.cars.destroy", ctx.Wrap(cars.Destroy))

	adm.Post("/categories", "admin.categories.store", ctx.Wrap(categories.Store))
	adm.Put("/categories/{id}", "admin.categories.update", ctx.Wrap(categories.Update))
	adm.Delete("/categories/{id}", "admin.categories.destroy", ctx.Wrap(categories.Destroy))

	adm.Get("/orders", "admin.orders.index", ctx.Wrap(orders.Index))
	adm.Patch("/orders/{id}/status", "admin.orders.status", ctx.Wrap(orders.UpdateStatus))
	adm.Patch("/orders/bulk-status", "admin.orders.bulk", ctx.Wrap(orders.BulkUpdateStatus))
	adm.Patch("/orders/{id}/approve-contract", "admin.orders.approve", ctx.Wrap(orders.ApproveContract))
	adm.Delete("/orders/{id}", "admin.orders.destroy", ctx.Wrap(orders.Destroy))

	adm.Get("/contract-templates", "admin.contracts.index", ctx.Wrap(contracts.Index))
	adm.Get("/contract-templates/type/{type}", "admin.contracts.bytype", ctx.Wrap(contracts.ByType))
	adm.Get("/contract-templates/{id}", "admin.contracts.show", ctx.Wrap(contracts.Show))
	adm.Post("/contract-templates", "admin.contracts.store", ctx.Wrap(contracts.Store))
	adm.Put("/contract-templates/{id}", "admin.contracts.update", ctx.Wrap(contracts.Update))
	adm.Delete("/contract-templates/{id}", "admin.contracts.destroy", ctx.Wrap(contracts.Destroy))
	adm.Post("/contract-templates/{id}/pdf", "admin.contracts.pdf", ctx.Wrap(contracts.UploadPDF))
	adm.Post("/contract-templates/generate", "admin.contracts.generate", ctx.Wrap(contracts.Generate))

	adm.Get("/email-templates", "admin.emails.index", ctx.Wrap(admin.EmailTemplates))
	adm.Post("/email-templates", "admin.emails.store", ctx.Wrap(admin.CreateEmailTemplate))
	adm.Put("/email-templates/{id}", "admin.emails.update", ctx.Wrap(admin.UpdateEmailTemplate))
	adm.Delete("/email-templates/{id}", "admin.emails.destroy", ctx.Wrap(admin.DeleteEmailTemplate))
	adm.Get("/notifications", "admin.notifications", ctx.Wrap(admin.Notifications))
	adm.Post("/email-templates/{templateId}/test", "admin.emails.test", ctx.Wrap(admin.SendTestEmail))
	adm.Post("/email-templates/{templateId}/bulk", "admin.emails.bulk", ctx.Wrap(admin.SendBulkEmail))

	// Live order feed for the admin dashboard.
	r.Get("/ws/admin/orders", "admin.orders.feed", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, orderFeed)
	})
}
