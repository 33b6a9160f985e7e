// Package routes wires every HTTP route to its controller.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/controllers"
	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/rbac"
	"github.com/shashiranjanraj/freshfold/pkg/router"
)

// Controllers bundles everything RegisterWeb mounts. The server bootstrap
// constructs the set once with its repositories and services.
type Controllers struct {
	Home     *controllers.HomeController
	Auth     *controllers.AuthController
	Password *controllers.PasswordController
	Profile  *controllers.ProfileController
	Booking  *controllers.BookingController
	Order    *controllers.OrderController
	Billing  *controllers.BillingController
	Support  *controllers.SupportController
	Admin    *controllers.AdminController
	Report   *controllers.ReportController
}

// RegisterWeb mounts the whole site: public pages, the guest-only auth
// pages, the authenticated customer area and the admin back office.
func RegisterWeb(r *router.Router, c Controllers) {
	// Public pages.
	r.Get("/", "home", c.Home.Index)
	r.Get("/about", "about", c.Home.About)
	r.Get("/contact", "contact", c.Home.Contact)
	r.Get("/services", "services", c.Booking.Services)
	r.Get("/verify-email", "auth.verify", c.Auth.VerifyEmail)

	// Guest-only auth pages: signed-in users get bounced to the dashboard.
	guest := r.Group("", rbac.Guest)
	guest.Get("/register", "auth.register", c.Auth.ShowRegister)
	guest.Post("/register", "", c.Auth.Register)
	guest.Get("/login", "auth.login", c.Auth.ShowLogin)
	guest.Post("/login", "", c.Auth.Login)
	guest.Get("/forgot-password", "password.forgot", c.Password.ShowForgot)
	guest.Post("/forgot-password", "", c.Password.Forgot)
	guest.Get("/reset-password", "password.reset", c.Password.ShowReset)
	guest.Post("/reset-password", "", c.Password.Reset)

	r.Post("/logout", "auth.logout", c.Auth.Logout)

	// Customer area.
	user := r.Group("", middleware.RequireUser)
	user.Get("/dashboard", "dashboard", c.Order.Dashboard)
	user.Get("/profile", "profile", c.Profile.Show)
	user.Post("/profile", "", c.Profile.Update)
	user.Post("/profile/password", "", c.Profile.ChangePassword)
	user.Get("/booking/{id}", "booking.show", c.Booking.Show)
	user.Post("/booking/{id}", "", c.Booking.Create)
	user.Get("/orders", "orders", c.Order.List)
	user.Get("/orders/{id}", "orders.details", c.Order.Details)
	user.Post("/orders/{id}/pay", "", c.Order.Pay)
	user.Post("/orders/{id}/cancel", "", c.Order.Cancel)
	user.Get("/billing", "billing", c.Billing.List)
	user.Get("/support", "support", c.Support.Show)
	user.Post("/support", "", c.Support.Create)

	// Admin back office.
	admin := r.Group("/admin", middleware.RequireUser, rbac.HasRole(models.RoleAdmin))
	admin.Get("", "admin.dashboard", c.Admin.Dashboard)
	admin.Get("/users", "admin.users", c.Admin.Users)
	admin.Get("/users/{id}/edit", "admin.users.edit", c.Admin.EditUser)
	admin.Post("/users/{id}/edit", "", c.Admin.UpdateUser)
	admin.Post("/users/{id}/delete", "", c.Admin.DeleteUser)
	admin.Get("/services", "admin.services", c.Admin.Services)
	admin.Post("/services", "", c.Admin.CreateService)
	admin.Get("/services/{id}/edit", "admin.services.edit", c.Admin.EditService)
	admin.Post("/services/{id}/edit", "", c.Admin.UpdateService)
	admin.Post("/services/{id}/delete", "", c.Admin.DeleteService)
	admin.Get("/orders", "admin.orders", c.Admin.Orders)
	admin.Post("/orders/{id}/status", "", c.Admin.UpdateOrderStatus)
	admin.Post("/orders/{id}/refund", "", c.Admin.RefundOrder)
	admin.Get("/payments", "admin.payments", c.Admin.Payments)
	admin.Get("/tickets", "admin.tickets", c.Admin.Tickets)
	admin.Post("/tickets/{id}/respond", "", c.Admin.RespondTicket)

	// Sales reports.
	admin.Get("/reports", "admin.reports", c.Report.Show)
	admin.Get("/reports/daily", "admin.reports.daily", c.Report.Daily)
	admin.Get("/reports/overall", "admin.reports.overall", c.Report.Overall)
	admin.Get("/reports/export/{format}", "admin.reports.export", c.Report.Export)

	// Static assets.
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir("public")))
	r.Get("/static/*", "", fileServer.ServeHTTP)
}
