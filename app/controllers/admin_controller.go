package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// AdminController serves the back office: users, catalog, orders and tickets.
type AdminController struct {
	users    *repositories.UserRepository
	services *repositories.ServiceRepository
	orders   *repositories.OrderRepository
	payments *repositories.PaymentRepository
	tickets  *repositories.TicketRepository
}

func NewAdminController(
	users *repositories.UserRepository,
	services *repositories.ServiceRepository,
	orders *repositories.OrderRepository,
	payments *repositories.PaymentRepository,
	tickets *repositories.TicketRepository,
) *AdminController {
	return &AdminController{
		users: users, services: services, orders: orders,
		payments: payments, tickets: tickets,
	}
}

// Dashboard shows headline counts for every back-office area.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := c.users.All(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("admin: load users", "error", err)
		view.ServerError(w, r)
		return
	}
	serviceCount, _ := c.services.Count(ctx)
	orders, _ := c.orders.Find(ctx, bson.M{})
	tickets, _ := c.tickets.All(ctx)

	view.Render(w, r, http.StatusOK, "admin", view.Data{
		"Title":        "Admin",
		"UserCount":    len(users),
		"ServiceCount": serviceCount,
		"OrderCount":   len(orders),
		"TicketCount":  len(tickets),
	})
}

// ── Users ────────────────────────────────────────────────────────────────────

func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load users", "error", err)
		view.ServerError(w, r)
		return
	}
	view.Render(w, r, http.StatusOK, "admin-users", view.Data{
		"Title": "Users", "Users": users,
	})
}

func (c *AdminController) EditUser(w http.ResponseWriter, r *http.Request) {
	account, err := c.users.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load user", "error", err)
		view.ServerError(w, r)
		return
	}
	view.Render(w, r, http.StatusOK, "admin-edit-user", view.Data{
		"Title": "Edit User", "Account": account,
	})
}

func (c *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	role := r.PostFormValue("role")
	status := r.PostFormValue("accountStatus")
	if (role != models.RoleCustomer && role != models.RoleAdmin) ||
		(status != "active" && status != "suspended") {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	err := c.users.UpdateByID(r.Context(), chi.URLParam(r, "id"),
		r.PostFormValue("firstName"), r.PostFormValue("lastName"), role, status)
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: update user", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/users", "User updated.")
}

func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromCtx(r)

	account, err := c.users.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load user", "error", err)
		view.ServerError(w, r)
		return
	}

	if account.Email == admin.Email {
		flashAndRedirect(w, r, "/admin/users", "You cannot delete your own account.")
		return
	}

	if err := c.users.Delete(r.Context(), account.ID.Hex()); err != nil {
		logger.WithCtx(r.Context()).Error("admin: delete user", "error", err)
		view.ServerError(w, r)
		return
	}

	logger.WithCtx(r.Context()).Info("user deleted", "email", account.Email, "by", admin.Email)
	flashAndRedirect(w, r, "/admin/users", "User deleted.")
}

// ── Services ─────────────────────────────────────────────────────────────────

func (c *AdminController) Services(w http.ResponseWriter, r *http.Request) {
	c.renderServices(w, r, http.StatusOK, "")
}

func (c *AdminController) CreateService(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/services", http.StatusFound)
		return
	}

	name := r.PostFormValue("name")
	description := r.PostFormValue("description")
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if name == "" || description == "" || err != nil || price < 0 {
		c.renderServices(w, r, http.StatusUnprocessableEntity,
			"Name, description and a non-negative price are required.")
		return
	}

	taken, err := c.services.NameTaken(r.Context(), name, "")
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: name check", "error", err)
		view.ServerError(w, r)
		return
	}
	if taken {
		c.renderServices(w, r, http.StatusConflict, "A service with that name already exists.")
		return
	}

	svc := &models.Service{Name: name, Description: description, Price: price}
	if err := c.services.Create(r.Context(), svc); err != nil {
		logger.WithCtx(r.Context()).Error("admin: create service", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/services", "Service added.")
}

func (c *AdminController) EditService(w http.ResponseWriter, r *http.Request) {
	svc, err := c.services.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load service", "error", err)
		view.ServerError(w, r)
		return
	}
	view.Render(w, r, http.StatusOK, "admin-edit-service", view.Data{
		"Title": "Edit Service", "Service": svc,
	})
}

func (c *AdminController) UpdateService(w http.ResponseWriter, r *http.Request) {
	hex := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/services", http.StatusFound)
		return
	}

	name := r.PostFormValue("name")
	description := r.PostFormValue("description")
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if name == "" || description == "" || err != nil || price < 0 {
		c.renderServices(w, r, http.StatusUnprocessableEntity,
			"Name, description and a non-negative price are required.")
		return
	}

	taken, err := c.services.NameTaken(r.Context(), name, hex)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: name check", "error", err)
		view.ServerError(w, r)
		return
	}
	if taken {
		c.renderServices(w, r, http.StatusConflict, "A service with that name already exists.")
		return
	}

	if err := c.services.Update(r.Context(), hex, name, description, price); err != nil {
		logger.WithCtx(r.Context()).Error("admin: update service", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/services", "Service updated.")
}

// DeleteService refuses to remove catalog entries that orders still
// reference; history pages would otherwise lose their labels.
func (c *AdminController) DeleteService(w http.ResponseWriter, r *http.Request) {
	svc, err := c.services.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load service", "error", err)
		view.ServerError(w, r)
		return
	}

	n, err := c.orders.CountReferencingService(r.Context(), svc)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: reference count", "error", err)
		view.ServerError(w, r)
		return
	}
	if n > 0 {
		c.renderServices(w, r, http.StatusConflict,
			"This service has orders on record and cannot be deleted.")
		return
	}

	if err := c.services.Delete(r.Context(), svc.ID); err != nil {
		logger.WithCtx(r.Context()).Error("admin: delete service", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/services", "Service deleted.")
}

func (c *AdminController) renderServices(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	services, err := c.services.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load services", "error", err)
		view.ServerError(w, r)
		return
	}
	data := view.Data{"Title": "Services", "Services": services}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	view.Render(w, r, status, "admin-services", data)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.Find(r.Context(), bson.M{})
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load orders", "error", err)
		view.ServerError(w, r)
		return
	}
	view.Render(w, r, http.StatusOK, "admin-orders", view.Data{
		"Title": "Orders", "Orders": orders, "Statuses": models.OrderStatuses,
	})
}

func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/orders", http.StatusFound)
		return
	}

	status := r.PostFormValue("status")
	if !models.ValidOrderStatus(status) {
		flashAndRedirect(w, r, "/admin/orders", "Unknown order status.")
		return
	}

	err := c.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: update order status", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/orders", "Order status updated.")
}

// RefundOrder reverses a paid order: the order flips to refunded and a
// negative ledger entry records who issued it.
func (c *AdminController) RefundOrder(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromCtx(r)

	order, err := c.orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load order", "error", err)
		view.ServerError(w, r)
		return
	}

	if order.PaymentStatus != models.PaymentPaid {
		flashAndRedirect(w, r, "/admin/orders", "Only paid orders can be refunded.")
		return
	}

	if err := c.orders.MarkRefunded(r.Context(), order.ID); err != nil {
		logger.WithCtx(r.Context()).Error("admin: mark refunded", "error", err)
		view.ServerError(w, r)
		return
	}

	refund := &models.Payment{
		OrderID:    order.ID,
		UserEmail:  order.UserEmail,
		Amount:     -order.Price,
		Method:     "refund",
		Status:     models.PaymentRefundStatus,
		RefundedBy: admin.Email,
		CreatedAt:  time.Now(),
	}
	if err := c.payments.Create(r.Context(), refund); err != nil {
		logger.WithCtx(r.Context()).Error("admin: refund ledger write failed",
			"order_id", order.ID.Hex(), "error", err)
	}

	logger.WithCtx(r.Context()).Info("order refunded",
		"order_id", order.ID.Hex(), "amount", order.Price, "by", admin.Email)
	flashAndRedirect(w, r, "/admin/orders", "Order refunded.")
}

// ── Payments ─────────────────────────────────────────────────────────────────

// Payments shows the full ledger, refunds included, newest first.
func (c *AdminController) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := c.payments.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load payments", "error", err)
		view.ServerError(w, r)
		return
	}

	var collected float64
	for _, p := range payments {
		collected += p.Amount
	}

	view.Render(w, r, http.StatusOK, "admin-payments", view.Data{
		"Title": "Payments", "Payments": payments, "Collected": collected,
	})
}

// ── Tickets ──────────────────────────────────────────────────────────────────

func (c *AdminController) Tickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := c.tickets.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: load tickets", "error", err)
		view.ServerError(w, r)
		return
	}
	view.Render(w, r, http.StatusOK, "admin-tickets", view.Data{
		"Title": "Tickets", "Tickets": tickets,
	})
}

func (c *AdminController) RespondTicket(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/tickets", http.StatusFound)
		return
	}
	message := r.PostFormValue("message")
	if message == "" {
		flashAndRedirect(w, r, "/admin/tickets", "A reply message is required.")
		return
	}

	resp := models.TicketResponse{
		Responder: admin.FullName(),
		Message:   message,
		CreatedAt: time.Now(),
	}
	err := c.tickets.AddResponse(r.Context(), chi.URLParam(r, "id"), resp)
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("admin: respond ticket", "error", err)
		view.ServerError(w, r)
		return
	}

	flashAndRedirect(w, r, "/admin/tickets", "Reply sent.")
}

func flashAndRedirect(w http.ResponseWriter, r *http.Request, to, msg string) {
	sess := session.FromCtx(r)
	sess.Flash("message", msg)
	_ = sess.Save(w)
	http.Redirect(w, r, to, http.StatusFound)
}
