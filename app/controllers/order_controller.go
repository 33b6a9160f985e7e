package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// OrderController serves a customer's own orders.
type OrderController struct {
	orders   *repositories.OrderRepository
	payments *repositories.PaymentRepository
	tickets  *repositories.TicketRepository
}

func NewOrderController(orders *repositories.OrderRepository, payments *repositories.PaymentRepository, tickets *repositories.TicketRepository) *OrderController {
	return &OrderController{orders: orders, payments: payments, tickets: tickets}
}

// Dashboard renders the customer landing page with recent orders.
func (c *OrderController) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	orders, err := c.orders.FindByEmail(r.Context(), u.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard: load orders", "error", err)
		view.ServerError(w, r)
		return
	}

	open := 0
	if tickets, err := c.tickets.FindByEmail(r.Context(), u.Email); err == nil {
		for _, t := range tickets {
			if t.Status == models.TicketOpen {
				open++
			}
		}
	}

	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}

	view.Render(w, r, http.StatusOK, "dashboard", view.Data{
		"Title":       "Dashboard",
		"Orders":      recent,
		"OrderCount":  len(orders),
		"OpenTickets": open,
	})
}

// List shows all of the customer's orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	orders, err := c.orders.FindByEmail(r.Context(), u.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders: list", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "orders", view.Data{
		"Title": "My Orders", "Orders": orders,
	})
}

// Details shows one order. Customers can only see their own.
func (c *OrderController) Details(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	order, err := c.orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && order.UserEmail != u.Email && !u.IsAdmin()) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("orders: load", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "order-details", view.Data{
		"Title": "Order Details", "Order": order,
	})
}

// Cancel lets a customer withdraw their own order while it is still
// pending. Anything already in progress has to go through support.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	order, err := c.orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && order.UserEmail != u.Email) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("orders: load for cancel", "error", err)
		view.ServerError(w, r)
		return
	}

	if order.Status != models.OrderPending {
		sess := session.FromCtx(r)
		sess.Flash("message", "Only pending orders can be cancelled. Please contact support.")
		_ = sess.Save(w)
		http.Redirect(w, r, "/orders/"+order.ID.Hex(), http.StatusFound)
		return
	}

	if err := c.orders.UpdateStatus(r.Context(), order.ID.Hex(), models.OrderCancelled); err != nil {
		logger.WithCtx(r.Context()).Error("orders: cancel", "error", err)
		view.ServerError(w, r)
		return
	}

	logger.WithCtx(r.Context()).Info("order cancelled", "order_id", order.ID.Hex(), "by", u.Email)

	sess := session.FromCtx(r)
	sess.Flash("message", "Your order has been cancelled.")
	_ = sess.Save(w)
	http.Redirect(w, r, "/orders", http.StatusFound)
}

// Pay records payment on the customer's own unpaid order and appends a
// ledger entry.
func (c *OrderController) Pay(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	order, err := c.orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && order.UserEmail != u.Email) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("orders: load for payment", "error", err)
		view.ServerError(w, r)
		return
	}

	if order.PaymentStatus != models.PaymentUnpaid {
		sess := session.FromCtx(r)
		sess.Flash("message", "This order is already settled.")
		_ = sess.Save(w)
		http.Redirect(w, r, "/orders/"+order.ID.Hex(), http.StatusFound)
		return
	}

	if err := c.orders.MarkPaid(r.Context(), order.ID); err != nil {
		logger.WithCtx(r.Context()).Error("orders: mark paid", "error", err)
		view.ServerError(w, r)
		return
	}

	payment := &models.Payment{
		OrderID:   order.ID,
		UserEmail: u.Email,
		Amount:    order.Price,
		Method:    "online",
		Status:    models.PaymentPaid,
		CreatedAt: time.Now(),
	}
	if err := c.payments.Create(r.Context(), payment); err != nil {
		// The order is already marked paid; log the ledger gap loudly.
		logger.WithCtx(r.Context()).Error("orders: ledger write failed",
			"order_id", order.ID.Hex(), "error", err)
	}

	logger.WithCtx(r.Context()).Info("order paid", "order_id", order.ID.Hex(), "amount", order.Price)

	sess := session.FromCtx(r)
	sess.Flash("message", "Payment received. Thank you!")
	_ = sess.Save(w)
	http.Redirect(w, r, "/orders/"+order.ID.Hex(), http.StatusFound)
}
