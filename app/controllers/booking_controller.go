package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/event"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/metrics"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// BookingController serves the catalog page and the booking flow.
type BookingController struct {
	services *repositories.ServiceRepository
	orders   *repositories.OrderRepository
}

func NewBookingController(services *repositories.ServiceRepository, orders *repositories.OrderRepository) *BookingController {
	return &BookingController{services: services, orders: orders}
}

// Services renders the public catalog, optionally filtered by ?q=.
func (c *BookingController) Services(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	services, err := c.services.Search(r.Context(), q)
	if err != nil {
		logger.WithCtx(r.Context()).Error("booking: search services", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "services", view.Data{
		"Title": "Our Services", "Services": services, "Query": q,
	})
}

// Show renders the booking form for one service.
func (c *BookingController) Show(w http.ResponseWriter, r *http.Request) {
	svc, err := c.services.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("booking: load service", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "booking", view.Data{
		"Title": "Book " + svc.Name, "Service": svc,
	})
}

// Create places the order. The service name and price are snapshotted onto
// the order document so later catalog edits never rewrite history.
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	svc, err := c.services.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w, r)
		return
	} else if err != nil {
		logger.WithCtx(r.Context()).Error("booking: load service", "error", err)
		view.ServerError(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/booking/"+svc.ID.Hex(), http.StatusFound)
		return
	}
	address := r.PostFormValue("address")
	if address == "" {
		view.Render(w, r, http.StatusUnprocessableEntity, "booking", view.Data{
			"Title": "Book " + svc.Name, "Service": svc,
			"Error": "A pickup address is required.",
		})
		return
	}

	order := &models.Order{
		UserID:        u.UserID,
		UserEmail:     u.Email,
		ServiceID:     svc.ID.Hex(),
		ServiceName:   svc.Name,
		Price:         svc.Price,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		Address:       address,
		Notes:         r.PostFormValue("notes"),
		CreatedAt:     time.Now(),
	}
	if pickup, err := time.ParseInLocation("2006-01-02", r.PostFormValue("pickupDate"), time.Local); err == nil {
		order.PickupDate = &pickup
	}

	if err := c.orders.Create(r.Context(), order); err != nil {
		logger.WithCtx(r.Context()).Error("booking: create order", "error", err)
		view.ServerError(w, r)
		return
	}

	metrics.OrdersPlaced.Inc()
	event.Fire("order.placed", order)
	logger.WithCtx(r.Context()).Info("order placed",
		"order_id", order.ID.Hex(), "service", svc.Name, "email", u.Email)

	http.Redirect(w, r, "/orders/"+order.ID.Hex(), http.StatusFound)
}
