package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// BillingController shows a customer their payment ledger.
type BillingController struct {
	payments *repositories.PaymentRepository
}

func NewBillingController(payments *repositories.PaymentRepository) *BillingController {
	return &BillingController{payments: payments}
}

func (c *BillingController) List(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	payments, err := c.payments.FindByEmail(r.Context(), u.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("billing: load payments", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "billing", view.Data{
		"Title": "Billing", "Payments": payments,
	})
}
