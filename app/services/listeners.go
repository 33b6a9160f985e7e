package services

import (
	"fmt"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/event"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/mail"
)

// RegisterListeners wires the application event handlers. Called once from
// the server bootstrap.
func RegisterListeners() {
	event.Listen("order.placed", onOrderPlaced)
}

// onOrderPlaced logs the booking and sends the confirmation email. Delivery
// happens off the request goroutine and failures only log; the order is
// already persisted.
func onOrderPlaced(payload interface{}) {
	order, ok := payload.(*models.Order)
	if !ok {
		return
	}

	logger.Info("order placed",
		"order_id", order.ID.Hex(),
		"service", order.ServiceName,
		"amount", order.Price,
	)

	go func() {
		body := fmt.Sprintf(
			"<p>Thanks for booking with FreshFold!</p>"+
				"<p>Service: %s<br>Amount: %.2f<br>Status: %s</p>"+
				"<p>We will pick up your laundry at %s.</p>",
			order.ServiceName, order.Price, order.Status, order.Address,
		)
		err := mail.To(order.UserEmail).
			Subject("Your FreshFold booking is confirmed").
			Body(body).
			Send()
		if err != nil {
			logger.Warn("order confirmation mail failed",
				"order_id", order.ID.Hex(), "error", err)
		}
	}()
}
