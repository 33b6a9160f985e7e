package controllers

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// SupportController files and lists a customer's support tickets.
type SupportController struct {
	tickets *repositories.TicketRepository
}

func NewSupportController(tickets *repositories.TicketRepository) *SupportController {
	return &SupportController{tickets: tickets}
}

func (c *SupportController) Show(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	tickets, err := c.tickets.FindByEmail(r.Context(), u.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("support: load tickets", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "support", view.Data{
		"Title": "Support", "Tickets": tickets,
	})
}

func (c *SupportController) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/support", http.StatusFound)
		return
	}
	subject := r.PostFormValue("subject")
	message := r.PostFormValue("message")
	if subject == "" || message == "" {
		tickets, _ := c.tickets.FindByEmail(r.Context(), u.Email)
		view.Render(w, r, http.StatusUnprocessableEntity, "support", view.Data{
			"Title": "Support", "Tickets": tickets,
			"Error": "Subject and message are both required.",
		})
		return
	}

	ticket := &models.SupportTicket{
		UserEmail: u.Email,
		Subject:   subject,
		Message:   message,
		Status:    models.TicketOpen,
		CreatedAt: time.Now(),
	}
	if err := c.tickets.Create(r.Context(), ticket); err != nil {
		logger.WithCtx(r.Context()).Error("support: create ticket", "error", err)
		view.ServerError(w, r)
		return
	}

	sess := session.FromCtx(r)
	sess.Flash("message", "Ticket opened. We usually respond within a day.")
	_ = sess.Save(w)
	http.Redirect(w, r, "/support", http.StatusFound)
}
