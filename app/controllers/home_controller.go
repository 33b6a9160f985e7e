// Package controllers holds the HTTP handlers. They bind and validate input,
// call into services/repositories and render a view; no business rules live
// here.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// HomeController serves the public marketing pages.
type HomeController struct {
	services *repositories.ServiceRepository
}

func NewHomeController(services *repositories.ServiceRepository) *HomeController {
	return &HomeController{services: services}
}

// Index renders the landing page with a preview of the catalog.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	services, err := c.services.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("home: load services", "error", err)
		view.ServerError(w, r)
		return
	}
	if len(services) > 3 {
		services = services[:3]
	}

	view.Render(w, r, http.StatusOK, "index", view.Data{
		"Title":    "Home",
		"Services": services,
	})
}

func (c *HomeController) About(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, http.StatusOK, "about", view.Data{"Title": "About Us"})
}

func (c *HomeController) Contact(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, http.StatusOK, "contact", view.Data{"Title": "Contact"})
}

// NotFound is the router's fallback handler.
func (c *HomeController) NotFound(w http.ResponseWriter, r *http.Request) {
	view.NotFound(w, r)
}
