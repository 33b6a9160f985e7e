package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/pkg/bind"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// PasswordController serves the forgot/reset password flow.
type PasswordController struct {
	auth *services.AuthService
}

func NewPasswordController(auth *services.AuthService) *PasswordController {
	return &PasswordController{auth: auth}
}

func (c *PasswordController) ShowForgot(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, http.StatusOK, "forgot-password", view.Data{"Title": "Forgot Password"})
}

func (c *PasswordController) Forgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		view.Render(w, r, http.StatusBadRequest, "forgot-password", view.Data{
			"Title": "Forgot Password", "Error": "Please check the form and try again.",
		})
		return
	}

	// Always the same response whether or not the account exists.
	if err := c.auth.RequestPasswordReset(r.Context(), r.PostFormValue("email")); err != nil {
		logger.WithCtx(r.Context()).Error("password reset request failed", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Message(w, r, http.StatusOK, "Check Your Email",
		"If that address has an account, a reset link is on its way. It expires in one hour.")
}

func (c *PasswordController) ShowReset(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		view.Message(w, r, http.StatusBadRequest, "Invalid Link",
			"This password reset link is missing its token.")
		return
	}
	view.Render(w, r, http.StatusOK, "reset-password", view.Data{
		"Title": "Reset Password", "Token": token,
	})
}

type resetInput struct {
	Token                string `json:"token" validate:"required"`
	Password             string `json:"password" validate:"required,min=8,max=72,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (c *PasswordController) Reset(w http.ResponseWriter, r *http.Request) {
	var in resetInput
	errs, err := bind.Form(r, &in)
	if err != nil || len(errs) > 0 {
		msg := "Please check the form and try again."
		if len(errs) > 0 {
			msg = firstError(errs)
		}
		view.Render(w, r, http.StatusUnprocessableEntity, "reset-password", view.Data{
			"Title": "Reset Password", "Error": msg, "Token": in.Token,
		})
		return
	}

	err = c.auth.ResetPassword(r.Context(), in.Token, in.Password)
	switch {
	case errors.Is(err, services.ErrTokenInvalid):
		view.Message(w, r, http.StatusBadRequest, "Link Expired",
			"This reset link is invalid or has expired. Request a new one.")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("password reset failed", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Message(w, r, http.StatusOK, "Password Updated",
		"Your password has been changed. You can log in with it now.")
}
