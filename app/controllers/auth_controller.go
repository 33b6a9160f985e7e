package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/pkg/bind"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// AuthController serves registration, login, logout and email verification.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, http.StatusOK, "register", view.Data{"Title": "Register"})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.Form(r, &in)
	if err != nil {
		view.Render(w, r, http.StatusBadRequest, "register", view.Data{
			"Title": "Register", "Error": "Please check the form and try again.",
		})
		return
	}
	if len(errs) > 0 {
		view.Render(w, r, http.StatusUnprocessableEntity, "register", view.Data{
			"Title": "Register", "Error": firstError(errs),
			"FirstName": in.FirstName, "LastName": in.LastName, "Email": in.Email,
		})
		return
	}

	_, err = c.auth.Register(r.Context(), in)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		view.Render(w, r, http.StatusConflict, "register", view.Data{
			"Title": "Register", "Error": "That email is already registered.",
			"FirstName": in.FirstName, "LastName": in.LastName, "Email": in.Email,
		})
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Message(w, r, http.StatusOK, "Check Your Email",
		"We sent a verification link to your inbox. It expires in one hour.")
}

func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, http.StatusOK, "login", view.Data{"Title": "Log In"})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		view.Render(w, r, http.StatusBadRequest, "login", view.Data{
			"Title": "Log In", "Error": "Please check the form and try again.",
		})
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := c.auth.Login(r.Context(), email, password)
	if err != nil {
		msg := "Invalid email or password."
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, services.ErrAccountSuspended):
			msg = "This account has been suspended. Contact support."
			status = http.StatusForbidden
		case errors.Is(err, services.ErrEmailNotVerified):
			msg = "Please verify your email address before logging in."
			status = http.StatusForbidden
		case !errors.Is(err, services.ErrInvalidCredentials):
			logger.WithCtx(r.Context()).Error("login failed", "error", err)
			view.ServerError(w, r)
			return
		}
		view.Render(w, r, status, "login", view.Data{
			"Title": "Log In", "Error": msg, "Email": email,
		})
		return
	}

	sess := session.FromCtx(r)
	middleware.SetUser(sess, user)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		view.ServerError(w, r)
		return
	}

	logger.WithCtx(r.Context()).Info("user logged in", "email", user.Email)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	_ = sess.Save(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// VerifyEmail consumes the token from the verification link.
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	err := c.auth.VerifyEmail(r.Context(), token)
	switch {
	case errors.Is(err, services.ErrTokenInvalid):
		view.Message(w, r, http.StatusBadRequest, "Link Expired",
			"This verification link is invalid or has expired. Register again to receive a new one.")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("verify email failed", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Message(w, r, http.StatusOK, "Email Verified",
		"Your email is confirmed. You can log in now.")
}

// firstError picks one message out of a validation error map for display.
func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "Please check the form and try again."
}
