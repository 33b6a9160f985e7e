package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/view"
)

// ProfileController lets a signed-in customer edit their own account.
type ProfileController struct {
	users *repositories.UserRepository
	auth  *services.AuthService
}

func NewProfileController(users *repositories.UserRepository, auth *services.AuthService) *ProfileController {
	return &ProfileController{users: users, auth: auth}
}

func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	account, err := c.users.FindByEmail(r.Context(), u.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile: load account", "error", err)
		view.ServerError(w, r)
		return
	}

	view.Render(w, r, http.StatusOK, "profile", view.Data{
		"Title": "Edit Profile", "Account": account,
	})
}

func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	firstName := r.PostFormValue("firstName")
	lastName := r.PostFormValue("lastName")
	if firstName == "" || lastName == "" {
		account, _ := c.users.FindByEmail(r.Context(), u.Email)
		view.Render(w, r, http.StatusUnprocessableEntity, "profile", view.Data{
			"Title": "Edit Profile", "Account": account,
			"Error": "First and last name are required.",
		})
		return
	}

	if err := c.users.UpdateProfile(r.Context(), u.Email, firstName, lastName, u.Email); err != nil {
		logger.WithCtx(r.Context()).Error("profile: update", "error", err)
		view.ServerError(w, r)
		return
	}

	// Refresh the session copy so the header greets with the new name.
	sess := session.FromCtx(r)
	u.FirstName, u.LastName = firstName, lastName
	middleware.SetUser(sess, u)
	sess.Flash("message", "Profile updated.")
	_ = sess.Save(w)

	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	current := r.PostFormValue("current_password")
	next := r.PostFormValue("password")
	confirm := r.PostFormValue("password_confirmation")

	renderErr := func(status int, msg string) {
		account, _ := c.users.FindByEmail(r.Context(), u.Email)
		view.Render(w, r, status, "profile", view.Data{
			"Title": "Edit Profile", "Account": account, "Error": msg,
		})
	}

	if len(next) < 8 {
		renderErr(http.StatusUnprocessableEntity, "The new password must be at least 8 characters.")
		return
	}
	if next != confirm {
		renderErr(http.StatusUnprocessableEntity, "The password confirmation does not match.")
		return
	}

	err := c.auth.ChangePassword(r.Context(), u.Email, current, next)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		renderErr(http.StatusUnprocessableEntity, "The current password is incorrect.")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("profile: change password", "error", err)
		view.ServerError(w, r)
		return
	}

	sess := session.FromCtx(r)
	sess.Flash("message", "Password updated.")
	_ = sess.Save(w)
	http.Redirect(w, r, "/profile", http.StatusFound)
}
