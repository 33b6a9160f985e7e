// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/session"
)

// HasRole returns middleware that allows access only to users with one of the
// given roles. Requires RequireUser to have already run so the role is in the
// request context. Everyone else gets a plain 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				http.Error(w, "Access denied. Admin privileges required.", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest blocks authenticated users, useful on the login and register pages.
// Signed-in visitors are bounced to their dashboard instead.
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.SessionUser(session.FromCtx(r)); ok {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
