package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/session"
)

const sessionUserKey = "user"

type userCtxKey struct{}

// SetUser stores the signed-in user in the session. Call Save afterwards.
func SetUser(sess *session.Session, u models.SessionUser) {
	sess.Set(sessionUserKey, map[string]interface{}{
		"userId":    u.UserID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"role":      u.Role,
	})
}

// SessionUser reads the signed-in user out of the session.
func SessionUser(sess *session.Session) (models.SessionUser, bool) {
	raw, ok := sess.Get(sessionUserKey)
	if !ok {
		return models.SessionUser{}, false
	}

	// Session data round-trips through JSON, so the stored struct comes back
	// as a map. Re-marshal to decode into the typed form.
	buf, err := json.Marshal(raw)
	if err != nil {
		return models.SessionUser{}, false
	}
	var u models.SessionUser
	if err := json.Unmarshal(buf, &u); err != nil || u.Email == "" {
		return models.SessionUser{}, false
	}
	return u, true
}

// RequireUser redirects anonymous visitors to the login page. On success the
// session user is placed in the request context for UserFromCtx.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		u, ok := SessionUser(sess)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		// Sliding expiry: touching any authenticated page keeps the
		// session alive for another TTL window.
		sess.Set(sessionUserKey, map[string]interface{}{
			"userId":    u.UserID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"email":     u.Email,
			"role":      u.Role,
		})
		_ = sess.Save(w)

		ctx := context.WithValue(r.Context(), userCtxKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromCtx returns the session user injected by RequireUser.
func UserFromCtx(r *http.Request) (models.SessionUser, bool) {
	u, ok := r.Context().Value(userCtxKey{}).(models.SessionUser)
	return u, ok
}

// RoleFromCtx returns the role of the authenticated user, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	u, ok := UserFromCtx(r)
	if !ok {
		return "", false
	}
	return u.Role, true
}
