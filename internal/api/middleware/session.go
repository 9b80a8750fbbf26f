package middleware

import (
	"net/http"

	"pcos-companion/internal/session"
	"pcos-companion/pkg/problem"
)

// RequireSession rejects requests with 401 when no authenticated
// session is held by the manager.
func RequireSession(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mgr.Authenticated() {
				problem.Unauthorized("Sign in to continue").Write(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
