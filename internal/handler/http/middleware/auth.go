package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mfl-hr/attendance-dashboard-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose bearer token failed verification.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin reports the admin capability carried by the request's token.
func IsAdmin(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}
