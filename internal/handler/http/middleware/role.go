package middleware

import (
	"fmt"
	"net/http"

	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(worker.RoleAdmin)(next)
}

// RequireWorker requires the worker role
func RequireWorker(next http.Handler) http.Handler {
	return RequireRole(worker.RoleWorker)(next)
}

func RequireRole(role worker.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if claims.Role != role {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", role, claims.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
