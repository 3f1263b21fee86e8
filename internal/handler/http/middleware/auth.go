package middleware

import (
	"net/http"

	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
	"github.com/chantify/chantify-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and stores
// the parsed claims on the request context. It must run after
// jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		c, ok := parseClaims(claims)
		if !ok {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), c)))
	})
}
