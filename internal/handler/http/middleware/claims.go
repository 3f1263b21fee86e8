package middleware

import (
	"context"

	"github.com/chantify/chantify-backend-go/internal/domain/worker"
)

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID    string
	CompanyID string
	Role      worker.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == worker.RoleAdmin
}

type claimsKey struct{}

func withClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

func parseClaims(raw map[string]interface{}) (Claims, bool) {
	userID, _ := raw["user_id"].(string)
	companyID, _ := raw["company_id"].(string)
	role, _ := raw["role"].(string)
	if userID == "" || companyID == "" {
		return Claims{}, false
	}

	r := worker.Role(role)
	if r != worker.RoleAdmin && r != worker.RoleWorker {
		return Claims{}, false
	}
	return Claims{UserID: userID, CompanyID: companyID, Role: r}, true
}
