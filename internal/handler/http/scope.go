package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/handler/http/middleware"
	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
)

// workerScope resolves workers named in a request and hides workers of
// other companies behind ErrWorkerNotFound.
type workerScope struct {
	workers worker.WorkerDirectory
}

func (s workerScope) resolve(ctx context.Context, claims middleware.Claims, workerID string) (worker.Worker, error) {
	if !validator.IsValidUUID(workerID) {
		return worker.Worker{}, validator.ValidationErrors{{Field: "worker_id", Message: "must be a valid UUID"}}
	}

	w, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return worker.Worker{}, err
	}
	if w.CompanyID != claims.CompanyID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func mustClaims(w http.ResponseWriter, r *http.Request) (middleware.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
	}
	return claims, ok
}

func parsePeriod(yearStr, monthStr string) (int, int, error) {
	var errs validator.ValidationErrors

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}
