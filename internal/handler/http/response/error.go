package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		Forbidden(w, "Worker is not active")

	// Time sessions
	case errors.Is(err, timesession.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, timesession.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, timesession.ErrTimeSessionNotFound):
		NotFound(w, "Time session not found")
	case errors.Is(err, timesession.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Summaries
	case errors.Is(err, summary.ErrMonthlySummaryNotFound):
		NotFound(w, "Monthly summary not found")
	case errors.Is(err, summary.ErrInvalidPeriod):
		BadRequest(w, "Invalid period", nil)

	// Payments
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
