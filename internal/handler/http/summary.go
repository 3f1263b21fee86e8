package http

import (
	"net/http"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler interface {
	GetMySummaries(w http.ResponseWriter, r *http.Request)
	GetWorkerSummaries(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	tracker summary.MonthlySummaryTracker
	scope   workerScope
}

func NewSummaryHandler(tracker summary.MonthlySummaryTracker, workers worker.WorkerDirectory) SummaryHandler {
	return &summaryHandlerImpl{tracker: tracker, scope: workerScope{workers: workers}}
}

func (h *summaryHandlerImpl) GetMySummaries(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	result, err := h.tracker.GetMonthlySummaries(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.NewMonthlySummaryResponses(result))
}

func (h *summaryHandlerImpl) GetWorkerSummaries(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	target, err := h.scope.resolve(r.Context(), claims, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.tracker.GetMonthlySummaries(r.Context(), target.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.NewMonthlySummaryResponses(result))
}

func (h *summaryHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	target, err := h.scope.resolve(r.Context(), claims, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := parsePeriod(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.tracker.Recompute(r.Context(), target.ID, target.CompanyID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly summary recomputed", summary.NewMonthlySummaryResponse(result))
}
