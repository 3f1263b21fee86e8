package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler interface {
	// Generation
	GetOrCreatePayment(w http.ResponseWriter, r *http.Request)
	GenerateMonthlyPayments(w http.ResponseWriter, r *http.Request)

	// Records
	GetPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	ListMyPayments(w http.ResponseWriter, r *http.Request)
	UpdateAdjustments(w http.ResponseWriter, r *http.Request)
	ToggleStatus(w http.ResponseWriter, r *http.Request)

	// Summary
	GetMonthSummary(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
	scope          workerScope
}

func NewPaymentHandler(paymentService payment.PaymentService, workers worker.WorkerDirectory) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService, scope: workerScope{workers: workers}}
}

// ========== GENERATION ==========

func (h *paymentHandlerImpl) GetOrCreatePayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req payment.GetOrCreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if _, err := h.scope.resolve(r.Context(), claims, req.WorkerID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.paymentService.GetOrCreatePayment(r.Context(), req.WorkerID, req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payment.NewPaymentResponse(result))
}

func (h *paymentHandlerImpl) GenerateMonthlyPayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req payment.GenerateMonthlyPaymentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.paymentService.GenerateMonthlyPayments(r.Context(), claims.CompanyID, req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly payments generated", payment.NewBatchResultResponse(result))
}

// ========== RECORDS ==========

func (h *paymentHandlerImpl) GetPayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payment ID is required", nil)
		return
	}

	result, err := h.paymentService.GetPayment(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payment.NewPaymentResponse(result))
}

func (h *paymentHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := payment.PaymentFilter{Page: 1, Limit: payment.DefaultPageLimit}

	if pageStr := query.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if monthStr := query.Get("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.Month = &month
		}
	}
	if yearStr := query.Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if workerID := query.Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}

	result, err := h.paymentService.ListPayments(r.Context(), claims.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *paymentHandlerImpl) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	result, err := h.paymentService.ListWorkerPayments(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payment.NewPaymentResponses(result))
}

func (h *paymentHandlerImpl) UpdateAdjustments(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payment ID is required", nil)
		return
	}

	var req payment.UpdateAdjustmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.paymentService.UpdateAdjustments(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment adjustments updated", payment.NewPaymentResponse(result))
}

func (h *paymentHandlerImpl) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payment ID is required", nil)
		return
	}

	result, err := h.paymentService.ToggleStatus(r.Context(), claims.CompanyID, id, claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment marked as "+string(result.Status), payment.NewPaymentResponse(result))
}

// ========== SUMMARY ==========

func (h *paymentHandlerImpl) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	year, month, err := parsePeriod(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.paymentService.GetMonthSummary(r.Context(), claims.CompanyID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payment.NewMonthSummaryResponse(result))
}
