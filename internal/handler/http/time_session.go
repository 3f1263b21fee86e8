package http

import (
	"encoding/json"
	"net/http"

	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeSessionHandler interface {
	// Worker self-service
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyActiveSession(w http.ResponseWriter, r *http.Request)
	GetMyHours(w http.ResponseWriter, r *http.Request)

	// Admin
	GetWorkerActiveSession(w http.ResponseWriter, r *http.Request)
	GetWorkerHours(w http.ResponseWriter, r *http.Request)
}

type timeSessionHandlerImpl struct {
	timeSessionService timesession.TimeSessionService
	scope              workerScope
}

func NewTimeSessionHandler(timeSessionService timesession.TimeSessionService, workers worker.WorkerDirectory) TimeSessionHandler {
	return &timeSessionHandlerImpl{
		timeSessionService: timeSessionService,
		scope:              workerScope{workers: workers},
	}
}

func (h *timeSessionHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req timesession.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkerID = claims.UserID

	session, err := h.timeSessionService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", timesession.NewTimeSessionResponse(session))
}

func (h *timeSessionHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req timesession.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkerID = claims.UserID

	session, err := h.timeSessionService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", timesession.NewTimeSessionResponse(session))
}

func (h *timeSessionHandlerImpl) GetMyActiveSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	h.writeActiveSession(w, r, claims.UserID)
}

func (h *timeSessionHandlerImpl) GetMyHours(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	h.writeHours(w, r, claims.UserID)
}

func (h *timeSessionHandlerImpl) GetWorkerActiveSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	target, err := h.scope.resolve(r.Context(), claims, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.writeActiveSession(w, r, target.ID)
}

func (h *timeSessionHandlerImpl) GetWorkerHours(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	target, err := h.scope.resolve(r.Context(), claims, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.writeHours(w, r, target.ID)
}

func (h *timeSessionHandlerImpl) writeActiveSession(w http.ResponseWriter, r *http.Request, workerID string) {
	session, err := h.timeSessionService.GetActiveSession(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if session == nil {
		response.SuccessWithMessage(w, "No active session", nil)
		return
	}
	response.Success(w, timesession.NewTimeSessionResponse(*session))
}

func (h *timeSessionHandlerImpl) writeHours(w http.ResponseWriter, r *http.Request, workerID string) {
	query := r.URL.Query()
	rangeReq := timesession.HoursRangeRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	start, end, err := rangeReq.Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.timeSessionService.GetHoursInRange(r.Context(), workerID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesession.NewHoursReportResponse(report))
}
