package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

type routerFixture struct {
	router    http.Handler
	jwt       jwt.Service
	sessions  *fakeTimeSessionService
	tracker   *fakeTracker
	payments  *fakePaymentService
	companyID string
	adminID   string
	workerID  string
	// outsiderID belongs to another company.
	outsiderID string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		jwt:        jwt.NewJWTService(routerTestSecret, "1h"),
		sessions:   &fakeTimeSessionService{},
		tracker:    &fakeTracker{},
		payments:   &fakePaymentService{},
		companyID:  uuid.NewString(),
		adminID:    uuid.NewString(),
		workerID:   uuid.NewString(),
		outsiderID: uuid.NewString(),
	}

	directory := fakeDirectory{
		f.adminID:    {ID: f.adminID, CompanyID: f.companyID, Role: worker.RoleAdmin, IsActive: true},
		f.workerID:   {ID: f.workerID, CompanyID: f.companyID, Role: worker.RoleWorker, IsActive: true, HourlyRate: decimal.NewFromInt(10)},
		f.outsiderID: {ID: f.outsiderID, CompanyID: uuid.NewString(), Role: worker.RoleWorker, IsActive: true},
	}

	f.router = NewRouter(
		f.jwt,
		RouterOptions{
			Env:            "test",
			Version:        "test",
			AllowedOrigins: []string{"http://localhost:3000"},
			LogLevel:       slog.LevelError,
			Metrics:        promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		},
		NewTimeSessionHandler(f.sessions, directory),
		NewSummaryHandler(f.tracker, directory),
		NewPaymentHandler(f.payments, directory),
	)
	return f
}

func (f *routerFixture) token(t *testing.T, userID string, role worker.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(userID, f.companyID, role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) adminToken(t *testing.T) string {
	return f.token(t, f.adminID, worker.RoleAdmin)
}

func (f *routerFixture) workerToken(t *testing.T) string {
	return f.token(t, f.workerID, worker.RoleWorker)
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func errorCode(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	detail, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "response has no error detail: %v", resp)
	return detail["code"].(string)
}

var clockBody = map[string]interface{}{"latitude": -6.2, "longitude": 106.8}

// ===== AUTHENTICATION =====

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/active", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decodeBody(t, w)["success"].(bool))
}

func TestRouter_RejectsNonAccessToken(t *testing.T) {
	f := newRouterFixture(t)

	_, token, err := f.jwt.JWTAuth().Encode(map[string]interface{}{
		"user_id":    f.workerID,
		"company_id": f.companyID,
		"role":       string(worker.RoleWorker),
		"type":       "refresh",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/active", token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RejectsForeignSignature(t *testing.T) {
	f := newRouterFixture(t)
	other := jwt.NewJWTService("another-secret", "1h")
	token, _, err := other.GenerateAccessToken(f.workerID, f.companyID, worker.RoleWorker)
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/active", token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RoleGuards(t *testing.T) {
	f := newRouterFixture(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"worker lists company payments", http.MethodGet, "/api/v1/payments", f.workerToken(t)},
		{"worker generates payments", http.MethodPost, "/api/v1/payments/generate", f.workerToken(t)},
		{"worker reads other summaries", http.MethodGet, "/api/v1/workers/" + f.workerID + "/summaries", f.workerToken(t)},
		{"admin clocks in", http.MethodPost, "/api/v1/time-sessions/clock-in", f.adminToken(t)},
		{"admin reads own payments", http.MethodGet, "/api/v1/payments/my", f.adminToken(t)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := f.do(t, c.method, c.path, c.token, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ===== TIME SESSIONS =====

func TestTimeSessionHandler_ClockIn_UsesCaller(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/time-sessions/clock-in", f.workerToken(t), clockBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, f.sessions.clockInReq)
	assert.Equal(t, f.workerID, f.sessions.clockInReq.WorkerID)
	assert.InDelta(t, -6.2, *f.sessions.clockInReq.Latitude, 1e-9)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "2024-03-04", data["work_date"])
}

func TestTimeSessionHandler_ClockIn_AlreadyClockedIn(t *testing.T) {
	f := newRouterFixture(t)
	f.sessions.err = timesession.ErrAlreadyClockedIn

	w := f.do(t, http.MethodPost, "/api/v1/time-sessions/clock-in", f.workerToken(t), clockBody)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, decodeBody(t, w)))
}

func TestTimeSessionHandler_ClockIn_InvalidJSON(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/time-sessions/clock-in", f.workerToken(t), "invalid json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, f.sessions.clockInReq)
}

func TestTimeSessionHandler_ClockOut_NotClockedIn(t *testing.T) {
	f := newRouterFixture(t)
	f.sessions.err = timesession.ErrNotClockedIn

	w := f.do(t, http.MethodPost, "/api/v1/time-sessions/clock-out", f.workerToken(t), clockBody)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTimeSessionHandler_ClockOut_PassesNotes(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]interface{}{"latitude": 1.0, "longitude": 2.0, "notes": "left early"}

	w := f.do(t, http.MethodPost, "/api/v1/time-sessions/clock-out", f.workerToken(t), body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.sessions.clockOutReq)
	assert.Equal(t, f.workerID, f.sessions.clockOutReq.WorkerID)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "left early", data["notes"])
	assert.InDelta(t, 8.0, data["total_hours"].(float64), 1e-9)
}

func TestTimeSessionHandler_GetMyActiveSession_None(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/active", f.workerToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "No active session", resp["message"])
	assert.NotContains(t, resp, "data")
}

func TestTimeSessionHandler_GetMyHours(t *testing.T) {
	f := newRouterFixture(t)
	f.sessions.report = timesession.HoursReport{TotalHours: 12.5}

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/hours?start_date=2024-03-01&end_date=2024-03-31", f.workerToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.workerID, f.sessions.hoursFor)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "2024-03-01", data["start_date"])
	assert.Equal(t, "2024-03-31", data["end_date"])
	assert.InDelta(t, 12.5, data["total_hours"].(float64), 1e-9)
}

func TestTimeSessionHandler_GetMyHours_ReversedRange(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/time-sessions/hours?start_date=2024-03-10&end_date=2024-03-01", f.workerToken(t), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, decodeBody(t, w)))
	assert.Empty(t, f.sessions.hoursFor)
}

func TestTimeSessionHandler_GetWorkerHours(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/workers/"+f.workerID+"/hours?start_date=2024-03-01&end_date=2024-03-01", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.workerID, f.sessions.hoursFor)
}

func TestTimeSessionHandler_GetWorkerHours_OtherCompany(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/workers/"+f.outsiderID+"/hours?start_date=2024-03-01&end_date=2024-03-01", f.adminToken(t), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, f.sessions.hoursFor)
}

func TestTimeSessionHandler_GetWorkerActiveSession_InvalidID(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/workers/not-a-uuid/active-session", f.adminToken(t), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTimeSessionHandler_GetWorkerActiveSession(t *testing.T) {
	f := newRouterFixture(t)
	f.sessions.active = &timesession.TimeSession{
		ID:          "session-7",
		WorkerID:    f.workerID,
		ClockInTime: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		WorkDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:      timesession.StatusActive,
	}

	w := f.do(t, http.MethodGet, "/api/v1/workers/"+f.workerID+"/active-session", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "session-7", data["id"])
}

// ===== SUMMARIES =====

func TestSummaryHandler_GetMySummaries(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/summaries/my", f.workerToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.workerID, f.tracker.listedFor)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestSummaryHandler_Recompute(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/workers/"+f.workerID+"/summaries/2024/3/recompute", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{f.workerID + "/2024-03"}, f.tracker.recomputed)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, f.companyID, data["company_id"])
	assert.Equal(t, "2024-03", data["month_key"])
}

func TestSummaryHandler_Recompute_BadPeriod(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/workers/"+f.workerID+"/summaries/abc/3/recompute", f.adminToken(t), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, f.tracker.recomputed)
}

// ===== PAYMENTS =====

func TestPaymentHandler_GetOrCreatePayment(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]interface{}{"worker_id": f.workerID, "year": 2024, "month": 3}

	w := f.do(t, http.MethodPost, "/api/v1/payments", f.adminToken(t), body)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, f.workerID, data["worker_id"])
	assert.Equal(t, "unpaid", data["status"])
}

func TestPaymentHandler_GetOrCreatePayment_OtherCompany(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]interface{}{"worker_id": f.outsiderID, "year": 2024, "month": 3}

	w := f.do(t, http.MethodPost, "/api/v1/payments", f.adminToken(t), body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_GetOrCreatePayment_InvalidPeriod(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]interface{}{"worker_id": f.workerID, "year": 2024, "month": 13}

	w := f.do(t, http.MethodPost, "/api/v1/payments", f.adminToken(t), body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decodeBody(t, w)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "month")
}

func TestPaymentHandler_GenerateMonthlyPayments_UsesCallerCompany(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/payments/generate", f.adminToken(t), map[string]interface{}{"year": 2024, "month": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.companyID, f.payments.generatedIn)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["generated_count"])
}

func TestPaymentHandler_ToggleStatus_ActsAsCaller(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/payments/payment-9/toggle-status", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.adminID, f.payments.toggledBy)
	assert.Equal(t, f.companyID, f.payments.toggledIn)
	resp := decodeBody(t, w)
	assert.Equal(t, "Payment marked as paid", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["status"])
	assert.Equal(t, f.adminID, data["paid_by"])
}

func TestPaymentHandler_ToggleStatus_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	f.payments.err = payment.ErrPaymentNotFound

	w := f.do(t, http.MethodPost, "/api/v1/payments/missing/toggle-status", f.adminToken(t), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, decodeBody(t, w)))
}

func TestPaymentHandler_UpdateAdjustments(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPatch, "/api/v1/payments/payment-9/adjustments", f.adminToken(t), `{"bonus": 200, "penalties": "-50"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "payment-9", f.payments.adjustReq.ID)
	require.NotNil(t, f.payments.adjustReq.Bonus)
	assert.True(t, f.payments.adjustReq.Bonus.Equal(decimal.NewFromInt(200)))
	require.NotNil(t, f.payments.adjustReq.Penalties)
	assert.True(t, f.payments.adjustReq.Penalties.Equal(decimal.NewFromInt(-50)))
}

func TestPaymentHandler_ListPayments_Meta(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/payments?page=2&limit=20&status=paid&year=2024", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.payments.filter.Status)
	assert.Equal(t, "paid", *f.payments.filter.Status)
	require.NotNil(t, f.payments.filter.Year)
	assert.Equal(t, 2024, *f.payments.filter.Year)
	assert.Nil(t, f.payments.filter.Month)

	meta := decodeBody(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(45), meta["total_items"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestPaymentHandler_ListPayments_InvalidStatus(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/payments?status=pending", f.adminToken(t), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPaymentHandler_ListMyPayments(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/payments/my", f.workerToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, f.workerID, data[0].(map[string]interface{})["worker_id"])
}

func TestPaymentHandler_GetMonthSummary(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/payments/summary?year=2024&month=3", f.adminToken(t), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_workers"])
}

func TestPaymentHandler_GetMonthSummary_InvalidPeriod(t *testing.T) {
	f := newRouterFixture(t)
	f.payments.err = payment.ErrInvalidPeriod

	w := f.do(t, http.MethodGet, "/api/v1/payments/summary?year=2024&month=0", f.adminToken(t), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_UnexpectedError(t *testing.T) {
	f := newRouterFixture(t)
	f.payments.err = errors.New("connection reset")

	w := f.do(t, http.MethodGet, "/api/v1/payments/payment-1", f.adminToken(t), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, decodeBody(t, w)))
}
