package http

import (
	"context"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type fakeDirectory map[string]worker.Worker

func (d fakeDirectory) Get(_ context.Context, id string) (worker.Worker, error) {
	w, ok := d[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (d fakeDirectory) ActiveWorkersOf(_ context.Context, companyID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range d {
		if w.CompanyID == companyID && w.IsActive && w.Role == worker.RoleWorker {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeTimeSessionService struct {
	clockInReq  *timesession.ClockInRequest
	clockOutReq *timesession.ClockOutRequest
	err         error
	active      *timesession.TimeSession
	hoursFor    string
	report      timesession.HoursReport
}

func (f *fakeTimeSessionService) ClockIn(_ context.Context, req timesession.ClockInRequest) (timesession.TimeSession, error) {
	f.clockInReq = &req
	if f.err != nil {
		return timesession.TimeSession{}, f.err
	}
	return timesession.TimeSession{
		ID:          "session-1",
		WorkerID:    req.WorkerID,
		ClockInTime: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		WorkDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:      timesession.StatusActive,
	}, nil
}

func (f *fakeTimeSessionService) ClockOut(_ context.Context, req timesession.ClockOutRequest) (timesession.TimeSession, error) {
	f.clockOutReq = &req
	if f.err != nil {
		return timesession.TimeSession{}, f.err
	}
	out := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	return timesession.TimeSession{
		ID:           "session-1",
		WorkerID:     req.WorkerID,
		ClockInTime:  time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		ClockOutTime: &out,
		WorkDate:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalHours:   8,
		Status:       timesession.StatusCompleted,
		Notes:        req.Notes,
	}, nil
}

func (f *fakeTimeSessionService) GetActiveSession(_ context.Context, _ string) (*timesession.TimeSession, error) {
	return f.active, f.err
}

func (f *fakeTimeSessionService) GetHoursInRange(_ context.Context, workerID string, start, end time.Time) (timesession.HoursReport, error) {
	f.hoursFor = workerID
	if f.err != nil {
		return timesession.HoursReport{}, f.err
	}
	r := f.report
	r.WorkerID = workerID
	r.StartDate = start
	r.EndDate = end
	return r, nil
}

type fakeTracker struct {
	listedFor  string
	recomputed []string
	summaries  []summary.MonthlySummary
}

func (f *fakeTracker) GetOrCreate(_ context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	return summary.MonthlySummary{WorkerID: workerID, CompanyID: companyID, Year: year, Month: month, MonthKey: summary.MonthKey(year, month)}, nil
}

func (f *fakeTracker) AddHours(ctx context.Context, workerID, companyID string, year, month int, _ float64, _ time.Time) (summary.MonthlySummary, error) {
	return f.GetOrCreate(ctx, workerID, companyID, year, month)
}

func (f *fakeTracker) GetMonthlySummaries(_ context.Context, workerID string) ([]summary.MonthlySummary, error) {
	f.listedFor = workerID
	return f.summaries, nil
}

func (f *fakeTracker) Recompute(ctx context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	f.recomputed = append(f.recomputed, workerID+"/"+summary.MonthKey(year, month))
	return f.GetOrCreate(ctx, workerID, companyID, year, month)
}

type fakePaymentService struct {
	toggledBy   string
	toggledIn   string
	generatedIn string
	filter      payment.PaymentFilter
	adjustReq   payment.UpdateAdjustmentsRequest
	err         error
}

func (f *fakePaymentService) sample(id string) payment.Payment {
	p := payment.NewPayment("worker-1", "company-1", 2024, 3, 10, decimal.NewFromInt(10))
	p.ID = id
	return p
}

func (f *fakePaymentService) GetOrCreatePayment(_ context.Context, workerID string, year, month int) (payment.Payment, error) {
	if f.err != nil {
		return payment.Payment{}, f.err
	}
	p := f.sample("payment-1")
	p.WorkerID = workerID
	p.Year = year
	p.Month = month
	return p, nil
}

func (f *fakePaymentService) UpdateAdjustments(_ context.Context, _ string, req payment.UpdateAdjustmentsRequest) (payment.Payment, error) {
	f.adjustReq = req
	if f.err != nil {
		return payment.Payment{}, f.err
	}
	p := f.sample(req.ID)
	p.ApplyAdjustments(req.Adjustments())
	return p, nil
}

func (f *fakePaymentService) ToggleStatus(_ context.Context, companyID, paymentID, adminID string) (payment.Payment, error) {
	f.toggledBy = adminID
	f.toggledIn = companyID
	if f.err != nil {
		return payment.Payment{}, f.err
	}
	p := f.sample(paymentID)
	p.ToggleStatus(adminID, time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC))
	return p, nil
}

func (f *fakePaymentService) GenerateMonthlyPayments(_ context.Context, companyID string, year, month int) (payment.BatchResult, error) {
	f.generatedIn = companyID
	return payment.BatchResult{CompanyID: companyID, Year: year, Month: month}, f.err
}

func (f *fakePaymentService) GetPayment(_ context.Context, _, id string) (payment.Payment, error) {
	if f.err != nil {
		return payment.Payment{}, f.err
	}
	return f.sample(id), nil
}

func (f *fakePaymentService) ListPayments(_ context.Context, _ string, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListPaymentResponse{}, err
	}
	f.filter = filter
	return payment.ListPaymentResponse{
		Data:       payment.NewPaymentResponses([]payment.Payment{f.sample("payment-1")}),
		TotalCount: 45,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (f *fakePaymentService) ListWorkerPayments(_ context.Context, workerID string) ([]payment.Payment, error) {
	p := f.sample("payment-1")
	p.WorkerID = workerID
	return []payment.Payment{p}, nil
}

func (f *fakePaymentService) GetMonthSummary(_ context.Context, _ string, year, month int) (payment.MonthSummary, error) {
	if f.err != nil {
		return payment.MonthSummary{}, f.err
	}
	return payment.MonthSummary{Year: year, Month: month, TotalWorkers: 2}, nil
}
