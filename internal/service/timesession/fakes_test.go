package timesession

import (
	"context"
	"sync"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]timesession.TimeSession
	listErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]timesession.TimeSession{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s timesession.TimeSession) (timesession.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sessions {
		if existing.WorkerID == s.WorkerID && existing.IsActive() {
			return timesession.TimeSession{}, timesession.ErrAlreadyClockedIn
		}
	}
	s.CreatedAt = s.ClockInTime
	s.UpdatedAt = s.ClockInTime
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) GetActiveByWorker(ctx context.Context, workerID string) (timesession.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.WorkerID == workerID && s.IsActive() {
			return s, nil
		}
	}
	return timesession.TimeSession{}, timesession.ErrNotClockedIn
}

func (r *fakeSessionRepo) GetActiveByWorkerForUpdate(ctx context.Context, workerID string) (timesession.TimeSession, error) {
	return r.GetActiveByWorker(ctx, workerID)
}

func (r *fakeSessionRepo) Complete(ctx context.Context, s timesession.TimeSession) (timesession.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[s.ID]
	if !ok || !existing.IsActive() {
		return timesession.TimeSession{}, timesession.ErrTimeSessionNotFound
	}
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) ListCompletedInRange(ctx context.Context, workerID string, startDate, endDate time.Time) ([]timesession.TimeSession, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesession.TimeSession
	for _, s := range r.sessions {
		if s.WorkerID != workerID || !s.IsCompleted() {
			continue
		}
		if s.WorkDate.Before(startDate) || s.WorkDate.After(endDate) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) ListWorkersWithCompletedInRange(ctx context.Context, startDate, endDate time.Time) ([]timesession.WorkerPeriod, error) {
	return nil, nil
}

type fakeDirectory struct {
	workers map[string]worker.Worker
}

func (d *fakeDirectory) Get(ctx context.Context, id string) (worker.Worker, error) {
	w, ok := d.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (d *fakeDirectory) ActiveWorkersOf(ctx context.Context, companyID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range d.workers {
		if w.CompanyID == companyID && w.IsActive && w.Role == worker.RoleWorker {
			out = append(out, w)
		}
	}
	return out, nil
}

type addHoursCall struct {
	WorkerID  string
	CompanyID string
	Year      int
	Month     int
	Hours     float64
	WorkDate  time.Time
}

type fakeTracker struct {
	calls []addHoursCall
	err   error
}

func (f *fakeTracker) GetOrCreate(ctx context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	return summary.MonthlySummary{WorkerID: workerID, CompanyID: companyID, Year: year, Month: month, MonthKey: summary.MonthKey(year, month)}, nil
}

func (f *fakeTracker) AddHours(ctx context.Context, workerID, companyID string, year, month int, hours float64, workDate time.Time) (summary.MonthlySummary, error) {
	if f.err != nil {
		return summary.MonthlySummary{}, f.err
	}
	f.calls = append(f.calls, addHoursCall{workerID, companyID, year, month, hours, workDate})
	return summary.MonthlySummary{WorkerID: workerID, TotalMonthlyHours: hours}, nil
}

func (f *fakeTracker) GetMonthlySummaries(ctx context.Context, workerID string) ([]summary.MonthlySummary, error) {
	return nil, nil
}

func (f *fakeTracker) Recompute(ctx context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	return summary.MonthlySummary{}, nil
}

// fakeTx runs fn directly and reports whether fn failed.
type fakeTx struct {
	calls    int
	rollback int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		t.rollback++
		return err
	}
	return nil
}
