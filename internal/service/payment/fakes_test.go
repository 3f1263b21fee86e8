package payment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]payment.Payment
	inserts  int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]payment.Payment{}}
}

func (r *fakePaymentRepo) CreateIfAbsent(ctx context.Context, p payment.Payment) (payment.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.payments {
		if existing.WorkerID == p.WorkerID && existing.Year == p.Year && existing.Month == p.Month {
			return existing, false, nil
		}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.payments[p.ID] = p
	r.inserts++
	return p, true, nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string, companyID string) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.CompanyID != companyID {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payment.Payment, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r *fakePaymentRepo) GetByWorkerPeriod(ctx context.Context, workerID string, year, month int) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.WorkerID == workerID && p.Year == year && p.Month == month {
			return p, nil
		}
	}
	return payment.Payment{}, payment.ErrPaymentNotFound
}

func (r *fakePaymentRepo) UpdateAdjustments(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[p.ID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	stored.Bonus, stored.Penalties, stored.Notes, stored.FinalAmount = p.Bonus, p.Penalties, p.Notes, p.FinalAmount
	r.payments[p.ID] = stored
	return stored, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[p.ID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	stored.Status, stored.PaidAt, stored.PaidBy = p.Status, p.PaidAt, p.PaidBy
	r.payments[p.ID] = stored
	return stored, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, companyID string, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payment.Payment
	for _, p := range r.payments {
		if p.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListByWorker(ctx context.Context, workerID string) ([]payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payment.Payment
	for _, p := range r.payments {
		if p.WorkerID == workerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetMonthSummary(ctx context.Context, companyID string, year, month int) (payment.MonthSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := payment.MonthSummary{Year: year, Month: month, TotalFinalAmount: decimal.Zero}
	for _, p := range r.payments {
		if p.CompanyID != companyID || p.Year != year || p.Month != month {
			continue
		}
		s.TotalWorkers++
		s.TotalFinalAmount = s.TotalFinalAmount.Add(p.FinalAmount)
	}
	return s, nil
}

// fakeDirectory lists workers that Get can no longer find, which is how a
// worker deleted mid-batch looks.
type fakeDirectory struct {
	mu      sync.Mutex
	workers []worker.Worker
	deleted map[string]bool
}

func (d *fakeDirectory) Get(ctx context.Context, id string) (worker.Worker, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleted[id] {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	for _, w := range d.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (d *fakeDirectory) ActiveWorkersOf(ctx context.Context, companyID string) ([]worker.Worker, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []worker.Worker
	for _, w := range d.workers {
		if w.CompanyID == companyID && w.IsActive && w.Role == worker.RoleWorker {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeHours reports a configurable total per worker.
type fakeHours struct {
	mu    sync.Mutex
	hours map[string]float64
}

func (f *fakeHours) GetHoursInRange(ctx context.Context, workerID string, startDate, endDate time.Time) (timesession.HoursReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return timesession.HoursReport{WorkerID: workerID, StartDate: startDate, EndDate: endDate, TotalHours: f.hours[workerID]}, nil
}

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
