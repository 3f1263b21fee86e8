package payment

import "context"

// PaymentRepository defines data access methods for payments.
// Reads by id take a companyID so one company can never see another's payroll.
type PaymentRepository interface {
	// CreateIfAbsent inserts p unless a payment already exists for the same
	// worker and period. created is false when the existing row is returned.
	CreateIfAbsent(ctx context.Context, p Payment) (result Payment, created bool, err error)

	GetByID(ctx context.Context, id string, companyID string) (Payment, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Payment, error)

	GetByWorkerPeriod(ctx context.Context, workerID string, year, month int) (Payment, error)

	// UpdateAdjustments persists bonus, penalties, notes and final amount.
	UpdateAdjustments(ctx context.Context, p Payment) (Payment, error)

	// UpdateStatus persists status, paid_at and paid_by.
	UpdateStatus(ctx context.Context, p Payment) (Payment, error)

	List(ctx context.Context, companyID string, filter PaymentFilter) ([]Payment, int64, error)
	ListByWorker(ctx context.Context, workerID string) ([]Payment, error)
	GetMonthSummary(ctx context.Context, companyID string, year, month int) (MonthSummary, error)
}
