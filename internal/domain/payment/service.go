package payment

import "context"

// PayrollEngine derives and maintains one payment per worker per month.
type PayrollEngine interface {
	// GetOrCreatePayment returns the existing payment for the period
	// unchanged, or creates it from the hours worked in that month.
	GetOrCreatePayment(ctx context.Context, workerID string, year, month int) (Payment, error)

	UpdateAdjustments(ctx context.Context, companyID string, req UpdateAdjustmentsRequest) (Payment, error)

	// ToggleStatus flips unpaid and paid on behalf of adminID.
	ToggleStatus(ctx context.Context, companyID, paymentID, adminID string) (Payment, error)
}

// BatchRunner generates payments for every active worker of a company.
type BatchRunner interface {
	// GenerateMonthlyPayments never fails because of a single worker.
	// Errors are returned only when the run cannot start.
	GenerateMonthlyPayments(ctx context.Context, companyID string, year, month int) (BatchResult, error)
}

type PaymentService interface {
	PayrollEngine
	BatchRunner

	GetPayment(ctx context.Context, companyID, id string) (Payment, error)
	ListPayments(ctx context.Context, companyID string, filter PaymentFilter) (ListPaymentResponse, error)
	ListWorkerPayments(ctx context.Context, workerID string) ([]Payment, error)
	GetMonthSummary(ctx context.Context, companyID string, year, month int) (MonthSummary, error)
}
