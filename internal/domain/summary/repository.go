package summary

import "context"

// MonthlySummaryRepository defines data access methods for monthly summaries.
// Every write is a single upsert keyed on (worker_id, month_key).
type MonthlySummaryRepository interface {
	// GetOrCreate inserts an empty summary or returns the existing one.
	GetOrCreate(ctx context.Context, s MonthlySummary) (MonthlySummary, error)

	// AddHours increments the accumulators in one statement, creating the
	// row on first use.
	AddHours(ctx context.Context, inc HoursIncrement) (MonthlySummary, error)

	// GetForUpdate locks the summary row until the surrounding transaction
	// ends. Returns ErrMonthlySummaryNotFound when the row does not exist.
	GetForUpdate(ctx context.Context, workerID, monthKey string) (MonthlySummary, error)

	// ReplaceTotals overwrites the accumulators with recomputed values.
	ReplaceTotals(ctx context.Context, totals Totals) (MonthlySummary, error)

	// ListByWorker returns all summaries of a worker, newest month first.
	ListByWorker(ctx context.Context, workerID string) ([]MonthlySummary, error)
}
