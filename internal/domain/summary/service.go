package summary

import (
	"context"
	"time"
)

// MonthlySummaryTracker maintains per-worker per-month hour totals.
type MonthlySummaryTracker interface {
	GetOrCreate(ctx context.Context, workerID, companyID string, year, month int) (MonthlySummary, error)

	// AddHours credits one completed session. It only ever adds.
	AddHours(ctx context.Context, workerID, companyID string, year, month int, hours float64, workDate time.Time) (MonthlySummary, error)

	GetMonthlySummaries(ctx context.Context, workerID string) ([]MonthlySummary, error)

	// Recompute rebuilds the month from the worker's completed sessions.
	Recompute(ctx context.Context, workerID, companyID string, year, month int) (MonthlySummary, error)
}
