package timesession

import (
	"context"
	"time"
)

// HoursAggregator sums completed sessions over a date range. Pure read.
type HoursAggregator interface {
	GetHoursInRange(ctx context.Context, workerID string, startDate, endDate time.Time) (HoursReport, error)
}

// TimeSessionService defines clock-in/clock-out operations
type TimeSessionService interface {
	HoursAggregator

	// ClockIn opens a session for the worker
	ClockIn(ctx context.Context, req ClockInRequest) (TimeSession, error)

	// ClockOut closes the open session and credits the monthly summary
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeSession, error)

	// GetActiveSession returns nil when the worker is not clocked in
	GetActiveSession(ctx context.Context, workerID string) (*TimeSession, error)
}
