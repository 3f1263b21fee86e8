package timesession

import (
	"context"
	"time"
)

// TimeSessionRepository defines data access methods for time sessions.
type TimeSessionRepository interface {
	// Create inserts an active session. Returns ErrAlreadyClockedIn when the
	// worker already has one open.
	Create(ctx context.Context, session TimeSession) (TimeSession, error)

	// GetActiveByWorker returns ErrNotClockedIn when no session is open.
	GetActiveByWorker(ctx context.Context, workerID string) (TimeSession, error)

	// GetActiveByWorkerForUpdate is GetActiveByWorker with a row lock held
	// until the surrounding transaction ends.
	GetActiveByWorkerForUpdate(ctx context.Context, workerID string) (TimeSession, error)

	// Complete persists clock-out fields of a session that is still active.
	// Returns ErrTimeSessionNotFound when no active session has that id.
	Complete(ctx context.Context, session TimeSession) (TimeSession, error)

	// ListCompletedInRange returns completed sessions whose work date is in
	// [startDate, endDate], ordered by work date then clock-in.
	ListCompletedInRange(ctx context.Context, workerID string, startDate, endDate time.Time) ([]TimeSession, error)

	// ListWorkersWithCompletedInRange lists workers owning at least one
	// completed session dated in the range.
	ListWorkersWithCompletedInRange(ctx context.Context, startDate, endDate time.Time) ([]WorkerPeriod, error)
}
