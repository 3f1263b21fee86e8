package worker

import "context"

// WorkerDirectory is the read-only view of workers the payroll core depends on.
type WorkerDirectory interface {
	// Get returns ErrWorkerNotFound when the worker does not exist.
	Get(ctx context.Context, id string) (Worker, error)

	// ActiveWorkersOf lists workers with role=worker and is_active=true.
	ActiveWorkersOf(ctx context.Context, companyID string) ([]Worker, error)
}
