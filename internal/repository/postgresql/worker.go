package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerDirectory struct {
	db *database.DB
}

func NewWorkerDirectory(db *database.DB) worker.WorkerDirectory {
	return &workerDirectory{db: db}
}

// Get implements worker.WorkerDirectory.
func (r *workerDirectory) Get(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, role, hourly_rate, is_active
		FROM users
		WHERE id = $1
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.CompanyID, &w.FullName, &w.Role, &w.HourlyRate, &w.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// ActiveWorkersOf implements worker.WorkerDirectory.
func (r *workerDirectory) ActiveWorkersOf(ctx context.Context, companyID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, role, hourly_rate, is_active
		FROM users
		WHERE company_id = $1 AND role = 'worker' AND is_active = TRUE
		ORDER BY full_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.FullName, &w.Role, &w.HourlyRate, &w.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return workers, nil
}
