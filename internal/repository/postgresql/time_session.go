package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const activeSessionIndex = "uq_time_sessions_worker_active"

const timeSessionColumns = `
	id, worker_id, company_id, clock_in_time, clock_in_latitude, clock_in_longitude, clock_in_address,
	clock_out_time, clock_out_latitude, clock_out_longitude, clock_out_address,
	work_date, total_hours, status, notes, created_at, updated_at
`

type timeSessionRepository struct {
	db *database.DB
}

func NewTimeSessionRepository(db *database.DB) timesession.TimeSessionRepository {
	return &timeSessionRepository{db: db}
}

func scanTimeSession(row pgx.Row) (timesession.TimeSession, error) {
	var s timesession.TimeSession
	var outLat, outLon *float64
	var outAddress *string

	err := row.Scan(
		&s.ID, &s.WorkerID, &s.CompanyID, &s.ClockInTime,
		&s.ClockInLocation.Latitude, &s.ClockInLocation.Longitude, &s.ClockInLocation.Address,
		&s.ClockOutTime, &outLat, &outLon, &outAddress,
		&s.WorkDate, &s.TotalHours, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return timesession.TimeSession{}, err
	}

	if outLat != nil && outLon != nil {
		s.ClockOutLocation = &timesession.Location{Latitude: *outLat, Longitude: *outLon, Address: outAddress}
	}
	return s, nil
}

// Create implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) Create(ctx context.Context, session timesession.TimeSession) (timesession.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_sessions (
			id, worker_id, company_id, clock_in_time, clock_in_latitude, clock_in_longitude,
			clock_in_address, work_date, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, NOW(), NOW())
		RETURNING ` + timeSessionColumns

	created, err := scanTimeSession(q.QueryRow(ctx, query,
		session.ID, session.WorkerID, session.CompanyID, session.ClockInTime,
		session.ClockInLocation.Latitude, session.ClockInLocation.Longitude, session.ClockInLocation.Address,
		session.WorkDate.Format(timesession.DateLayout), timesession.StatusActive,
	))
	if err != nil {
		if isUniqueViolation(err, activeSessionIndex) {
			return timesession.TimeSession{}, timesession.ErrAlreadyClockedIn
		}
		return timesession.TimeSession{}, fmt.Errorf("failed to create time session: %w", err)
	}
	return created, nil
}

// GetActiveByWorker implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) GetActiveByWorker(ctx context.Context, workerID string) (timesession.TimeSession, error) {
	return r.getActive(ctx, workerID, false)
}

// GetActiveByWorkerForUpdate implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) GetActiveByWorkerForUpdate(ctx context.Context, workerID string) (timesession.TimeSession, error) {
	return r.getActive(ctx, workerID, true)
}

func (r *timeSessionRepository) getActive(ctx context.Context, workerID string, forUpdate bool) (timesession.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeSessionColumns + `
		FROM time_sessions
		WHERE worker_id = $1 AND status = 'active'
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	s, err := scanTimeSession(q.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesession.TimeSession{}, timesession.ErrNotClockedIn
		}
		return timesession.TimeSession{}, fmt.Errorf("failed to get active time session: %w", err)
	}
	return s, nil
}

// Complete implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) Complete(ctx context.Context, session timesession.TimeSession) (timesession.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	var outLat, outLon *float64
	var outAddress *string
	if session.ClockOutLocation != nil {
		outLat = &session.ClockOutLocation.Latitude
		outLon = &session.ClockOutLocation.Longitude
		outAddress = session.ClockOutLocation.Address
	}

	query := `
		UPDATE time_sessions SET
			clock_out_time = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clock_out_address = $5,
			total_hours = $6,
			notes = $7,
			status = 'completed',
			updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + timeSessionColumns

	completed, err := scanTimeSession(q.QueryRow(ctx, query,
		session.ID, session.ClockOutTime, outLat, outLon, outAddress, session.TotalHours, session.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesession.TimeSession{}, timesession.ErrTimeSessionNotFound
		}
		return timesession.TimeSession{}, fmt.Errorf("failed to complete time session: %w", err)
	}
	return completed, nil
}

// ListCompletedInRange implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) ListCompletedInRange(ctx context.Context, workerID string, startDate, endDate time.Time) ([]timesession.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeSessionColumns + `
		FROM time_sessions
		WHERE worker_id = $1
			AND status = 'completed'
			AND work_date BETWEEN $2::date AND $3::date
		ORDER BY work_date ASC, clock_in_time ASC
	`

	rows, err := q.Query(ctx, query, workerID,
		startDate.Format(timesession.DateLayout), endDate.Format(timesession.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list completed time sessions: %w", err)
	}
	defer rows.Close()

	var sessions []timesession.TimeSession
	for rows.Next() {
		s, err := scanTimeSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time sessions: %w", err)
	}

	return sessions, nil
}

// ListWorkersWithCompletedInRange implements timesession.TimeSessionRepository.
func (r *timeSessionRepository) ListWorkersWithCompletedInRange(ctx context.Context, startDate, endDate time.Time) ([]timesession.WorkerPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT worker_id, company_id
		FROM time_sessions
		WHERE status = 'completed' AND work_date BETWEEN $1::date AND $2::date
		ORDER BY company_id, worker_id
	`

	rows, err := q.Query(ctx, query,
		startDate.Format(timesession.DateLayout), endDate.Format(timesession.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list workers with sessions: %w", err)
	}
	defer rows.Close()

	var result []timesession.WorkerPeriod
	for rows.Next() {
		var wp timesession.WorkerPeriod
		if err := rows.Scan(&wp.WorkerID, &wp.CompanyID); err != nil {
			return nil, fmt.Errorf("failed to scan worker period: %w", err)
		}
		result = append(result, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worker periods: %w", err)
	}

	return result, nil
}
