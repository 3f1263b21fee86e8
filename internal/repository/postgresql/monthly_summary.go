package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const monthlySummaryColumns = `
	id, worker_id, company_id, month_key, month, year, total_monthly_hours,
	work_days_count, distinct_work_days, last_work_date, is_finalized, last_updated, created_at
`

type monthlySummaryRepository struct {
	db *database.DB
}

func NewMonthlySummaryRepository(db *database.DB) summary.MonthlySummaryRepository {
	return &monthlySummaryRepository{db: db}
}

func scanMonthlySummary(row pgx.Row) (summary.MonthlySummary, error) {
	var s summary.MonthlySummary
	err := row.Scan(
		&s.ID, &s.WorkerID, &s.CompanyID, &s.MonthKey, &s.Month, &s.Year, &s.TotalMonthlyHours,
		&s.WorkDaysCount, &s.DistinctWorkDays, &s.LastWorkDate, &s.IsFinalized, &s.LastUpdated, &s.CreatedAt,
	)
	return s, err
}

// GetOrCreate implements summary.MonthlySummaryRepository.
// The no-op update makes RETURNING yield the existing row on conflict.
func (r *monthlySummaryRepository) GetOrCreate(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (id, worker_id, company_id, month_key, month, year, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT uq_monthly_summaries_worker_month
		DO UPDATE SET month_key = EXCLUDED.month_key
		RETURNING ` + monthlySummaryColumns

	result, err := scanMonthlySummary(q.QueryRow(ctx, query,
		s.ID, s.WorkerID, s.CompanyID, summary.MonthKey(s.Year, s.Month), s.Month, s.Year,
	))
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to get or create monthly summary: %w", err)
	}
	return result, nil
}

// AddHours implements summary.MonthlySummaryRepository.
// The increment happens inside one statement so concurrent clock-outs for the
// same month never lose an update. A work date counts as a new distinct day
// while the credited session is the only completed one on it, whatever order
// sessions complete in.
func (r *monthlySummaryRepository) AddHours(ctx context.Context, inc summary.HoursIncrement) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summaries (
			id, worker_id, company_id, month_key, month, year,
			total_monthly_hours, work_days_count, distinct_work_days, last_work_date,
			last_updated, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9::date, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT uq_monthly_summaries_worker_month DO UPDATE SET
			total_monthly_hours = monthly_summaries.total_monthly_hours + EXCLUDED.total_monthly_hours,
			work_days_count = monthly_summaries.work_days_count + EXCLUDED.work_days_count,
			distinct_work_days = monthly_summaries.distinct_work_days + CASE WHEN (
				SELECT COUNT(*) FROM time_sessions ts
				WHERE ts.worker_id = EXCLUDED.worker_id
					AND ts.work_date = EXCLUDED.last_work_date
					AND ts.status = 'completed'
			) <= 1 THEN 1 ELSE 0 END,
			last_work_date = GREATEST(monthly_summaries.last_work_date, EXCLUDED.last_work_date),
			last_updated = NOW()
		RETURNING ` + monthlySummaryColumns

	result, err := scanMonthlySummary(q.QueryRow(ctx, query,
		inc.ID, inc.WorkerID, inc.CompanyID, summary.MonthKey(inc.Year, inc.Month), inc.Month, inc.Year,
		inc.Hours, summary.WorkDaysCountPerSession, inc.WorkDate.Format(timesession.DateLayout),
	))
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to add hours to monthly summary: %w", err)
	}
	return result, nil
}

// GetForUpdate implements summary.MonthlySummaryRepository.
func (r *monthlySummaryRepository) GetForUpdate(ctx context.Context, workerID, monthKey string) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySummaryColumns + `
		FROM monthly_summaries
		WHERE worker_id = $1 AND month_key = $2
		FOR UPDATE
	`

	s, err := scanMonthlySummary(q.QueryRow(ctx, query, workerID, monthKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.MonthlySummary{}, summary.ErrMonthlySummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to lock monthly summary: %w", err)
	}
	return s, nil
}

// ReplaceTotals implements summary.MonthlySummaryRepository.
func (r *monthlySummaryRepository) ReplaceTotals(ctx context.Context, t summary.Totals) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	var lastWorkDate *string
	if t.LastWorkDate != nil {
		d := t.LastWorkDate.Format(timesession.DateLayout)
		lastWorkDate = &d
	}

	query := `
		INSERT INTO monthly_summaries (
			id, worker_id, company_id, month_key, month, year,
			total_monthly_hours, work_days_count, distinct_work_days, last_work_date,
			last_updated, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT uq_monthly_summaries_worker_month DO UPDATE SET
			total_monthly_hours = EXCLUDED.total_monthly_hours,
			work_days_count = EXCLUDED.work_days_count,
			distinct_work_days = EXCLUDED.distinct_work_days,
			last_work_date = EXCLUDED.last_work_date,
			last_updated = NOW()
		RETURNING ` + monthlySummaryColumns

	result, err := scanMonthlySummary(q.QueryRow(ctx, query,
		t.ID, t.WorkerID, t.CompanyID, summary.MonthKey(t.Year, t.Month), t.Month, t.Year,
		t.TotalMonthlyHours, t.WorkDaysCount, t.DistinctWorkDays, lastWorkDate,
	))
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to replace monthly summary totals: %w", err)
	}
	return result, nil
}

// ListByWorker implements summary.MonthlySummaryRepository.
func (r *monthlySummaryRepository) ListByWorker(ctx context.Context, workerID string) ([]summary.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySummaryColumns + `
		FROM monthly_summaries
		WHERE worker_id = $1
		ORDER BY month_key DESC
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	defer rows.Close()

	var list []summary.MonthlySummary
	for rows.Next() {
		s, err := scanMonthlySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summaries: %w", err)
	}

	return list, nil
}
