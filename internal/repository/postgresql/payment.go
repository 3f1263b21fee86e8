package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `
	p.id, p.worker_id, p.company_id, p.month, p.year, p.total_hours, p.hourly_rate,
	p.base_salary, p.bonus, p.penalties, p.final_amount, p.status, p.paid_at, p.paid_by,
	p.notes, p.created_at, p.updated_at, u.full_name
`

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID, &p.WorkerID, &p.CompanyID, &p.Month, &p.Year, &p.TotalHours, &p.HourlyRate,
		&p.BaseSalary, &p.Bonus, &p.Penalties, &p.FinalAmount, &p.Status, &p.PaidAt, &p.PaidBy,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt, &p.WorkerName,
	)
	return p, err
}

// CreateIfAbsent implements payment.PaymentRepository.
// ON CONFLICT DO NOTHING returns no row when the period already has a
// payment, in which case the existing one is read back.
func (r *paymentRepository) CreateIfAbsent(ctx context.Context, p payment.Payment) (payment.Payment, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO payments (
				id, worker_id, company_id, month, year, total_hours, hourly_rate,
				base_salary, bonus, penalties, final_amount, status, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			ON CONFLICT ON CONSTRAINT uq_payments_worker_period DO NOTHING
			RETURNING *
		)
		SELECT ` + paymentColumns + `
		FROM inserted p
		LEFT JOIN users u ON u.id = p.worker_id
	`

	created, err := scanPayment(q.QueryRow(ctx, query,
		p.ID, p.WorkerID, p.CompanyID, p.Month, p.Year, p.TotalHours, p.HourlyRate,
		p.BaseSalary, p.Bonus, p.Penalties, p.FinalAmount, p.Status, p.Notes,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payment.Payment{}, false, fmt.Errorf("failed to insert payment: %w", err)
	}

	existing, err := r.GetByWorkerPeriod(ctx, p.WorkerID, p.Year, p.Month)
	if err != nil {
		return payment.Payment{}, false, err
	}
	return existing, false, nil
}

func (r *paymentRepository) getOne(ctx context.Context, where string, args ...interface{}) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentColumns + `
		FROM payments p
		LEFT JOIN users u ON u.id = p.worker_id
		WHERE ` + where

	p, err := scanPayment(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepository) GetByID(ctx context.Context, id string, companyID string) (payment.Payment, error) {
	return r.getOne(ctx, "p.id = $1 AND p.company_id = $2", id, companyID)
}

// GetByIDForUpdate implements payment.PaymentRepository.
func (r *paymentRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payment.Payment, error) {
	return r.getOne(ctx, "p.id = $1 AND p.company_id = $2 FOR UPDATE OF p", id, companyID)
}

// GetByWorkerPeriod implements payment.PaymentRepository.
func (r *paymentRepository) GetByWorkerPeriod(ctx context.Context, workerID string, year, month int) (payment.Payment, error) {
	return r.getOne(ctx, "p.worker_id = $1 AND p.year = $2 AND p.month = $3", workerID, year, month)
}

// UpdateAdjustments implements payment.PaymentRepository.
func (r *paymentRepository) UpdateAdjustments(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments
		SET bonus = $2, penalties = $3, final_amount = $4, notes = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query, p.ID, p.Bonus, p.Penalties, p.FinalAmount, p.Notes, p.CompanyID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to update payment adjustments: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}

	return r.GetByID(ctx, p.ID, p.CompanyID)
}

// UpdateStatus implements payment.PaymentRepository.
func (r *paymentRepository) UpdateStatus(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments
		SET status = $2, paid_at = $3, paid_by = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, p.ID, p.Status, p.PaidAt, p.PaidBy, p.CompanyID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}

	return r.GetByID(ctx, p.ID, p.CompanyID)
}

// List implements payment.PaymentRepository.
func (r *paymentRepository) List(ctx context.Context, companyID string, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payments p
		LEFT JOIN users u ON u.id = p.worker_id
		WHERE p.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.WorkerID != nil {
		baseQuery += fmt.Sprintf(" AND p.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = payment.DefaultPageLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY p.year DESC, p.month DESC, u.full_name ASC, p.id ASC
		LIMIT $%d OFFSET $%d
	`, paymentColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, totalCount, nil
}

// ListByWorker implements payment.PaymentRepository.
func (r *paymentRepository) ListByWorker(ctx context.Context, workerID string) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentColumns + `
		FROM payments p
		LEFT JOIN users u ON u.id = p.worker_id
		WHERE p.worker_id = $1
		ORDER BY p.year DESC, p.month DESC
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// GetMonthSummary implements payment.PaymentRepository.
func (r *paymentRepository) GetMonthSummary(ctx context.Context, companyID string, year, month int) (payment.MonthSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_workers,
			COALESCE(SUM(total_hours), 0) AS total_hours,
			COALESCE(SUM(base_salary), 0) AS total_base_salary,
			COALESCE(SUM(bonus), 0) AS total_bonus,
			COALESCE(SUM(penalties), 0) AS total_penalties,
			COALESCE(SUM(final_amount), 0) AS total_final_amount,
			COUNT(*) FILTER (WHERE status = 'unpaid') AS unpaid_count,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid_count
		FROM payments
		WHERE company_id = $1 AND year = $2 AND month = $3
	`

	var s payment.MonthSummary
	err := q.QueryRow(ctx, query, companyID, year, month).Scan(
		&s.TotalWorkers, &s.TotalHours, &s.TotalBaseSalary, &s.TotalBonus,
		&s.TotalPenalties, &s.TotalFinalAmount, &s.UnpaidCount, &s.PaidCount,
	)
	if err != nil {
		return payment.MonthSummary{}, fmt.Errorf("failed to get payment month summary: %w", err)
	}

	s.Month = month
	s.Year = year
	return s, nil
}
