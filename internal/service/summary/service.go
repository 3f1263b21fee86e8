package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/chantify/chantify-backend-go/internal/pkg/metrics"
	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type MonthlySummaryTrackerImpl struct {
	tx          database.Transactor
	summaryRepo summary.MonthlySummaryRepository
	aggregator  timesession.HoursAggregator
	location    *time.Location
	metrics     *metrics.PayrollMetrics
}

func NewMonthlySummaryTracker(
	tx database.Transactor,
	summaryRepo summary.MonthlySummaryRepository,
	aggregator timesession.HoursAggregator,
	location *time.Location,
	m *metrics.PayrollMetrics,
) summary.MonthlySummaryTracker {
	if location == nil {
		location = time.UTC
	}
	return &MonthlySummaryTrackerImpl{
		tx:          tx,
		summaryRepo: summaryRepo,
		aggregator:  aggregator,
		location:    location,
		metrics:     m,
	}
}

func checkPeriod(year, month int) error {
	if !validator.IsValidPeriod(year, month) {
		return fmt.Errorf("%w: %04d-%02d", summary.ErrInvalidPeriod, year, month)
	}
	return nil
}

// GetOrCreate implements summary.MonthlySummaryTracker.
func (t *MonthlySummaryTrackerImpl) GetOrCreate(ctx context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	if err := checkPeriod(year, month); err != nil {
		return summary.MonthlySummary{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to generate summary id: %w", err)
	}

	return t.summaryRepo.GetOrCreate(ctx, summary.MonthlySummary{
		ID:        id.String(),
		WorkerID:  workerID,
		CompanyID: companyID,
		MonthKey:  summary.MonthKey(year, month),
		Month:     month,
		Year:      year,
	})
}

// AddHours implements summary.MonthlySummaryTracker.
func (t *MonthlySummaryTrackerImpl) AddHours(ctx context.Context, workerID, companyID string, year, month int, hours float64, workDate time.Time) (summary.MonthlySummary, error) {
	if err := checkPeriod(year, month); err != nil {
		return summary.MonthlySummary{}, err
	}
	if hours < 0 {
		hours = 0
	}

	id, err := uuid.NewV7()
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to generate summary id: %w", err)
	}

	updated, err := t.summaryRepo.AddHours(ctx, summary.HoursIncrement{
		ID:        id.String(),
		WorkerID:  workerID,
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Hours:     hours,
		WorkDate:  workDate,
	})
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to add hours to summary %s: %w", summary.MonthKey(year, month), err)
	}
	return updated, nil
}

// GetMonthlySummaries implements summary.MonthlySummaryTracker.
func (t *MonthlySummaryTrackerImpl) GetMonthlySummaries(ctx context.Context, workerID string) ([]summary.MonthlySummary, error) {
	list, err := t.summaryRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	return list, nil
}

// Recompute implements summary.MonthlySummaryTracker.
// The summary row stays locked from before the sessions are read until the
// new totals are written, so a clock-out crediting the month in between
// waits and then adds on top of the rebuilt totals.
func (t *MonthlySummaryTrackerImpl) Recompute(ctx context.Context, workerID, companyID string, year, month int) (summary.MonthlySummary, error) {
	if err := checkPeriod(year, month); err != nil {
		return summary.MonthlySummary{}, err
	}

	var rebuilt summary.MonthlySummary
	err := t.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := t.GetOrCreate(ctx, workerID, companyID, year, month); err != nil {
			return err
		}
		if _, err := t.summaryRepo.GetForUpdate(ctx, workerID, summary.MonthKey(year, month)); err != nil {
			return err
		}

		start, end := timesession.MonthRange(year, month, t.location)
		report, err := t.aggregator.GetHoursInRange(ctx, workerID, start, end)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate summary id: %w", err)
		}

		totals := summary.Totals{
			ID:                id.String(),
			WorkerID:          workerID,
			CompanyID:         companyID,
			Year:              year,
			Month:             month,
			TotalMonthlyHours: report.TotalHours,
			WorkDaysCount:     len(report.Sessions) * summary.WorkDaysCountPerSession,
			DistinctWorkDays:  len(report.Days),
		}
		if n := len(report.Days); n > 0 {
			last := report.Days[n-1].WorkDate
			totals.LastWorkDate = &last
		}

		rebuilt, err = t.summaryRepo.ReplaceTotals(ctx, totals)
		if err != nil {
			return fmt.Errorf("failed to replace summary totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	slog.Info("monthly summary recomputed",
		"worker_id", workerID,
		"month_key", rebuilt.MonthKey,
		"total_hours", rebuilt.TotalMonthlyHours,
		"sessions", rebuilt.WorkDaysCount,
	)
	t.metrics.IncSummaryRecompute()
	return rebuilt, nil
}
