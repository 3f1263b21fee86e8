package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
)

const reconcileJobName = "reconcile_monthly_summaries"

// SummaryJobs rebuilds monthly summaries from completed sessions so drift
// from edited or late sessions does not outlive a reconciliation run.
type SummaryJobs struct {
	sessionRepo timesession.TimeSessionRepository
	tracker     summary.MonthlySummaryTracker
	location    *time.Location
	now         func() time.Time
}

func NewSummaryJobs(sessionRepo timesession.TimeSessionRepository, tracker summary.MonthlySummaryTracker, location *time.Location) *SummaryJobs {
	if location == nil {
		location = time.UTC
	}
	return &SummaryJobs{
		sessionRepo: sessionRepo,
		tracker:     tracker,
		location:    location,
		now:         time.Now,
	}
}

// RegisterJobs adds the reconciliation job to the scheduler.
func (j *SummaryJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     reconcileJobName,
		Interval: interval,
		Timeout:  interval,
		Fn:       j.ReconcileMonthlySummaries,
	})
}

// ReconcileMonthlySummaries recomputes the current and previous month for
// every worker with completed sessions in them. One worker failing does not
// stop the others.
func (j *SummaryJobs) ReconcileMonthlySummaries(ctx context.Context) error {
	now := j.now().In(j.location)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, j.location)
	previous := current.AddDate(0, -1, 0)

	var errs []error
	rebuilt := 0
	for _, period := range []time.Time{previous, current} {
		year, month := period.Year(), int(period.Month())
		start, end := timesession.MonthRange(year, month, j.location)

		workers, err := j.sessionRepo.ListWorkersWithCompletedInRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list workers for %s: %w", summary.MonthKey(year, month), err)
		}

		for _, wp := range workers {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if _, err := j.tracker.Recompute(ctx, wp.WorkerID, wp.CompanyID, year, month); err != nil {
				errs = append(errs, fmt.Errorf("worker %s %s: %w", wp.WorkerID, summary.MonthKey(year, month), err))
				continue
			}
			rebuilt++
		}
	}

	slog.Info("Monthly summaries reconciled", "rebuilt", rebuilt, "failed", len(errs))
	return errors.Join(errs...)
}
