package timesession

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
)

type HoursAggregatorImpl struct {
	sessionRepo timesession.TimeSessionRepository
}

func NewHoursAggregator(sessionRepo timesession.TimeSessionRepository) timesession.HoursAggregator {
	return &HoursAggregatorImpl{sessionRepo: sessionRepo}
}

// GetHoursInRange implements timesession.HoursAggregator.
func (a *HoursAggregatorImpl) GetHoursInRange(ctx context.Context, workerID string, startDate, endDate time.Time) (timesession.HoursReport, error) {
	start, end := timesession.NormalizeRange(startDate, endDate)
	if end.Before(start) {
		return timesession.HoursReport{}, timesession.ErrInvalidDateRange
	}

	sessions, err := a.sessionRepo.ListCompletedInRange(ctx, workerID, start, end)
	if err != nil {
		return timesession.HoursReport{}, fmt.Errorf("failed to list completed sessions: %w", err)
	}

	return Aggregate(workerID, start, end, sessions), nil
}

// Aggregate totals completed sessions and groups them by work date. Sessions
// are ordered by work date, then clock-in time. Active sessions are ignored.
func Aggregate(workerID string, start, end time.Time, sessions []timesession.TimeSession) timesession.HoursReport {
	report := timesession.HoursReport{
		WorkerID:  workerID,
		StartDate: start,
		EndDate:   end,
		Sessions:  make([]timesession.TimeSession, 0, len(sessions)),
		Days:      []timesession.DayGroup{},
	}

	for _, s := range sessions {
		if s.IsCompleted() {
			report.Sessions = append(report.Sessions, s)
		}
	}

	sort.SliceStable(report.Sessions, func(i, j int) bool {
		a, b := report.Sessions[i], report.Sessions[j]
		if !a.WorkDate.Equal(b.WorkDate) {
			return a.WorkDate.Before(b.WorkDate)
		}
		return a.ClockInTime.Before(b.ClockInTime)
	})

	for _, s := range report.Sessions {
		report.TotalHours += s.TotalHours

		last := len(report.Days) - 1
		if last >= 0 && timesession.SameDay(report.Days[last].WorkDate, s.WorkDate) {
			report.Days[last].Sessions = append(report.Days[last].Sessions, s)
			report.Days[last].TotalHours += s.TotalHours
			continue
		}
		report.Days = append(report.Days, timesession.DayGroup{
			WorkDate:   s.WorkDate,
			Sessions:   []timesession.TimeSession{s},
			TotalHours: s.TotalHours,
		})
	}

	return report
}
