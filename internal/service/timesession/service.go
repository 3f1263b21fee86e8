package timesession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/summary"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/chantify/chantify-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
)

type TimeSessionServiceImpl struct {
	timesession.HoursAggregator
	tx          database.Transactor
	sessionRepo timesession.TimeSessionRepository
	workers     worker.WorkerDirectory
	tracker     summary.MonthlySummaryTracker
	location    *time.Location
	metrics     *metrics.PayrollMetrics
	now         func() time.Time
}

func NewTimeSessionService(
	tx database.Transactor,
	sessionRepo timesession.TimeSessionRepository,
	workers worker.WorkerDirectory,
	tracker summary.MonthlySummaryTracker,
	aggregator timesession.HoursAggregator,
	location *time.Location,
	m *metrics.PayrollMetrics,
) timesession.TimeSessionService {
	if location == nil {
		location = time.UTC
	}
	return &TimeSessionServiceImpl{
		HoursAggregator: aggregator,
		tx:              tx,
		sessionRepo:     sessionRepo,
		workers:         workers,
		tracker:         tracker,
		location:        location,
		metrics:         m,
		now:             time.Now,
	}
}

// ClockIn implements timesession.TimeSessionService.
func (s *TimeSessionServiceImpl) ClockIn(ctx context.Context, req timesession.ClockInRequest) (timesession.TimeSession, error) {
	if err := req.Validate(); err != nil {
		return timesession.TimeSession{}, err
	}

	w, err := s.workers.Get(ctx, req.WorkerID)
	if err != nil {
		return timesession.TimeSession{}, err
	}
	if !w.IsActive {
		return timesession.TimeSession{}, worker.ErrWorkerInactive
	}

	// Fast path; the partial unique index settles concurrent clock-ins.
	if _, err := s.sessionRepo.GetActiveByWorker(ctx, w.ID); err == nil {
		return timesession.TimeSession{}, timesession.ErrAlreadyClockedIn
	} else if !errors.Is(err, timesession.ErrNotClockedIn) {
		return timesession.TimeSession{}, fmt.Errorf("failed to check active session: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timesession.TimeSession{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := s.now().UTC()
	session := timesession.TimeSession{
		ID:              id.String(),
		WorkerID:        w.ID,
		CompanyID:       w.CompanyID,
		ClockInTime:     now,
		ClockInLocation: req.Location(),
		WorkDate:        timesession.WorkDateOf(now, s.location),
		Status:          timesession.StatusActive,
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return timesession.TimeSession{}, err
	}

	s.metrics.IncClockIn()
	return created, nil
}

// ClockOut implements timesession.TimeSessionService.
// The session update and the monthly summary increment commit together.
func (s *TimeSessionServiceImpl) ClockOut(ctx context.Context, req timesession.ClockOutRequest) (timesession.TimeSession, error) {
	if err := req.Validate(); err != nil {
		return timesession.TimeSession{}, err
	}

	var completed timesession.TimeSession
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetActiveByWorkerForUpdate(ctx, req.WorkerID)
		if err != nil {
			return err
		}

		session.Complete(s.now().UTC(), req.Location(), req.Notes)

		completed, err = s.sessionRepo.Complete(ctx, session)
		if err != nil {
			return err
		}

		year, month := completed.WorkDate.Year(), int(completed.WorkDate.Month())
		if _, err := s.tracker.AddHours(ctx, completed.WorkerID, completed.CompanyID, year, month, completed.TotalHours, completed.WorkDate); err != nil {
			slog.Error("failed to credit monthly summary",
				"worker_id", completed.WorkerID,
				"session_id", completed.ID,
				"error", err,
			)
			return fmt.Errorf("failed to update monthly summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesession.TimeSession{}, err
	}

	s.metrics.IncClockOut(completed.TotalHours)
	return completed, nil
}

// GetActiveSession implements timesession.TimeSessionService.
func (s *TimeSessionServiceImpl) GetActiveSession(ctx context.Context, workerID string) (*timesession.TimeSession, error) {
	session, err := s.sessionRepo.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, timesession.ErrNotClockedIn) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}
