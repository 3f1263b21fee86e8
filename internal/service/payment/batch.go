package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"golang.org/x/sync/errgroup"
)

// GenerateMonthlyPayments implements payment.BatchRunner.
// Workers are processed concurrently up to the configured limit. Results and
// failures keep the order the directory returned the workers in.
func (s *PaymentServiceImpl) GenerateMonthlyPayments(ctx context.Context, companyID string, year, month int) (payment.BatchResult, error) {
	if err := checkPeriod(year, month); err != nil {
		return payment.BatchResult{}, err
	}

	started := s.now()
	defer func() {
		s.metrics.ObserveBatchDuration(s.now().Sub(started))
	}()

	workers, err := s.workers.ActiveWorkersOf(ctx, companyID)
	if err != nil {
		return payment.BatchResult{}, fmt.Errorf("failed to list active workers: %w", err)
	}

	payments := make([]*payment.Payment, len(workers))
	failures := make([]*payment.BatchFailure, len(workers))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, w := range workers {
		g.Go(func() error {
			p, err := s.GetOrCreatePayment(ctx, w.ID, year, month)
			if err != nil {
				slog.Warn("payment generation failed for worker",
					"company_id", companyID,
					"worker_id", w.ID,
					"period", fmt.Sprintf("%04d-%02d", year, month),
					"error", err,
				)
				failures[i] = &payment.BatchFailure{WorkerID: w.ID, WorkerName: w.FullName, Error: err.Error()}
				return nil
			}
			payments[i] = &p
			return nil
		})
	}
	// Per-worker errors are recorded above, never returned.
	_ = g.Wait()

	result := payment.BatchResult{
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Payments:  make([]payment.Payment, 0, len(workers)),
	}
	for i := range workers {
		if payments[i] != nil {
			result.Payments = append(result.Payments, *payments[i])
		}
		if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
		}
	}
	result.GeneratedCount = len(result.Payments)

	s.metrics.AddBatchFailures(len(result.Failures))
	slog.Info("monthly payments generated",
		"company_id", companyID,
		"period", fmt.Sprintf("%04d-%02d", year, month),
		"generated", result.GeneratedCount,
		"failed", len(result.Failures),
	)
	return result, nil
}
