package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chantify/chantify-backend-go/internal/domain/payment"
	"github.com/chantify/chantify-backend-go/internal/domain/timesession"
	"github.com/chantify/chantify-backend-go/internal/domain/worker"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/chantify/chantify-backend-go/internal/pkg/metrics"
	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type PaymentServiceImpl struct {
	tx          database.Transactor
	paymentRepo payment.PaymentRepository
	workers     worker.WorkerDirectory
	aggregator  timesession.HoursAggregator
	location    *time.Location
	concurrency int
	metrics     *metrics.PayrollMetrics
	now         func() time.Time
}

func NewPaymentService(
	tx database.Transactor,
	paymentRepo payment.PaymentRepository,
	workers worker.WorkerDirectory,
	aggregator timesession.HoursAggregator,
	location *time.Location,
	concurrency int,
	m *metrics.PayrollMetrics,
) payment.PaymentService {
	if location == nil {
		location = time.UTC
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &PaymentServiceImpl{
		tx:          tx,
		paymentRepo: paymentRepo,
		workers:     workers,
		aggregator:  aggregator,
		location:    location,
		concurrency: concurrency,
		metrics:     m,
		now:         time.Now,
	}
}

func checkPeriod(year, month int) error {
	if !validator.IsValidPeriod(year, month) {
		return fmt.Errorf("%w: %04d-%02d", payment.ErrInvalidPeriod, year, month)
	}
	return nil
}

// ========== ENGINE ==========

// GetOrCreatePayment implements payment.PayrollEngine.
func (s *PaymentServiceImpl) GetOrCreatePayment(ctx context.Context, workerID string, year, month int) (payment.Payment, error) {
	if err := checkPeriod(year, month); err != nil {
		return payment.Payment{}, err
	}

	existing, err := s.paymentRepo.GetByWorkerPeriod(ctx, workerID, year, month)
	if err == nil {
		s.metrics.IncPaymentGenerated(metrics.PaymentOutcomeExisting)
		return existing, nil
	}
	if !errors.Is(err, payment.ErrPaymentNotFound) {
		return payment.Payment{}, fmt.Errorf("failed to look up payment: %w", err)
	}

	p, err := s.buildPayment(ctx, workerID, year, month)
	if err != nil {
		s.metrics.IncPaymentGenerated(metrics.PaymentOutcomeFailed)
		return payment.Payment{}, err
	}

	// A concurrent caller may have inserted the same period in the meantime;
	// CreateIfAbsent then hands back that row instead.
	result, created, err := s.paymentRepo.CreateIfAbsent(ctx, p)
	if err != nil {
		s.metrics.IncPaymentGenerated(metrics.PaymentOutcomeFailed)
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	if created {
		s.metrics.IncPaymentGenerated(metrics.PaymentOutcomeCreated)
	} else {
		s.metrics.IncPaymentGenerated(metrics.PaymentOutcomeExisting)
	}
	return result, nil
}

// buildPayment snapshots the worker's rate and the month's hours.
func (s *PaymentServiceImpl) buildPayment(ctx context.Context, workerID string, year, month int) (payment.Payment, error) {
	w, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return payment.Payment{}, err
	}

	start, end := timesession.MonthRange(year, month, s.location)
	report, err := s.aggregator.GetHoursInRange(ctx, w.ID, start, end)
	if err != nil {
		return payment.Payment{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to generate payment id: %w", err)
	}

	p := payment.NewPayment(w.ID, w.CompanyID, year, month, report.TotalHours, w.HourlyRate)
	p.ID = id.String()
	name := w.FullName
	p.WorkerName = &name
	return p, nil
}

// checkPaymentID reports a malformed id as a missing payment; no stored
// payment can carry it.
func checkPaymentID(id string) error {
	if !validator.IsValidUUID(id) {
		return payment.ErrPaymentNotFound
	}
	return nil
}

// UpdateAdjustments implements payment.PayrollEngine.
func (s *PaymentServiceImpl) UpdateAdjustments(ctx context.Context, companyID string, req payment.UpdateAdjustmentsRequest) (payment.Payment, error) {
	if err := req.Validate(); err != nil {
		return payment.Payment{}, err
	}
	if err := checkPaymentID(req.ID); err != nil {
		return payment.Payment{}, err
	}

	var updated payment.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.paymentRepo.GetByIDForUpdate(ctx, req.ID, companyID)
		if err != nil {
			return err
		}

		p.ApplyAdjustments(req.Adjustments())

		updated, err = s.paymentRepo.UpdateAdjustments(ctx, p)
		return err
	})
	if err != nil {
		return payment.Payment{}, err
	}
	return updated, nil
}

// ToggleStatus implements payment.PayrollEngine.
func (s *PaymentServiceImpl) ToggleStatus(ctx context.Context, companyID, paymentID, adminID string) (payment.Payment, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(paymentID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(adminID) {
		errs = append(errs, validator.ValidationError{Field: "paid_by", Message: "acting admin is required"})
	}
	if len(errs) > 0 {
		return payment.Payment{}, errs
	}
	if err := checkPaymentID(paymentID); err != nil {
		return payment.Payment{}, err
	}

	var updated payment.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.paymentRepo.GetByIDForUpdate(ctx, paymentID, companyID)
		if err != nil {
			return err
		}

		p.ToggleStatus(adminID, s.now().UTC())

		updated, err = s.paymentRepo.UpdateStatus(ctx, p)
		return err
	})
	if err != nil {
		return payment.Payment{}, err
	}

	s.metrics.IncStatusChange(string(updated.Status))
	return updated, nil
}

// ========== READS ==========

func (s *PaymentServiceImpl) GetPayment(ctx context.Context, companyID, id string) (payment.Payment, error) {
	if err := checkPaymentID(id); err != nil {
		return payment.Payment{}, err
	}
	return s.paymentRepo.GetByID(ctx, id, companyID)
}

func (s *PaymentServiceImpl) ListPayments(ctx context.Context, companyID string, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListPaymentResponse{}, err
	}

	list, total, err := s.paymentRepo.List(ctx, companyID, filter)
	if err != nil {
		return payment.ListPaymentResponse{}, fmt.Errorf("failed to list payments: %w", err)
	}

	return payment.ListPaymentResponse{
		Data:       payment.NewPaymentResponses(list),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PaymentServiceImpl) ListWorkerPayments(ctx context.Context, workerID string) ([]payment.Payment, error) {
	list, err := s.paymentRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker payments: %w", err)
	}
	return list, nil
}

func (s *PaymentServiceImpl) GetMonthSummary(ctx context.Context, companyID string, year, month int) (payment.MonthSummary, error) {
	if err := checkPeriod(year, month); err != nil {
		return payment.MonthSummary{}, err
	}
	return s.paymentRepo.GetMonthSummary(ctx, companyID, year, month)
}
