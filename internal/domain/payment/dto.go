package payment

import (
	"time"

	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ========== GENERATION DTOs ==========

type GetOrCreatePaymentRequest struct {
	WorkerID string `json:"worker_id"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

func (r *GetOrCreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateMonthlyPaymentsRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *GenerateMonthlyPaymentsRequest) Validate() error {
	errs := validatePeriod(r.Year, r.Month)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2000 || year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	return errs
}

// ========== ADJUSTMENT DTOs ==========

// UpdateAdjustmentsRequest is never rejected for negative amounts; they are
// stored as zero.
type UpdateAdjustmentsRequest struct {
	ID        string           `json:"-"`
	Bonus     *decimal.Decimal `json:"bonus,omitempty"`
	Penalties *decimal.Decimal `json:"penalties,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

func (r *UpdateAdjustmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateAdjustmentsRequest) Adjustments() Adjustments {
	return Adjustments{Bonus: r.Bonus, Penalties: r.Penalties, Notes: r.Notes}
}

// ========== QUERY DTOs ==========

type PaymentFilter struct {
	Month    *int    `json:"month,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Status   *string `json:"status,omitempty"`
	WorkerID *string `json:"worker_id,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

// Validate checks the filter and fills in paging defaults.
func (f *PaymentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'unpaid' or 'paid'"})
	}
	if f.WorkerID != nil && !validator.IsValidUUID(*f.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return nil
}

func (f PaymentFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ========== RESPONSE DTOs ==========

type PaymentResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	WorkerName  *string         `json:"worker_name,omitempty"`
	CompanyID   string          `json:"company_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalHours  float64         `json:"total_hours"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Penalties   decimal.Decimal `json:"penalties"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Status      string          `json:"status"`
	PaidAt      *string         `json:"paid_at,omitempty"`
	PaidBy      *string         `json:"paid_by,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		WorkerID:    p.WorkerID,
		WorkerName:  p.WorkerName,
		CompanyID:   p.CompanyID,
		Month:       p.Month,
		Year:        p.Year,
		TotalHours:  p.TotalHours,
		HourlyRate:  p.HourlyRate,
		BaseSalary:  p.BaseSalary,
		Bonus:       p.Bonus,
		Penalties:   p.Penalties,
		FinalAmount: p.FinalAmount,
		Status:      string(p.Status),
		PaidBy:      p.PaidBy,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func NewPaymentResponses(list []Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		result = append(result, NewPaymentResponse(p))
	}
	return result
}

type ListPaymentResponse struct {
	Data       []PaymentResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type BatchFailureResponse struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Error      string `json:"error"`
}

type BatchResultResponse struct {
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	GeneratedCount int                    `json:"generated_count"`
	Payments       []PaymentResponse      `json:"payments"`
	Failures       []BatchFailureResponse `json:"failures,omitempty"`
}

func NewBatchResultResponse(r BatchResult) BatchResultResponse {
	resp := BatchResultResponse{
		Year:           r.Year,
		Month:          r.Month,
		GeneratedCount: r.GeneratedCount,
		Payments:       NewPaymentResponses(r.Payments),
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, BatchFailureResponse{
			WorkerID:   f.WorkerID,
			WorkerName: f.WorkerName,
			Error:      f.Error,
		})
	}
	return resp
}

type MonthSummaryResponse struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalWorkers     int             `json:"total_workers"`
	TotalHours       float64         `json:"total_hours"`
	TotalBaseSalary  decimal.Decimal `json:"total_base_salary"`
	TotalBonus       decimal.Decimal `json:"total_bonus"`
	TotalPenalties   decimal.Decimal `json:"total_penalties"`
	TotalFinalAmount decimal.Decimal `json:"total_final_amount"`
	UnpaidCount      int             `json:"unpaid_count"`
	PaidCount        int             `json:"paid_count"`
}

func NewMonthSummaryResponse(s MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		Month:            s.Month,
		Year:             s.Year,
		TotalWorkers:     s.TotalWorkers,
		TotalHours:       s.TotalHours,
		TotalBaseSalary:  s.TotalBaseSalary,
		TotalBonus:       s.TotalBonus,
		TotalPenalties:   s.TotalPenalties,
		TotalFinalAmount: s.TotalFinalAmount,
		UnpaidCount:      s.UnpaidCount,
		PaidCount:        s.PaidCount,
	}
}
