package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

func (s Status) IsValid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Payment is the payroll record of one worker for one calendar month.
// TotalHours, HourlyRate and BaseSalary are frozen when the payment is created.
type Payment struct {
	ID          string
	WorkerID    string
	CompanyID   string
	Month       int
	Year        int
	TotalHours  float64
	HourlyRate  decimal.Decimal
	BaseSalary  decimal.Decimal
	Bonus       decimal.Decimal
	Penalties   decimal.Decimal
	FinalAmount decimal.Decimal
	Status      Status
	PaidAt      *time.Time
	PaidBy      *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	WorkerName *string
}

// BaseSalaryFor multiplies hours by rate, rounded to cents.
func BaseSalaryFor(totalHours float64, hourlyRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(totalHours).Mul(hourlyRate).Round(2)
}

// NewPayment builds an unpaid payment with no adjustments.
func NewPayment(workerID, companyID string, year, month int, totalHours float64, hourlyRate decimal.Decimal) Payment {
	base := BaseSalaryFor(totalHours, hourlyRate)
	return Payment{
		WorkerID:    workerID,
		CompanyID:   companyID,
		Month:       month,
		Year:        year,
		TotalHours:  totalHours,
		HourlyRate:  hourlyRate,
		BaseSalary:  base,
		Bonus:       decimal.Zero,
		Penalties:   decimal.Zero,
		FinalAmount: base,
		Status:      StatusUnpaid,
	}
}

// Recalculate refreshes FinalAmount from the base salary and adjustments.
func (p *Payment) Recalculate() {
	p.FinalAmount = p.BaseSalary.Add(p.Bonus).Sub(p.Penalties)
}

// Adjustments are partial updates; nil fields keep their current value.
type Adjustments struct {
	Bonus     *decimal.Decimal
	Penalties *decimal.Decimal
	Notes     *string
}

// ApplyAdjustments sets the provided fields and recomputes FinalAmount.
// Negative amounts are stored as zero rather than rejected. Hours, rate and
// base salary are left alone.
func (p *Payment) ApplyAdjustments(adj Adjustments) {
	if adj.Bonus != nil {
		p.Bonus = clampNonNegative(*adj.Bonus)
	}
	if adj.Penalties != nil {
		p.Penalties = clampNonNegative(*adj.Penalties)
	}
	if adj.Notes != nil {
		p.Notes = adj.Notes
	}
	p.Recalculate()
}

// ToggleStatus flips unpaid and paid. Paying stamps the time and admin;
// reverting to unpaid clears both.
func (p *Payment) ToggleStatus(adminID string, now time.Time) {
	if p.Status == StatusPaid {
		p.Status = StatusUnpaid
		p.PaidAt = nil
		p.PaidBy = nil
		return
	}
	p.Status = StatusPaid
	p.PaidAt = &now
	p.PaidBy = &adminID
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// BatchFailure is one worker the batch runner could not generate a payment for.
type BatchFailure struct {
	WorkerID   string
	WorkerName string
	Error      string
}

// BatchResult reports a best-effort generation run. GeneratedCount counts
// every payment returned, including ones that already existed.
type BatchResult struct {
	CompanyID      string
	Year           int
	Month          int
	GeneratedCount int
	Payments       []Payment
	Failures       []BatchFailure
}

// MonthSummary aggregates all payments of a company for one month.
type MonthSummary struct {
	Month            int
	Year             int
	TotalWorkers     int
	TotalHours       float64
	TotalBaseSalary  decimal.Decimal
	TotalBonus       decimal.Decimal
	TotalPenalties   decimal.Decimal
	TotalFinalAmount decimal.Decimal
	UnpaidCount      int
	PaidCount        int
}
