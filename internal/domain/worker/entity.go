package worker

import (
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// Worker is owned by the user-management subsystem. The payroll core only
// reads it.
type Worker struct {
	ID         string
	CompanyID  string
	FullName   string
	Role       Role
	HourlyRate decimal.Decimal
	IsActive   bool
}
