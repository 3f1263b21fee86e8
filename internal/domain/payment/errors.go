package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidPeriod   = errors.New("invalid payroll period")
)
