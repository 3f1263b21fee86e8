package summary

import "errors"

var (
	ErrMonthlySummaryNotFound = errors.New("monthly summary not found")
	ErrInvalidPeriod          = errors.New("invalid summary period")
)
