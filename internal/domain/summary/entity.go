package summary

import (
	"fmt"
	"time"
)

// WorkDaysCountPerSession is what one completed session adds to
// WorkDaysCount. Two sessions on the same calendar day count twice there;
// DistinctWorkDays counts the day once.
const WorkDaysCountPerSession = 1

// MonthlySummary is the running total of a worker's hours for one month.
type MonthlySummary struct {
	ID                string
	WorkerID          string
	CompanyID         string
	MonthKey          string
	Month             int
	Year              int
	TotalMonthlyHours float64
	WorkDaysCount     int
	DistinctWorkDays  int
	LastWorkDate      *time.Time
	// IsFinalized is reserved. Nothing refuses updates to a finalized summary yet.
	IsFinalized bool
	LastUpdated time.Time
	CreatedAt   time.Time
}

// MonthKey formats the summary key, e.g. "2024-03".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// HoursIncrement is one completed session being credited to a month.
type HoursIncrement struct {
	ID        string
	WorkerID  string
	CompanyID string
	Year      int
	Month     int
	Hours     float64
	WorkDate  time.Time
}

// Totals are absolute values used when a summary is rebuilt from sessions.
type Totals struct {
	ID                string
	WorkerID          string
	CompanyID         string
	Year              int
	Month             int
	TotalMonthlyHours float64
	WorkDaysCount     int
	DistinctWorkDays  int
	LastWorkDate      *time.Time
}
