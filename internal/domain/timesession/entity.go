package timesession

import (
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Location struct {
	Latitude  float64
	Longitude float64
	Address   *string
}

// TimeSession is one clock-in/clock-out interval of a worker.
type TimeSession struct {
	ID               string
	WorkerID         string
	CompanyID        string
	ClockInTime      time.Time
	ClockInLocation  Location
	ClockOutTime     *time.Time
	ClockOutLocation *Location
	// WorkDate is the clock-in day at midnight and never moves, so a session
	// crossing midnight stays on the day it started.
	WorkDate   time.Time
	TotalHours float64
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s TimeSession) IsActive() bool {
	return s.Status == StatusActive
}

func (s TimeSession) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// Complete closes the session at the given time. Hours never go negative,
// even if the clocks disagree.
func (s *TimeSession) Complete(at time.Time, loc Location, notes *string) {
	s.ClockOutTime = &at
	s.ClockOutLocation = &loc
	s.TotalHours = HoursBetween(s.ClockInTime, at)
	s.Status = StatusCompleted
	if notes != nil {
		s.Notes = notes
	}
}

// HoursBetween returns the elapsed time between in and out in hours.
func HoursBetween(in, out time.Time) float64 {
	if !out.After(in) {
		return 0
	}
	return out.Sub(in).Hours()
}

// DayGroup holds the completed sessions attributed to one work date.
type DayGroup struct {
	WorkDate   time.Time
	Sessions   []TimeSession
	TotalHours float64
}

// HoursReport is the result of aggregating completed sessions over a range.
type HoursReport struct {
	WorkerID   string
	StartDate  time.Time
	EndDate    time.Time
	Sessions   []TimeSession
	TotalHours float64
	Days       []DayGroup
}

// WorkerPeriod names a worker that has completed sessions in some range.
type WorkerPeriod struct {
	WorkerID  string
	CompanyID string
}
