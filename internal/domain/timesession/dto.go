package timesession

import (
	"time"

	"github.com/chantify/chantify-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	WorkerID  string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	errs := validateClockFields(r.WorkerID, r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ClockInRequest) Location() Location {
	return Location{Latitude: *r.Latitude, Longitude: *r.Longitude, Address: r.Address}
}

type ClockOutRequest struct {
	WorkerID  string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	errs := validateClockFields(r.WorkerID, r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ClockOutRequest) Location() Location {
	return Location{Latitude: *r.Latitude, Longitude: *r.Longitude, Address: r.Address}
}

func validateClockFields(workerID string, lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(workerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if lat == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lon == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

// ========================================
// HOURS DTOs
// ========================================

type HoursRangeRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// Parse validates the range and returns the dates as midnight UTC.
func (r *HoursRangeRequest) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

type TimeSessionResponse struct {
	ID               string            `json:"id"`
	WorkerID         string            `json:"worker_id"`
	CompanyID        string            `json:"company_id"`
	WorkDate         string            `json:"work_date"`
	ClockInTime      string            `json:"clock_in_time"`
	ClockInLocation  LocationResponse  `json:"clock_in_location"`
	ClockOutTime     *string           `json:"clock_out_time,omitempty"`
	ClockOutLocation *LocationResponse `json:"clock_out_location,omitempty"`
	TotalHours       float64           `json:"total_hours"`
	Status           string            `json:"status"`
	Notes            *string           `json:"notes,omitempty"`
}

type DayGroupResponse struct {
	WorkDate   string                `json:"work_date"`
	TotalHours float64               `json:"total_hours"`
	Sessions   []TimeSessionResponse `json:"sessions"`
}

type HoursReportResponse struct {
	WorkerID   string                `json:"worker_id"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	TotalHours float64               `json:"total_hours"`
	Sessions   []TimeSessionResponse `json:"sessions"`
	Days       []DayGroupResponse    `json:"days"`
}

func NewTimeSessionResponse(s TimeSession) TimeSessionResponse {
	resp := TimeSessionResponse{
		ID:          s.ID,
		WorkerID:    s.WorkerID,
		CompanyID:   s.CompanyID,
		WorkDate:    s.WorkDate.Format(DateLayout),
		ClockInTime: s.ClockInTime.Format(time.RFC3339),
		ClockInLocation: LocationResponse{
			Latitude:  s.ClockInLocation.Latitude,
			Longitude: s.ClockInLocation.Longitude,
			Address:   s.ClockInLocation.Address,
		},
		TotalHours: s.TotalHours,
		Status:     string(s.Status),
		Notes:      s.Notes,
	}
	if s.ClockOutTime != nil {
		out := s.ClockOutTime.Format(time.RFC3339)
		resp.ClockOutTime = &out
	}
	if s.ClockOutLocation != nil {
		resp.ClockOutLocation = &LocationResponse{
			Latitude:  s.ClockOutLocation.Latitude,
			Longitude: s.ClockOutLocation.Longitude,
			Address:   s.ClockOutLocation.Address,
		}
	}
	return resp
}

func NewHoursReportResponse(r HoursReport) HoursReportResponse {
	sessions := make([]TimeSessionResponse, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		sessions = append(sessions, NewTimeSessionResponse(s))
	}

	days := make([]DayGroupResponse, 0, len(r.Days))
	for _, d := range r.Days {
		daySessions := make([]TimeSessionResponse, 0, len(d.Sessions))
		for _, s := range d.Sessions {
			daySessions = append(daySessions, NewTimeSessionResponse(s))
		}
		days = append(days, DayGroupResponse{
			WorkDate:   d.WorkDate.Format(DateLayout),
			TotalHours: d.TotalHours,
			Sessions:   daySessions,
		})
	}

	return HoursReportResponse{
		WorkerID:   r.WorkerID,
		StartDate:  r.StartDate.Format(DateLayout),
		EndDate:    r.EndDate.Format(DateLayout),
		TotalHours: r.TotalHours,
		Sessions:   sessions,
		Days:       days,
	}
}
