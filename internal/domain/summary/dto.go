package summary

import (
	"time"
)

type MonthlySummaryResponse struct {
	ID                string  `json:"id"`
	WorkerID          string  `json:"worker_id"`
	CompanyID         string  `json:"company_id"`
	MonthKey          string  `json:"month_key"`
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	TotalMonthlyHours float64 `json:"total_monthly_hours"`
	WorkDaysCount     int     `json:"work_days_count"`
	DistinctWorkDays  int     `json:"distinct_work_days"`
	IsFinalized       bool    `json:"is_finalized"`
	LastUpdated       string  `json:"last_updated"`
}

func NewMonthlySummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		ID:                s.ID,
		WorkerID:          s.WorkerID,
		CompanyID:         s.CompanyID,
		MonthKey:          s.MonthKey,
		Month:             s.Month,
		Year:              s.Year,
		TotalMonthlyHours: s.TotalMonthlyHours,
		WorkDaysCount:     s.WorkDaysCount,
		DistinctWorkDays:  s.DistinctWorkDays,
		IsFinalized:       s.IsFinalized,
		LastUpdated:       s.LastUpdated.Format(time.RFC3339),
	}
}

func NewMonthlySummaryResponses(list []MonthlySummary) []MonthlySummaryResponse {
	result := make([]MonthlySummaryResponse, 0, len(list))
	for _, s := range list {
		result = append(result, NewMonthlySummaryResponse(s))
	}
	return result
}
