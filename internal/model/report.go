package model

import (
	"strings"
	"time"
)

// Report categories and durations accepted by the export endpoint
const (
	ReportAll           = "All"
	ReportPaint         = "Paint"
	ReportWorkers       = "Workers"
	ReportHardwareTools = "Hardware/Tools"

	DurationToday     = "today"
	DurationLastWeek  = "last_week"
	DurationLastMonth = "last_month"
	DurationCustom    = "custom"
)

// ReportRequest asks the server for a spreadsheet export
type ReportRequest struct {
	Category  string `json:"category"`
	Duration  string `json:"duration"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

func (r *ReportRequest) Validate() error {
	if r.Category == "" {
		r.Category = ReportAll
	}
	if r.Duration == "" {
		r.Duration = DurationToday
	}

	switch r.Category {
	case ReportAll, ReportPaint, ReportWorkers, ReportHardwareTools:
	default:
		return invalid("category", "Unknown report category "+r.Category)
	}

	switch r.Duration {
	case DurationToday, DurationLastWeek, DurationLastMonth:
		r.StartDate, r.EndDate = "", ""
	case DurationCustom:
		if r.StartDate == "" || r.EndDate == "" {
			return invalid("startDate", "Custom range needs a start and end date")
		}
		start, err := time.Parse(time.DateOnly, r.StartDate)
		if err != nil {
			return invalid("startDate", "Start date must be a YYYY-MM-DD date")
		}
		end, err := time.Parse(time.DateOnly, r.EndDate)
		if err != nil {
			return invalid("endDate", "End date must be a YYYY-MM-DD date")
		}
		if end.Before(start) {
			return invalid("endDate", "End date cannot be before start date")
		}
	default:
		return invalid("duration", "Unknown report duration "+r.Duration)
	}
	return nil
}

// Filename is the name the download is saved under. Path separators in the
// category become dashes.
func (r ReportRequest) Filename(today string) string {
	return "report_" + strings.ReplaceAll(r.Category, "/", "-") + "_" + today + ".xlsx"
}
