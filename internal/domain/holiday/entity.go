package holiday

import (
	"time"
)

// Status is the derived lifecycle state of a holiday. Only "draft" and
// "finalized" are stored; "processed" is draft with a processed_at timestamp.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusFinalized Status = "finalized"
)

type Holiday struct {
	ID           int64
	Date         time.Time
	Name         string
	StoredStatus string
	ProcessedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DerivedStatus is the single authoritative status function. Clients never
// derive status themselves; they read it from list responses.
func (h Holiday) DerivedStatus() Status {
	if h.StoredStatus == string(StatusFinalized) {
		return StatusFinalized
	}
	if h.ProcessedAt != nil {
		return StatusProcessed
	}
	return StatusDraft
}

// DutyRecord is one row of the attendance/payment snapshot written when a
// holiday is processed. Employee and salary fields are copied at process
// time so later master-data edits cannot change a finalized sheet.
type DutyRecord struct {
	ID         int64
	HolidayID  int64
	EmpID      string
	EmpName    string
	Designation string
	Section    string
	SubSection string
	Category   string

	GrossSalary float64
	BasicSalary float64

	InTime    string // "HH:MM" or "Missing"
	OutTime   string
	WorkHours float64
	OTHours   float64
	OTRate    float64

	Amount  float64
	Remarks string

	CreatedAt time.Time
	UpdatedAt time.Time
}
