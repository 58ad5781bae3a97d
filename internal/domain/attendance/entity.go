package attendance

import "time"

// Punch is one raw clock transaction, either synced from the iClock source
// or entered manually (IsCorrected).
type Punch struct {
	ID                int64
	EmpCode           string
	PunchTime         time.Time
	SyncID            *int64
	IsCorrected       bool
	OriginalPunchTime *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DaySummary resolves a day's punches to a single in/out pair.
// In-time is the earliest punch before 13:00; out-time the latest punch at
// or after 13:00. Either side may be missing.
type DaySummary struct {
	InTime  *time.Time
	OutTime *time.Time
}

// SessionCutoverHour splits a day into the morning (in) and afternoon (out)
// sessions.
const SessionCutoverHour = 13
