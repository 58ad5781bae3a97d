package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// GetForDate returns the resolved in/out summary per employee code for a
	// calendar date. Empty empCodes means all employees.
	GetForDate(ctx context.Context, date time.Time, empCodes []string) (map[string]DaySummary, error)

	// MaxSyncID returns the sync watermark (0 when nothing has been synced).
	MaxSyncID(ctx context.Context) (int64, error)

	// InsertSynced stores punches copied from the source, skipping any whose
	// sync id is already present. Returns the number actually inserted.
	InsertSynced(ctx context.Context, punches []Punch) (int, error)

	// UpsertManual records a corrected punch, replacing an existing manual
	// punch for the same employee, date and session.
	UpsertManual(ctx context.Context, empCode string, punchTime time.Time) (created bool, err error)
}

// Source is the external iClock/BioTime punch feed, consumed read-only.
type Source interface {
	FetchSince(ctx context.Context, sinceID int64) ([]Punch, error)
}
