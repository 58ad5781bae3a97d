package holiday

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id int64) (Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	SetProcessedAt(ctx context.Context, id int64, processedAt time.Time) error
	MarkFinalized(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error

	// Snapshot access. ReplaceSnapshot removes any previous duty records for
	// the holiday before inserting the new set; both run in the caller's
	// transaction when one is present on the context.
	ReplaceSnapshot(ctx context.Context, holidayID int64, records []DutyRecord) error
	GetSnapshot(ctx context.Context, holidayID int64, section, subSection, category string) ([]DutyRecord, error)
}
