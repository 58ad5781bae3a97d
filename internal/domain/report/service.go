package report

import (
	"context"
	"time"
)

// Service computes report rows from employee master data and resolved
// attendance. Rows are produced here and rendered elsewhere; the service
// never touches presentation concerns.
type Service interface {
	// PaymentSheet serves a date owned by a processed holiday from its duty
	// snapshot and computes any other date live.
	PaymentSheet(ctx context.Context, req PaymentSheetRequest) ([]PaymentSheetRow, error)
	PresentStatus(ctx context.Context, req PresentStatusRequest) ([]PresentStatusRow, error)

	// ComputeDutySnapshot always computes live, over the full employee set.
	// Holiday processing uses it to build the snapshot it is about to store.
	ComputeDutySnapshot(ctx context.Context, date time.Time) ([]PaymentSheetRow, error)
}
