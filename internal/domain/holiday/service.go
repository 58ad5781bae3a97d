package holiday

import "context"

// Service owns every state transition of a holiday record. The HTTP layer
// only requests transitions and re-reads the truth afterwards.
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context) ([]HolidayResponse, error)
	Process(ctx context.Context, id int64) (ProcessResult, error)
	Finalize(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64, isAdmin bool) error
}
