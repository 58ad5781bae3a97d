package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayDateExists = errors.New("a holiday already exists for this date")
	ErrHolidayFinalized  = errors.New("holiday is finalized and can no longer be changed")
	ErrHolidayNotProcessed = errors.New("holiday has no processed attendance data yet")
	ErrAdminRequired     = errors.New("only an admin can delete a finalized holiday")
)
