package holiday

import (
	"time"

	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:     h.ID,
		Date:   h.Date.Format("2006-01-02"),
		Name:   h.Name,
		Status: string(h.DerivedStatus()),
	}
	if h.ProcessedAt != nil {
		processedAt := h.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}

// ProcessResult reports the outcome of importing a holiday's attendance
// snapshot.
type ProcessResult struct {
	Message string `json:"message"`
	Records int    `json:"records"`
}
