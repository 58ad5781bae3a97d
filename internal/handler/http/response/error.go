package response

import (
	"errors"
	"net/http"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, validationErrs.Error())
		return
	}

	switch {
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayFinalized):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayNotProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrAdminRequired):
		Forbidden(w, err.Error())

	default:
		InternalServerError(w, "an unexpected error occurred")
	}
}
