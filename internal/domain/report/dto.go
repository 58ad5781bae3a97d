package report

import (
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/validator"
)

type PaymentSheetRequest struct {
	Date       string `json:"date"`
	Section    string `json:"section"`
	SubSection string `json:"sub_section"`
	Category   string `json:"category"`
}

func (r *PaymentSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required (YYYY-MM-DD)",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PresentStatusRequest struct {
	Date       string `json:"date"`
	Section    string `json:"section"`
	SubSection string `json:"sub_section"`
	Category   string `json:"category"`
	Status     string `json:"status"`
}

func (r *PresentStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentSheetRow struct {
	Sl          int     `json:"sl"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	SubSection  string  `json:"sub_section"`
	Section     string  `json:"section"`
	Category    string  `json:"category"`
	Gross       float64 `json:"gross"`
	Basic       float64 `json:"basic"`
	InTime      string  `json:"in_time"`
	OutTime     string  `json:"out_time"`
	Hour        float64 `json:"hour"`
	OT          float64 `json:"ot"`
	OTRate      float64 `json:"ot_rate"`
	Amount      float64 `json:"amount"`
	Remarks     string  `json:"remarks"`
	Signature   string  `json:"signature"`
}

type PresentStatusRow struct {
	Sl          int    `json:"sl"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	SubSection  string `json:"sub_section"`
	InTime      string `json:"in_time"`
	OutTime     string `json:"out_time"`
	Remarks     string `json:"remarks"`
}

type PaymentSheetResponse struct {
	Date       string            `json:"date"`
	Section    string            `json:"section"`
	SubSection string            `json:"sub_section"`
	Category   string            `json:"category"`
	Rows       []PaymentSheetRow `json:"rows"`
}

type PresentStatusResponse struct {
	Date string             `json:"date"`
	Rows []PresentStatusRow `json:"rows"`
}
