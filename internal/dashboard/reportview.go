package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ReportKind selects which report a view is bound to. The report pages share
// one view implementation parameterized by kind instead of near-duplicate
// copies per page.
type ReportKind string

const (
	KindPresentStatus ReportKind = "present_status"
	KindPaymentSheet  ReportKind = "payment_sheet"
)

// RenderState is the view's terminal render outcome for one generation.
type RenderState int

const (
	StateIdle RenderState = iota
	StateLoading
	StateData
	StateEmpty
	StateError
)

// ReportView drives one tabular report: generate on demand, render exactly
// one of data, empty or error, and export through the host shell.
//
// Requests are never cancelled once issued. Overlap is handled two ways:
// triggers are suppressed while a request is in flight, and each request
// carries a generation number so a response that lost the race can never
// overwrite a newer render.
type ReportView struct {
	client  *Client
	kind    ReportKind
	alerter Alerter
	opener  Opener
	saver   Saver

	mu         sync.Mutex
	state      RenderState
	rows       []ReportRow
	errMessage string
	inFlight   bool
	generation uint64
}

func NewReportView(client *Client, kind ReportKind, alerter Alerter, opener Opener, saver Saver) *ReportView {
	return &ReportView{
		client:  client,
		kind:    kind,
		alerter: alerter,
		opener:  opener,
		saver:   saver,
	}
}

// Generate fetches the report for filter and settles the view in exactly one
// of the data, empty or error states. A missing date is rejected locally
// with a blocking prompt and no request. While a fetch is in flight further
// triggers are ignored.
func (v *ReportView) Generate(ctx context.Context, filter ReportFilter) error {
	if filter.Date == "" {
		v.alerter.Alert("Please select a date first")
		return ErrValidation
	}

	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return nil
	}
	v.inFlight = true
	v.state = StateLoading
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	rows, err := v.fetch(ctx, filter)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	if gen != v.generation {
		// A newer generation already owns the view.
		return nil
	}

	switch {
	case err != nil:
		v.state = StateError
		v.errMessage = err.Error()
		v.rows = nil
	case len(rows) == 0:
		v.state = StateEmpty
		v.errMessage = ""
		v.rows = nil
	default:
		v.state = StateData
		v.errMessage = ""
		v.rows = rows
	}
	return err
}

// ExportPDF submits the filter to the report's PDF endpoint in a new
// browsing context. Fire and forget; the browser owns the outcome.
func (v *ReportView) ExportPDF(filter ReportFilter) error {
	if filter.Date == "" {
		v.alerter.Alert("Please select a date first")
		return ErrValidation
	}

	payload, err := json.Marshal(filter)
	if err != nil {
		return err
	}

	url := v.client.PresentStatusPDFURL()
	if v.kind == KindPaymentSheet {
		url = v.client.PaymentSheetPDFURL()
	}
	v.opener.Open(url, payload)
	return nil
}

// ExportExcel downloads the payment sheet workbook and hands it to the saver
// under a filename derived from the report date. Any failure surfaces a
// generic notice and leaves the rendered table untouched.
func (v *ReportView) ExportExcel(ctx context.Context, filter ReportFilter) error {
	if filter.Date == "" {
		v.alerter.Alert("Please select a date first")
		return ErrValidation
	}

	data, err := v.client.PaymentSheetExcel(ctx, filter)
	if err != nil {
		v.alerter.Alert("Failed to download the report file")
		return err
	}

	filename := fmt.Sprintf("payment_sheet_%s.xlsx", filter.Date)
	if err := v.saver.Save(filename, data); err != nil {
		v.alerter.Alert("Failed to download the report file")
		return err
	}
	return nil
}

// State returns the current render state.
func (v *ReportView) State() RenderState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows returns the rendered rows. Only non-empty in the data state.
func (v *ReportView) Rows() []ReportRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ReportRow{}, v.rows...)
}

// ErrorMessage returns the message shown in the error state.
func (v *ReportView) ErrorMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMessage
}

// InFlight reports whether a generate request is outstanding, which the host
// uses to disable the triggering control.
func (v *ReportView) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight
}

func (v *ReportView) fetch(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	if v.kind == KindPaymentSheet {
		return v.client.PaymentSheet(ctx, filter)
	}
	return v.client.PresentStatus(ctx, filter)
}
