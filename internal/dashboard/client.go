// Package dashboard is the orchestration layer behind the reporting UI. It
// owns the holiday record store, the filter cascade, the searchable holiday
// selector, the report view state machine and the tab coordinator. All server
// access goes through Client; the components never touch the wire directly.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError carries the server's error message verbatim so the UI can show it
// without interpretation.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Holiday mirrors the holiday resource as served by the API. Status is the
// server-derived value; ProcessedAt is RFC 3339 when set.
type Holiday struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at"`
}

// ReportFilter is the resolved filter selection a report is generated from.
// Empty string means "all" for everything except Date, which is required.
type ReportFilter struct {
	Date       string `json:"date"`
	Section    string `json:"section,omitempty"`
	SubSection string `json:"sub_section,omitempty"`
	Category   string `json:"category,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ReportRow is a single rendered report line. Payment sheet rows fill the
// hour/amount fields; present status rows leave them zero.
type ReportRow struct {
	SL          int     `json:"sl"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Section     string  `json:"section,omitempty"`
	SubSection  string  `json:"sub_section,omitempty"`
	InTime      string  `json:"in_time"`
	OutTime     string  `json:"out_time"`
	Hour        float64 `json:"hour,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Remarks     string  `json:"remarks,omitempty"`
}

// ProcessResult is the server's acknowledgement of a holiday process call.
type ProcessResult struct {
	Message string `json:"message"`
}

// Client is a typed wrapper over the dashboard API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Sections lists the section taxonomy.
func (c *Client) Sections(ctx context.Context) ([]string, error) {
	var out []string
	err := c.getJSON(ctx, "/api/reports/sections", &out)
	return out, err
}

// SubSections lists the sub-sections belonging to a section. An empty section
// means all sub-sections.
func (c *Client) SubSections(ctx context.Context, section string) ([]string, error) {
	path := "/api/reports/sub_sections"
	if section != "" {
		path += "?section=" + url.QueryEscape(section)
	}
	var out []string
	err := c.getJSON(ctx, path, &out)
	return out, err
}

// Categories lists the category taxonomy.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.getJSON(ctx, "/api/reports/categories", &out)
	return out, err
}

// PresentStatus fetches the present status report for a filter.
func (c *Client) PresentStatus(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	var out struct {
		Rows []ReportRow `json:"rows"`
	}
	if err := c.postJSON(ctx, "/api/reports/present_status", filter, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// PaymentSheet fetches the payment sheet report for a filter.
func (c *Client) PaymentSheet(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	var out struct {
		Rows []ReportRow `json:"rows"`
	}
	if err := c.postJSON(ctx, "/api/reports/payment_sheet", filter, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// PaymentSheetExcel fetches the payment sheet workbook as raw bytes.
func (c *Client) PaymentSheetExcel(ctx context.Context, filter ReportFilter) ([]byte, error) {
	body, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reports/payment_sheet/excel", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp)
	}
	return io.ReadAll(resp.Body)
}

// PaymentSheetPDFURL is the endpoint a browsing context should submit the
// filter to for an inline PDF.
func (c *Client) PaymentSheetPDFURL() string {
	return c.baseURL + "/reports/payment_sheet/pdf"
}

// PresentStatusPDFURL is the present status counterpart of PaymentSheetPDFURL.
func (c *Client) PresentStatusPDFURL() string {
	return c.baseURL + "/reports/present_status/pdf"
}

// Holidays lists every holiday record.
func (c *Client) Holidays(ctx context.Context) ([]Holiday, error) {
	var out []Holiday
	err := c.getJSON(ctx, "/api/holidays", &out)
	return out, err
}

// CreateHoliday creates a draft holiday.
func (c *Client) CreateHoliday(ctx context.Context, date, name string) (Holiday, error) {
	var out Holiday
	err := c.postJSON(ctx, "/api/holidays", map[string]string{"date": date, "name": name}, &out)
	return out, err
}

// ProcessHoliday imports attendance data for a holiday's date.
func (c *Client) ProcessHoliday(ctx context.Context, id int64) (ProcessResult, error) {
	var out ProcessResult
	err := c.postJSON(ctx, fmt.Sprintf("/api/holidays/%d/process", id), nil, &out)
	return out, err
}

// FinalizeHoliday locks a processed holiday.
func (c *Client) FinalizeHoliday(ctx context.Context, id int64) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/holidays/%d/finalize", id), nil, nil)
}

// DeleteHoliday removes a holiday and its snapshot.
func (c *Client) DeleteHoliday(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/holidays/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

func apiErrorFrom(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}
}
