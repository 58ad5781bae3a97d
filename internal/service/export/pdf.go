package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
)

// Renderer turns an HTML document into PDF bytes. The actual engine is an
// external collaborator; this package only prepares the document.
type Renderer interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

// HTTPRenderer posts HTML to a render service and streams back the PDF.
type HTTPRenderer struct {
	serviceURL string
	client     *http.Client
}

func NewHTTPRenderer(serviceURL string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Render implements Renderer.
func (r *HTTPRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.serviceURL, bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered document: %w", err)
	}
	return pdf, nil
}

type sectionGroup[T any] struct {
	Section string
	Rows    []T
}

var paymentSheetTemplate = template.Must(template.New("payment_sheet").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Payment Sheet {{.Date}}</title></head>
<body>
<h2>Holiday Payment Sheet - {{.Date}}</h2>
{{range .Groups}}
<h3>{{.Section}}</h3>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
<tr><th>SL</th><th>ID</th><th>Name</th><th>Designation</th><th>Gross</th><th>Basic</th><th>In</th><th>Out</th><th>Amount</th><th>Signature</th></tr>
{{range .Rows}}
<tr><td>{{.Sl}}</td><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Designation}}</td><td>{{.Gross}}</td><td>{{.Basic}}</td><td>{{.InTime}}</td><td>{{.OutTime}}</td><td>{{.Amount}}</td><td></td></tr>
{{end}}
</table>
{{end}}
<p>Generated {{.GeneratedAt}}</p>
</body>
</html>`))

var presentStatusTemplate = template.Must(template.New("present_status").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Present Status {{.Date}}</title></head>
<body>
<h2>Present Status - {{.Date}}</h2>
{{range .Groups}}
<h3>{{.Section}}</h3>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
<tr><th>SL</th><th>ID</th><th>Name</th><th>Designation</th><th>In</th><th>Out</th><th>Remarks</th></tr>
{{range .Rows}}
<tr><td>{{.Sl}}</td><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Designation}}</td><td>{{.InTime}}</td><td>{{.OutTime}}</td><td>{{.Remarks}}</td></tr>
{{end}}
</table>
{{end}}
<p>Generated {{.GeneratedAt}}</p>
</body>
</html>`))

// PaymentSheetHTML builds the payment sheet document, rows grouped by section.
func PaymentSheetHTML(date string, rows []report.PaymentSheetRow) ([]byte, error) {
	groups := groupBySection(rows, func(r report.PaymentSheetRow) string { return r.Section })
	return renderHTML(paymentSheetTemplate, date, groups)
}

// PresentStatusHTML builds the present status document, rows grouped by
// sub-section.
func PresentStatusHTML(date string, rows []report.PresentStatusRow) ([]byte, error) {
	groups := groupBySection(rows, func(r report.PresentStatusRow) string { return r.SubSection })
	return renderHTML(presentStatusTemplate, date, groups)
}

func renderHTML[T any](tmpl *template.Template, date string, groups []sectionGroup[T]) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Date        string
		Groups      []sectionGroup[T]
		GeneratedAt string
	}{
		Date:        date,
		Groups:      groups,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render document template: %w", err)
	}
	return buf.Bytes(), nil
}

func groupBySection[T any](rows []T, sectionOf func(T) string) []sectionGroup[T] {
	bySection := make(map[string][]T)
	for _, row := range rows {
		section := sectionOf(row)
		if section == "" {
			section = "Unknown"
		}
		bySection[section] = append(bySection[section], row)
	}

	sections := make([]string, 0, len(bySection))
	for section := range bySection {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	groups := make([]sectionGroup[T], 0, len(sections))
	for _, section := range sections {
		groups = append(groups, sectionGroup[T]{Section: section, Rows: bySection[section]})
	}
	return groups
}
