package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/employee"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
	"github.com/mfl-hr/attendance-dashboard-go/internal/handler/http/response"
	"github.com/mfl-hr/attendance-dashboard-go/internal/service/export"
)

type ReportHandler interface {
	Sections(w http.ResponseWriter, r *http.Request)
	SubSections(w http.ResponseWriter, r *http.Request)
	Categories(w http.ResponseWriter, r *http.Request)
	PresentStatus(w http.ResponseWriter, r *http.Request)
	PaymentSheet(w http.ResponseWriter, r *http.Request)
	PresentStatusPDF(w http.ResponseWriter, r *http.Request)
	PaymentSheetPDF(w http.ResponseWriter, r *http.Request)
	PaymentSheetExcel(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	employeeRepo employee.Repository
	reportSvc    report.Service
	renderer     export.Renderer
}

func NewReportHandler(employeeRepo employee.Repository, reportSvc report.Service, renderer export.Renderer) ReportHandler {
	return &reportHandlerImpl{
		employeeRepo: employeeRepo,
		reportSvc:    reportSvc,
		renderer:     renderer,
	}
}

// Sections implements ReportHandler.
func (h *reportHandlerImpl) Sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.employeeRepo.DistinctSections(r.Context())
	if err != nil {
		slog.Error("Failed to list sections", "error", err)
		response.HandleError(w, err)
		return
	}
	response.JSON(w, sections)
}

// SubSections implements ReportHandler.
func (h *reportHandlerImpl) SubSections(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	subSections, err := h.employeeRepo.DistinctSubSections(r.Context(), section)
	if err != nil {
		slog.Error("Failed to list sub-sections", "error", err, "section", section)
		response.HandleError(w, err)
		return
	}
	response.JSON(w, subSections)
}

// Categories implements ReportHandler.
func (h *reportHandlerImpl) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.employeeRepo.DistinctCategories(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		response.HandleError(w, err)
		return
	}
	response.JSON(w, categories)
}

// PresentStatus implements ReportHandler.
func (h *reportHandlerImpl) PresentStatus(w http.ResponseWriter, r *http.Request) {
	var req report.PresentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request format")
		return
	}

	rows, err := h.reportSvc.PresentStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, report.PresentStatusResponse{Date: req.Date, Rows: rows})
}

// PaymentSheet implements ReportHandler.
func (h *reportHandlerImpl) PaymentSheet(w http.ResponseWriter, r *http.Request) {
	var req report.PaymentSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request format")
		return
	}

	rows, err := h.reportSvc.PaymentSheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, report.PaymentSheetResponse{
		Date:       req.Date,
		Section:    req.Section,
		SubSection: req.SubSection,
		Category:   req.Category,
		Rows:       rows,
	})
}

// PresentStatusPDF implements ReportHandler.
func (h *reportHandlerImpl) PresentStatusPDF(w http.ResponseWriter, r *http.Request) {
	var req report.PresentStatusRequest
	if !decodeJSONOrForm(w, r, &req) {
		return
	}

	rows, err := h.reportSvc.PresentStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := export.PresentStatusHTML(req.Date, rows)
	if err != nil {
		slog.Error("Failed to build present status document", "error", err)
		response.InternalServerError(w, "failed to build document")
		return
	}

	h.servePDF(w, r, doc, fmt.Sprintf("present_status_%s.pdf", req.Date))
}

// PaymentSheetPDF implements ReportHandler.
func (h *reportHandlerImpl) PaymentSheetPDF(w http.ResponseWriter, r *http.Request) {
	var req report.PaymentSheetRequest
	if !decodeJSONOrForm(w, r, &req) {
		return
	}

	rows, err := h.reportSvc.PaymentSheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := export.PaymentSheetHTML(req.Date, rows)
	if err != nil {
		slog.Error("Failed to build payment sheet document", "error", err)
		response.InternalServerError(w, "failed to build document")
		return
	}

	h.servePDF(w, r, doc, fmt.Sprintf("payment_sheet_%s.pdf", req.Date))
}

// PaymentSheetExcel implements ReportHandler.
func (h *reportHandlerImpl) PaymentSheetExcel(w http.ResponseWriter, r *http.Request) {
	var req report.PaymentSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request format")
		return
	}

	rows, err := h.reportSvc.PaymentSheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, err := export.BuildPaymentSheetWorkbook(rows)
	if err != nil {
		slog.Error("Failed to build workbook", "error", err)
		response.InternalServerError(w, "failed to build workbook")
		return
	}

	filename := export.PaymentSheetFilename(req.Date)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}

func (h *reportHandlerImpl) servePDF(w http.ResponseWriter, r *http.Request, doc []byte, filename string) {
	pdf, err := h.renderer.Render(r.Context(), doc)
	if err != nil {
		slog.Error("PDF render failed", "error", err, "filename", filename)
		response.InternalServerError(w, "failed to render document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	_, _ = w.Write(pdf)
}

// decodeJSONOrForm accepts either a JSON body or a form whose "data" field
// holds the JSON payload. The form path is what lets a browser open the
// rendered PDF in a new tab.
func decodeJSONOrForm(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" || contentType == "application/json; charset=utf-8" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			response.BadRequest(w, "invalid request format")
			return false
		}
		return true
	}

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "invalid form data")
		return false
	}
	payload := r.FormValue("data")
	if payload == "" {
		response.BadRequest(w, "field 'data' is required")
		return false
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		response.BadRequest(w, "invalid request format")
		return false
	}
	return true
}
