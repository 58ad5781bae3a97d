package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/employee"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	missingPunch = "Missing"

	// Payment rule constants: fixed allowance deducted from gross before the
	// basic split, days per month for the daily basic, and the monthly OT
	// divisor with its double-rate multiplier.
	allowanceDeduction = 2450.0
	basicDivisor       = 1.5
	daysPerMonth       = 30.0
	otHoursPerMonth    = 208.0
	otRateMultiplier   = 2.0

	// Lunch is deducted only from spans of at least this many hours.
	lunchThresholdHours = 6.0
	lunchDeductionHours = 1.0
)

type ReportServiceImpl struct {
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	holidayRepo    holiday.Repository
}

func NewReportService(
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	holidayRepo holiday.Repository,
) report.Service {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
	}
}

// PaymentSheet implements report.Service. A date owned by a processed holiday
// is served from its duty snapshot; any other date is computed live.
func (s *ReportServiceImpl) PaymentSheet(ctx context.Context, req report.PaymentSheetRequest) ([]report.PaymentSheetRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	h, err := s.holidayRepo.GetByDate(ctx, date)
	switch {
	case err == nil && h.ProcessedAt != nil:
		records, err := s.holidayRepo.GetSnapshot(ctx, h.ID, req.Section, req.SubSection, req.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to read holiday snapshot: %w", err)
		}
		return snapshotRows(records), nil
	case err != nil && !errors.Is(err, holiday.ErrHolidayNotFound):
		return nil, fmt.Errorf("failed to look up holiday for date: %w", err)
	}

	return s.computeLive(ctx, date, employee.Filter{
		Section:    req.Section,
		SubSection: req.SubSection,
		Category:   req.Category,
	})
}

// ComputeDutySnapshot computes a fresh payment sheet for the full employee
// set, ignoring any stored snapshot. Used by holiday processing.
func (s *ReportServiceImpl) ComputeDutySnapshot(ctx context.Context, date time.Time) ([]report.PaymentSheetRow, error) {
	return s.computeLive(ctx, date, employee.Filter{})
}

func (s *ReportServiceImpl) computeLive(ctx context.Context, date time.Time, filter employee.Filter) ([]report.PaymentSheetRow, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return []report.PaymentSheetRow{}, nil
	}

	empIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		empIDs = append(empIDs, e.EmpID)
	}

	attendanceData, err := s.attendanceRepo.GetForDate(ctx, date, empIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	rows := []report.PaymentSheetRow{}
	serial := 1

	for _, emp := range employees {
		// Security personnel do not get holiday payment
		if isSecurity(emp) {
			continue
		}

		stats, ok := attendanceData[emp.EmpID]
		if !ok {
			continue // no punches at all on this day
		}

		effIn, dispIn := effectiveInTime(stats.InTime, emp.SubSection)
		effOut, dispOut := effectiveOutTime(stats.OutTime)

		var workHours float64
		if effIn != nil && effOut != nil {
			rawHours := effOut.Sub(*effIn).Hours()
			deduction := 0.0
			if rawHours >= lunchThresholdHours {
				deduction = lunchDeductionHours
			}
			workHours = math.Max(0, rawHours-deduction)
		}

		basicSalary := (emp.GrossSalary - allowanceDeduction) / basicDivisor
		dailyBasic := basicSalary / daysPerMonth
		otRate := basicSalary / otHoursPerMonth * otRateMultiplier

		var otHours, amount float64
		isWorker := strings.Contains(strings.ToLower(strings.TrimSpace(emp.Category)), "worker")
		if isWorker {
			// Workers: the entire duration is paid as overtime
			otHours = workHours
			amount = otHours * otRate
		} else {
			// Staff and others: one day of basic money
			amount = dailyBasic
		}

		// Workers need both punches; staff get the daily basic on a single
		// punch but nothing when both are missing.
		if dispIn == missingPunch || dispOut == missingPunch {
			if isWorker {
				amount = 0
			} else if dispIn == missingPunch && dispOut == missingPunch {
				amount = 0
			}
			otHours = 0
			workHours = 0
		}

		rows = append(rows, report.PaymentSheetRow{
			Sl:          serial,
			ID:          emp.EmpID,
			Name:        titleCase(emp.Name),
			Designation: titleCase(emp.Designation),
			SubSection:  titleCase(emp.SubSection),
			Section:     titleCase(emp.Section),
			Category:    emp.Category,
			Gross:       emp.GrossSalary,
			Basic:       math.Round(basicSalary),
			InTime:      dispIn,
			OutTime:     dispOut,
			Hour:        round2(workHours),
			OT:          round2(otHours),
			OTRate:      round2(otRate),
			Amount:      math.Round(amount),
		})
		serial++
	}

	return rows, nil
}

// PresentStatus implements report.Service. Attendance only, raw punch times.
func (s *ReportServiceImpl) PresentStatus(ctx context.Context, req report.PresentStatusRequest) ([]report.PresentStatusRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	employees, err := s.employeeRepo.List(ctx, employee.Filter{
		Section:    req.Section,
		SubSection: req.SubSection,
		Category:   req.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return []report.PresentStatusRow{}, nil
	}

	empIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		empIDs = append(empIDs, e.EmpID)
	}

	attendanceData, err := s.attendanceRepo.GetForDate(ctx, date, empIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	rows := []report.PresentStatusRow{}
	serial := 1

	for _, emp := range employees {
		// Security personnel are restricted from these reports
		if isSecurity(emp) {
			continue
		}

		stats, ok := attendanceData[emp.EmpID]
		if !ok || (stats.InTime == nil && stats.OutTime == nil) {
			continue
		}

		dispIn := missingPunch
		if stats.InTime != nil {
			dispIn = stats.InTime.Format("15:04")
		}
		dispOut := missingPunch
		if stats.OutTime != nil {
			dispOut = stats.OutTime.Format("15:04")
		}

		rows = append(rows, report.PresentStatusRow{
			Sl:          serial,
			ID:          emp.EmpID,
			Name:        titleCase(emp.Name),
			Designation: titleCase(emp.Designation),
			SubSection:  titleCase(emp.SubSection),
			InTime:      dispIn,
			OutTime:     dispOut,
		})
		serial++
	}

	return rows, nil
}

// effectiveInTime clamps the raw in-time to the shift start: Cleaners start
// at 07:30, everyone else at 08:00.
func effectiveInTime(in *time.Time, subSection string) (*time.Time, string) {
	if in == nil {
		return nil, missingPunch
	}
	startHour, startMinute := 8, 0
	if strings.EqualFold(strings.TrimSpace(subSection), "cleaner") {
		startHour, startMinute = 7, 30
	}
	limit := time.Date(in.Year(), in.Month(), in.Day(), startHour, startMinute, 0, 0, in.Location())
	eff := *in
	if eff.Before(limit) {
		eff = limit
	}
	return &eff, eff.Format("15:04")
}

// effectiveOutTime rounds the raw out-time down to the half hour.
func effectiveOutTime(out *time.Time) (*time.Time, string) {
	if out == nil {
		return nil, missingPunch
	}
	eff := time.Date(out.Year(), out.Month(), out.Day(), out.Hour(), out.Minute()/30*30, 0, 0, out.Location())
	return &eff, eff.Format("15:04")
}

func isSecurity(emp employee.Employee) bool {
	sec := strings.ToLower(strings.TrimSpace(emp.Section))
	subSec := strings.ToLower(strings.TrimSpace(emp.SubSection))
	return sec == "security" || subSec == "security"
}

func snapshotRows(records []holiday.DutyRecord) []report.PaymentSheetRow {
	rows := make([]report.PaymentSheetRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, report.PaymentSheetRow{
			Sl:          i + 1,
			ID:          rec.EmpID,
			Name:        rec.EmpName,
			Designation: rec.Designation,
			SubSection:  rec.SubSection,
			Section:     rec.Section,
			Category:    rec.Category,
			Gross:       rec.GrossSalary,
			Basic:       rec.BasicSalary,
			InTime:      rec.InTime,
			OutTime:     rec.OutTime,
			Hour:        rec.WorkHours,
			OT:          rec.OTHours,
			OTRate:      rec.OTRate,
			Amount:      rec.Amount,
			Remarks:     rec.Remarks,
		})
	}
	return rows
}

// titleCase matches the sheet formatting of names and labels. A fresh caser
// per call; cases.Caser is not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
