package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/employee"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if filter.Section != "" && e.Section != filter.Section {
			continue
		}
		if filter.SubSection != "" && e.SubSection != filter.SubSection {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) DistinctSections(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) DistinctSubSections(ctx context.Context, section string) ([]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeAttendanceRepo struct {
	summaries map[string]attendance.DaySummary
}

func (f *fakeAttendanceRepo) GetForDate(ctx context.Context, date time.Time, empCodes []string) (map[string]attendance.DaySummary, error) {
	return f.summaries, nil
}

func (f *fakeAttendanceRepo) MaxSyncID(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeAttendanceRepo) InsertSynced(ctx context.Context, punches []attendance.Punch) (int, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) UpsertManual(ctx context.Context, empCode string, punchTime time.Time) (bool, error) {
	return false, nil
}

type fakeHolidayRepo struct {
	byDate   map[string]holiday.Holiday
	snapshot []holiday.DutyRecord
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	if h, ok := f.byDate[date.Format("2006-01-02")]; ok {
		return h, nil
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) { return nil, nil }

func (f *fakeHolidayRepo) SetProcessedAt(ctx context.Context, id int64, processedAt time.Time) error {
	return nil
}

func (f *fakeHolidayRepo) MarkFinalized(ctx context.Context, id int64) error { return nil }

func (f *fakeHolidayRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeHolidayRepo) ReplaceSnapshot(ctx context.Context, holidayID int64, records []holiday.DutyRecord) error {
	f.snapshot = records
	return nil
}

func (f *fakeHolidayRepo) GetSnapshot(ctx context.Context, holidayID int64, section, subSection, category string) ([]holiday.DutyRecord, error) {
	return f.snapshot, nil
}

func punchAt(t *testing.T, date, clock string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	require.NoError(t, err)
	return &ts
}

func testService(employees []employee.Employee, summaries map[string]attendance.DaySummary) report.Service {
	return NewReportService(
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{summaries: summaries},
		&fakeHolidayRepo{},
	)
}

func TestPaymentSheet_WorkerOvertimePay(t *testing.T) {
	ctx := context.Background()
	worker := employee.Employee{
		EmpID: "1001", Name: "rahim uddin", Designation: "operator",
		Section: "sewing", SubSection: "line-1", Category: "Worker", GrossSalary: 12950,
	}
	svc := testService([]employee.Employee{worker}, map[string]attendance.DaySummary{
		"1001": {
			InTime:  punchAt(t, "2024-05-01", "07:45"),
			OutTime: punchAt(t, "2024-05-01", "17:10"),
		},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	// Gross 12950 -> basic (12950-2450)/1.5 = 7000
	assert.Equal(t, 7000.0, row.Basic)
	// In-time clamps to the 08:00 shift start, out rounds down to 17:00.
	assert.Equal(t, "08:00", row.InTime)
	assert.Equal(t, "17:00", row.OutTime)
	// 9h span minus the 1h lunch deduction.
	assert.Equal(t, 8.0, row.Hour)
	assert.Equal(t, 8.0, row.OT)
	// OT rate 7000/208*2 = 67.31; amount = 8 * rate, rounded.
	assert.Equal(t, 67.31, row.OTRate)
	assert.Equal(t, 538.0, row.Amount)
}

func TestPaymentSheet_StaffGetsDailyBasic(t *testing.T) {
	ctx := context.Background()
	staff := employee.Employee{
		EmpID: "2001", Name: "karim", Designation: "accountant",
		Section: "admin", SubSection: "accounts", Category: "Staff", GrossSalary: 20450,
	}
	svc := testService([]employee.Employee{staff}, map[string]attendance.DaySummary{
		"2001": {
			InTime:  punchAt(t, "2024-05-01", "08:30"),
			OutTime: punchAt(t, "2024-05-01", "14:00"),
		},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Basic (20450-2450)/1.5 = 12000; daily basic 12000/30 = 400.
	assert.Equal(t, 400.0, rows[0].Amount)
	assert.Equal(t, 0.0, rows[0].OT)
}

func TestPaymentSheet_CleanerEarlierShiftStart(t *testing.T) {
	ctx := context.Background()
	cleaner := employee.Employee{
		EmpID: "3001", Name: "morium", Designation: "cleaner",
		Section: "admin", SubSection: "Cleaner", Category: "Worker", GrossSalary: 9950,
	}
	svc := testService([]employee.Employee{cleaner}, map[string]attendance.DaySummary{
		"3001": {
			InTime:  punchAt(t, "2024-05-01", "07:10"),
			OutTime: punchAt(t, "2024-05-01", "13:30"),
		},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Cleaners clamp to 07:30 instead of 08:00; 6h span triggers lunch.
	assert.Equal(t, "07:30", rows[0].InTime)
	assert.Equal(t, 5.0, rows[0].Hour)
}

func TestPaymentSheet_WorkerMissingPunchZeroesPay(t *testing.T) {
	ctx := context.Background()
	worker := employee.Employee{
		EmpID: "1002", Name: "jashim", Designation: "operator",
		Section: "sewing", SubSection: "line-2", Category: "Worker", GrossSalary: 12950,
	}
	svc := testService([]employee.Employee{worker}, map[string]attendance.DaySummary{
		"1002": {InTime: punchAt(t, "2024-05-01", "08:00")},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Missing", rows[0].OutTime)
	assert.Equal(t, 0.0, rows[0].Amount)
	assert.Equal(t, 0.0, rows[0].Hour)
}

func TestPaymentSheet_StaffSinglePunchStillPaid(t *testing.T) {
	ctx := context.Background()
	staff := employee.Employee{
		EmpID: "2002", Name: "salma", Designation: "clerk",
		Section: "admin", SubSection: "accounts", Category: "Staff", GrossSalary: 14450,
	}
	svc := testService([]employee.Employee{staff}, map[string]attendance.DaySummary{
		"2002": {OutTime: punchAt(t, "2024-05-01", "16:45")},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// One punch is enough for staff: (14450-2450)/1.5/30 = 266.67 -> 267.
	assert.Equal(t, "Missing", rows[0].InTime)
	assert.Equal(t, 267.0, rows[0].Amount)
}

func TestPaymentSheet_SecurityExcluded(t *testing.T) {
	ctx := context.Background()
	guard := employee.Employee{
		EmpID: "4001", Name: "guard one", Designation: "guard",
		Section: "Security", SubSection: "gate", Category: "Worker", GrossSalary: 11450,
	}
	svc := testService([]employee.Employee{guard}, map[string]attendance.DaySummary{
		"4001": {
			InTime:  punchAt(t, "2024-05-01", "08:00"),
			OutTime: punchAt(t, "2024-05-01", "17:00"),
		},
	})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPaymentSheet_AbsentEmployeeSkipped(t *testing.T) {
	ctx := context.Background()
	worker := employee.Employee{
		EmpID: "1003", Name: "anwar", Designation: "helper",
		Section: "sewing", SubSection: "line-1", Category: "Worker", GrossSalary: 10450,
	}
	svc := testService([]employee.Employee{worker}, map[string]attendance.DaySummary{})

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPaymentSheet_MissingDateRejected(t *testing.T) {
	svc := testService(nil, nil)

	_, err := svc.PaymentSheet(context.Background(), report.PaymentSheetRequest{})
	assert.Error(t, err)
}

func TestPaymentSheet_ProcessedHolidayServedFromSnapshot(t *testing.T) {
	ctx := context.Background()
	processedAt := time.Now()
	holidayRepo := &fakeHolidayRepo{
		byDate: map[string]holiday.Holiday{
			"2024-05-01": {ID: 7, StoredStatus: string(holiday.StatusDraft), ProcessedAt: &processedAt},
		},
		snapshot: []holiday.DutyRecord{
			{EmpID: "1001", EmpName: "Rahim Uddin", Amount: 538, InTime: "08:00", OutTime: "17:00"},
		},
	}
	// Live data deliberately differs from the snapshot.
	svc := NewReportService(
		&fakeEmployeeRepo{},
		&fakeAttendanceRepo{},
		holidayRepo,
	)

	rows, err := svc.PaymentSheet(ctx, report.PaymentSheetRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].ID)
	assert.Equal(t, 538.0, rows[0].Amount)
}

func TestComputeDutySnapshot_IgnoresStoredSnapshot(t *testing.T) {
	ctx := context.Background()
	processedAt := time.Now()
	worker := employee.Employee{
		EmpID: "1001", Name: "rahim", Designation: "operator",
		Section: "sewing", SubSection: "line-1", Category: "Worker", GrossSalary: 12950,
	}
	holidayRepo := &fakeHolidayRepo{
		byDate: map[string]holiday.Holiday{
			"2024-05-01": {ID: 7, ProcessedAt: &processedAt},
		},
		snapshot: []holiday.DutyRecord{{EmpID: "stale"}},
	}
	svc := NewReportService(
		&fakeEmployeeRepo{employees: []employee.Employee{worker}},
		&fakeAttendanceRepo{summaries: map[string]attendance.DaySummary{
			"1001": {
				InTime:  punchAt(t, "2024-05-01", "08:00"),
				OutTime: punchAt(t, "2024-05-01", "17:00"),
			},
		}},
		holidayRepo,
	)

	date, _ := time.Parse("2006-01-02", "2024-05-01")
	rows, err := svc.ComputeDutySnapshot(ctx, date)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].ID)
}

func TestPresentStatus_RawTimesAndMissing(t *testing.T) {
	ctx := context.Background()
	employees := []employee.Employee{
		{EmpID: "1001", Name: "rahim uddin", Designation: "operator", Section: "sewing", SubSection: "line-1", Category: "Worker"},
		{EmpID: "1002", Name: "jashim", Designation: "helper", Section: "sewing", SubSection: "line-1", Category: "Worker"},
	}
	svc := testService(employees, map[string]attendance.DaySummary{
		"1001": {
			InTime:  punchAt(t, "2024-05-01", "07:45"),
			OutTime: punchAt(t, "2024-05-01", "17:10"),
		},
		"1002": {OutTime: punchAt(t, "2024-05-01", "17:10")},
	})

	rows, err := svc.PresentStatus(ctx, report.PresentStatusRequest{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Raw punch times, no shift clamping, names title-cased.
	assert.Equal(t, "07:45", rows[0].InTime)
	assert.Equal(t, "17:10", rows[0].OutTime)
	assert.Equal(t, "Rahim Uddin", rows[0].Name)
	assert.Equal(t, "Missing", rows[1].InTime)
	assert.Equal(t, 1, rows[0].Sl)
	assert.Equal(t, 2, rows[1].Sl)
}

func TestPresentStatus_SectionFilter(t *testing.T) {
	ctx := context.Background()
	employees := []employee.Employee{
		{EmpID: "1001", Name: "rahim", Designation: "operator", Section: "sewing", SubSection: "line-1", Category: "Worker"},
		{EmpID: "5001", Name: "kamal", Designation: "cutter", Section: "cutting", SubSection: "table-1", Category: "Worker"},
	}
	svc := testService(employees, map[string]attendance.DaySummary{
		"1001": {InTime: punchAt(t, "2024-05-01", "08:00")},
		"5001": {InTime: punchAt(t, "2024-05-01", "08:00")},
	})

	rows, err := svc.PresentStatus(ctx, report.PresentStatusRequest{Date: "2024-05-01", Section: "cutting"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "5001", rows[0].ID)
}
