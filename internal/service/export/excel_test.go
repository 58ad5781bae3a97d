package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
)

func TestPaymentSheetFilename(t *testing.T) {
	assert.Equal(t, "payment_sheet_2024-05-01.xlsx", PaymentSheetFilename("2024-05-01"))
}

func TestBuildPaymentSheetWorkbook(t *testing.T) {
	rows := []report.PaymentSheetRow{
		{Sl: 1, ID: "1001", Name: "Rahim Uddin", Designation: "Operator", Section: "Sewing", Gross: 12950, Basic: 7000, InTime: "08:00", OutTime: "17:00", Amount: 538},
		{Sl: 2, ID: "1002", Name: "Karim", Designation: "Helper", Section: "Sewing", Gross: 10450, Basic: 5333, InTime: "Missing", OutTime: "17:00", Amount: 0},
	}

	buf, err := BuildPaymentSheetWorkbook(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payment Sheet"}, f.GetSheetList())

	got, err := f.GetRows("Payment Sheet")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{
		"SL", "ID", "Name", "Designation", "Section",
		"Gross", "Basic", "In Time", "Out Time", "Amount", "Signature",
	}, got[0][:11])

	assert.Equal(t, "1001", got[1][1])
	assert.Equal(t, "Rahim Uddin", got[1][2])
	assert.Equal(t, "08:00", got[1][7])
	assert.Equal(t, "538", got[1][9])
	assert.Equal(t, "Missing", got[2][7])
}

func TestBuildPaymentSheetWorkbook_Empty(t *testing.T) {
	buf, err := BuildPaymentSheetWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Payment Sheet")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
