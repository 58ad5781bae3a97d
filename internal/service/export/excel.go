package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const paymentSheetName = "Payment Sheet"

var paymentSheetHeaders = []interface{}{
	"SL", "ID", "Name", "Designation", "Section",
	"Gross", "Basic", "In Time", "Out Time", "Amount", "Signature",
}

// PaymentSheetFilename names the downloaded workbook deterministically from
// the report date.
func PaymentSheetFilename(date string) string {
	return fmt.Sprintf("payment_sheet_%s.xlsx", date)
}

// BuildPaymentSheetWorkbook renders payment sheet rows into an xlsx workbook.
func BuildPaymentSheetWorkbook(rows []report.PaymentSheetRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", paymentSheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := f.SetSheetRow(paymentSheetName, "A1", &paymentSheetHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to locate row %d: %w", i+2, err)
		}
		values := []interface{}{
			row.Sl, row.ID, row.Name, row.Designation, row.Section,
			row.Gross, math.Round(row.Basic), row.InTime, row.OutTime, row.Amount, "",
		}
		if err := f.SetSheetRow(paymentSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(paymentSheetName, "A", "K", 16); err != nil {
		return nil, fmt.Errorf("failed to set column widths: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}
