package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/viant/shiftmate/schema"
)

// Sheet names
const (
	AttendanceSheet = "Attendance"
	PayrollSheet    = "Payroll"
)

const timeLayout = "2006-01-02 15:04"

var (
	attendanceHeader = []interface{}{"Employee", "Clock in", "Clock out", "Hours", "Method"}
	payrollHeader    = []interface{}{"Employee", "Hours", "Hourly rate", "Estimated pay"}
)

// Timesheet writes an xlsx workbook with an Attendance sheet and, when estimate
// is not nil, a Payroll sheet ending with a total row.
func Timesheet(w io.Writer, records []*schema.AttendanceRecord, estimate *schema.PayrollEstimate) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err = file.SetSheetName("Sheet1", AttendanceSheet); err != nil {
		return err
	}
	if err = writeRows(file, AttendanceSheet, header, attendanceHeader, attendanceRows(records)); err != nil {
		return fmt.Errorf("failed to write attendance: %w", err)
	}
	if estimate != nil {
		if _, err = file.NewSheet(PayrollSheet); err != nil {
			return err
		}
		if err = writeRows(file, PayrollSheet, header, payrollHeader, payrollRows(estimate)); err != nil {
			return fmt.Errorf("failed to write payroll: %w", err)
		}
	}
	_, err = file.WriteTo(w)
	return err
}

func writeRows(file *excelize.File, sheet string, style int, header []interface{}, rows [][]interface{}) error {
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err = file.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	lastColumn, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return file.SetColWidth(sheet, "A", lastColumn, 18)
}

func attendanceRows(records []*schema.AttendanceRecord) [][]interface{} {
	var rows = make([][]interface{}, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		rows = append(rows, []interface{}{
			record.EmployeeName,
			formatTime(&record.ClockIn),
			formatTime(record.ClockOut),
			record.Hours,
			string(record.Method),
		})
	}
	return rows
}

func payrollRows(estimate *schema.PayrollEstimate) [][]interface{} {
	var rows = make([][]interface{}, 0, len(estimate.Lines)+1)
	for _, line := range estimate.Lines {
		if line == nil {
			continue
		}
		rows = append(rows, []interface{}{line.EmployeeName, line.Hours, line.HourlyRate, line.EstimatedPay})
	}
	total := "Total"
	if estimate.Currency != "" {
		total += " (" + estimate.Currency + ")"
	}
	return append(rows, []interface{}{total, estimate.TotalHours, "", estimate.LaborCost})
}

func formatTime(at *time.Time) string {
	if at == nil || at.IsZero() {
		return ""
	}
	return at.Format(timeLayout)
}
