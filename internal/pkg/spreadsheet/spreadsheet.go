// Package spreadsheet renders weekly overviews to .xlsx and reads punch sheets exported by time clocks.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/xuri/excelize/v2"
)

const (
	OverviewSheet = "Weekly Overview"
	BlocksSheet   = "Blocks"
)

var (
	ErrNoWorksheet    = errors.New("no worksheet found")
	ErrEmptyWorksheet = errors.New("worksheet is empty")
)

// WriteWeeklyOverview renders overview as a workbook with a per-day summary sheet and a block sheet.
func WriteWeeklyOverview(employeeID string, overview worktime.WeeklyOverview) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), OverviewSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(BlocksSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Employee", employeeID},
		{"Week start", overview.WeekStart},
		{},
		{"Date", "Base hours", "Overtime hours", "Total hours", "Lunch", "Blocks"},
	}
	for _, day := range overview.Days {
		lunch := ""
		if day.Lunch != nil {
			lunch = day.Lunch.Start + "-" + day.Lunch.End
		}
		rows = append(rows, []any{day.Date, day.BaseHours, day.OvertimeHours, day.TotalHours, lunch, describeBlocks(day.Blocks)})
	}
	rows = append(rows, []any{"Total", overview.WeeklyBase, overview.WeeklyExtra, overview.WeeklyTotal})

	if err := writeRows(f, OverviewSheet, rows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(OverviewSheet, "A4", "F4", bold); err != nil {
		return nil, err
	}
	totalRow := len(rows)
	if err := f.SetCellStyle(OverviewSheet, cellName(1, totalRow), cellName(4, totalRow), bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(OverviewSheet, "F", "F", 40); err != nil {
		return nil, err
	}

	blockRows := [][]any{{"Date", "Kind", "Start", "End", "Ends next day", "Duration hours"}}
	for _, day := range overview.Days {
		for _, b := range day.Blocks {
			blockRows = append(blockRows, []any{day.Date, string(b.Kind), b.Start, b.End, b.EndsNextDay, b.DurationHours})
		}
	}
	if err := writeRows(f, BlocksSheet, blockRows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(BlocksSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func describeBlocks(blocks []worktime.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		end := b.End
		if b.EndsNextDay {
			end += "(+1)"
		}
		parts = append(parts, fmt.Sprintf("%s-%s %s", b.Start, end, b.Kind))
	}
	return strings.Join(parts, "; ")
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, cellName(1, i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// ReadPunchSheet reads the first row of sheet as headers and returns one map per following row,
// keyed by the trimmed header. Excel date and time serials are converted to YYYY-MM-DD and HH:MM
// so the rows can go straight through worktime.NormalizeAttendance. An empty sheet name selects
// the first worksheet.
func ReadPunchSheet(r io.Reader, sheet string) ([]map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorksheet
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []map[string]any
	for _, row := range rows[1:] {
		record := make(map[string]any, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			record[headers[i]] = convertSerial(headers[i], cell)
		}
		if len(record) > 0 {
			out = append(out, record)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return out, nil
}

var (
	dateHeaders  = []string{"date", "fecha", "dia", "day"}
	clockHeaders = []string{
		"entry_time", "entrytime", "entrada", "hora_entrada", "clock_in", "clockin",
		"exit_time", "exittime", "salida", "hora_salida", "clock_out", "clockout",
	}
)

// convertSerial turns raw Excel serials into the text forms the normalizer accepts.
func convertSerial(header, cell string) any {
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}

	switch {
	case matchesHeader(header, dateHeaders) && serial >= 1:
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(worktime.DateLayout)
		}
	case matchesHeader(header, clockHeaders) && serial >= 0 && serial < 1:
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(worktime.ClockLayout)
		}
	}
	return cell
}

func matchesHeader(header string, names []string) bool {
	for _, h := range names {
		if strings.EqualFold(header, h) {
			return true
		}
	}
	return false
}

// NewPunchSheet builds a workbook from headers and rows, used by tooling and tests to produce
// the layout ReadPunchSheet expects.
func NewPunchSheet(headers []string, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	all := make([][]any, 0, len(rows)+1)
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	all = append(all, header)
	all = append(all, rows...)

	if err := writeRows(f, sheet, all); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
