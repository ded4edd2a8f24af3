package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/spreadsheet"
	"github.com/spf13/cobra"
)

// importRow is the outcome of one sheet row. Row counts data rows from 1.
type importRow struct {
	Row     int                          `json:"row"`
	Record  *worktime.AttendanceRecord   `json:"record,omitempty"`
	Metrics *worktime.DailyMetricsResult `json:"metrics,omitempty"`
	Error   string                       `json:"error,omitempty"`
}

func newImportCmd() *cobra.Command {
	var (
		file  string
		sheet string
		rates rateFlags
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Compute daily metrics for every row of a time clock .xlsx export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rates.config()
			if err != nil {
				return err
			}
			calc, err := rates.calculator()
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := spreadsheet.ReadPunchSheet(f, sheet)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			results := make([]importRow, 0, len(rows))
			for i, raw := range rows {
				results = append(results, meterRow(calc, i+1, raw, cfg))
			}
			return writeJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the .xlsx punch export")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	rates.register(cmd)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func meterRow(calc worktime.Calculator, row int, raw map[string]any, cfg worktime.RateConfig) importRow {
	out := importRow{Row: row}

	record, err := worktime.NormalizeAttendance(raw)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Record = &record

	metrics, err := calc.ComputeDaily(record, nil, cfg)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Metrics = &metrics
	return out
}
