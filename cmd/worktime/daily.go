package main

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	var (
		date      string
		in        string
		out       string
		planStart string
		planEnd   string
		rates     rateFlags
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Compute normal, overtime and nocturnal hours and cost of one punch pair",
		Example: `  worktime daily --date 2025-03-10 --in 22:00 --out 06:00 --base-rate 10
  worktime daily --date 2025-03-10 --in 07:30 --out 19:00 --plan-start 08:00 --plan-end 17:00 --base-rate 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rates.config()
			if err != nil {
				return err
			}
			calc, err := rates.calculator()
			if err != nil {
				return err
			}

			record := worktime.AttendanceRecord{Date: date, EntryTime: in}
			if out != "" {
				record.ExitTime = &out
			}

			var plan *worktime.ShiftPlan
			if planStart != "" || planEnd != "" {
				plan = &worktime.ShiftPlan{Date: date}
				if planStart != "" {
					plan.Start = &planStart
				}
				if planEnd != "" {
					plan.End = &planEnd
				}
			}

			result, err := calc.ComputeDaily(record, plan, cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Record date YYYY-MM-DD")
	cmd.Flags().StringVar(&in, "in", "", "Entry punch HH:MM")
	cmd.Flags().StringVar(&out, "out", "", "Exit punch HH:MM, earlier than --in means the next day")
	cmd.Flags().StringVar(&planStart, "plan-start", "", "Planned start HH:MM")
	cmd.Flags().StringVar(&planEnd, "plan-end", "", "Planned end HH:MM")
	rates.register(cmd)

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
