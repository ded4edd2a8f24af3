package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	worktimeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/spf13/cobra"
)

func newWeeklyCmd() *cobra.Command {
	var (
		weekStart string
		windows   []string
		slots     []string
		overtime  []string
	)

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Rebuild the planned blocks of a week",
		Example: `  worktime weekly --week-start 2025-01-06 \
    --plan 2025-01-06=08:00-17:00 --slots 2025-01-07=16,17,18,19 --overtime 2025-01-06=2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := buildWeekPlans(windows, slots, overtime)
			if err != nil {
				return err
			}

			overview, err := worktimeService.NewCalculator().ComputeWeekly(weekStart, plans)
			if err != nil {
				return err
			}
			return writeJSON(cmd, overview)
		},
	}

	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&windows, "plan", nil, "Planned window DATE=HH:MM-HH:MM (repeatable)")
	cmd.Flags().StringArrayVar(&slots, "slots", nil, "Occupied half-hour slots DATE=i,j,k (repeatable)")
	cmd.Flags().StringArrayVar(&overtime, "overtime", nil, "Recorded overtime hours DATE=H (repeatable)")
	_ = cmd.MarkFlagRequired("week-start")
	return cmd
}

// buildWeekPlans merges the per-date flag values into one plan per date, ordered by date.
func buildWeekPlans(windows, slots, overtime []string) ([]worktime.ShiftPlan, error) {
	byDate := make(map[string]*worktime.ShiftPlan)
	planFor := func(date string) *worktime.ShiftPlan {
		if p, ok := byDate[date]; ok {
			return p
		}
		p := &worktime.ShiftPlan{Date: date}
		byDate[date] = p
		return p
	}

	for _, v := range windows {
		date, value, err := splitDateValue("--plan", v)
		if err != nil {
			return nil, err
		}
		start, end, ok := strings.Cut(value, "-")
		if !ok {
			return nil, fmt.Errorf("--plan %q: expected DATE=HH:MM-HH:MM", v)
		}
		p := planFor(date)
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		p.Start, p.End = &start, &end
	}

	for _, v := range slots {
		date, value, err := splitDateValue("--slots", v)
		if err != nil {
			return nil, err
		}
		var indices []int
		for _, part := range strings.Split(value, ",") {
			i, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("--slots %q: %w", v, err)
			}
			indices = append(indices, i)
		}
		bm, err := worktime.NewSlotBitmap(indices...)
		if err != nil {
			return nil, fmt.Errorf("--slots %q: %w", v, err)
		}
		planFor(date).Slots = bm
	}

	for _, v := range overtime {
		date, value, err := splitDateValue("--overtime", v)
		if err != nil {
			return nil, err
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("--overtime %q: expected a non-negative number of hours", v)
		}
		planFor(date).RecordedOvertimeHours = &hours
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	plans := make([]worktime.ShiftPlan, 0, len(dates))
	for _, d := range dates {
		plans = append(plans, *byDate[d])
	}
	return plans, nil
}

func splitDateValue(flag, v string) (date, value string, err error) {
	date, value, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(date) == "" || strings.TrimSpace(value) == "" {
		return "", "", fmt.Errorf("%s %q: expected DATE=VALUE", flag, v)
	}
	date = strings.TrimSpace(date)
	if _, err := worktime.ParseDate(date); err != nil {
		return "", "", fmt.Errorf("%s %q: %w", flag, v, err)
	}
	return date, strings.TrimSpace(value), nil
}
