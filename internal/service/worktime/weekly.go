package worktime

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
)

const daysPerWeek = 7

// ComputeWeekly implements worktime.Calculator. Days without a usable plan contribute
// nothing; only an unparsable weekStart is an error.
func (c *Calculator) ComputeWeekly(weekStart string, plans []worktime.ShiftPlan) (worktime.WeeklyOverview, error) {
	start, err := worktime.ParseDate(weekStart)
	if err != nil {
		return worktime.WeeklyOverview{}, err
	}

	byDate := make(map[string]worktime.ShiftPlan, len(plans))
	for _, p := range plans {
		byDate[p.Date] = p
	}

	overview := worktime.WeeklyOverview{WeekStart: start.Format(worktime.DateLayout)}
	for i := 0; i < daysPerWeek; i++ {
		date := start.AddDate(0, 0, i).Format(worktime.DateLayout)
		day := worktime.DayOverview{Date: date, Blocks: []worktime.Block{}}
		if plan, ok := byDate[date]; ok {
			day = decodeDay(date, plan)
		}

		overview.Days[i] = day
		overview.WeeklyBase += day.BaseHours
		overview.WeeklyExtra += day.OvertimeHours
	}
	overview.WeeklyTotal = overview.WeeklyBase + overview.WeeklyExtra

	return overview, nil
}

// decodeDay rebuilds the blocks of one planned day. A bitmap is reduced to the envelope
// from its first to its last occupied slot; hours still count occupied slots only.
func decodeDay(date string, plan worktime.ShiftPlan) worktime.DayOverview {
	day := worktime.DayOverview{
		Date:   date,
		Lunch:  plan.Lunch,
		Blocks: []worktime.Block{},
	}

	var baseEnd *worktime.TimePoint
	switch {
	case plan.HasWindow():
		s, errStart := worktime.ResolveTimePoint(date, *plan.Start)
		e, errEnd := worktime.ResolveTimePoint(date, *plan.End)
		if errStart != nil || errEnd != nil {
			break
		}
		iv := worktime.NewWorkedInterval(s, e)
		day.BaseHours = iv.Duration().Hours()
		day.Blocks = append(day.Blocks, newBlock(date, iv, iv.Duration().Hours(), worktime.BlockKindBase))
		baseEnd = &iv.End

	case plan.HasSlots():
		iv, ok, err := plan.SlotInterval(date)
		if err != nil || !ok {
			break
		}
		day.BaseHours = plan.Slots.OccupiedHours()
		day.Blocks = append(day.Blocks, newBlock(date, iv, iv.Duration().Hours(), worktime.BlockKindBase))
		baseEnd = &iv.End
	}

	if plan.RecordedOvertimeHours != nil && *plan.RecordedOvertimeHours > 0 {
		hours := *plan.RecordedOvertimeHours
		day.OvertimeHours = hours
		if baseEnd != nil {
			iv := worktime.Interval{
				Start: *baseEnd,
				End:   baseEnd.Add(time.Duration(hours * float64(time.Hour))),
			}
			day.Blocks = append(day.Blocks, newBlock(date, iv, hours, worktime.BlockKindOvertime))
		}
	}

	day.TotalHours = day.BaseHours + day.OvertimeHours
	return day
}

func newBlock(date string, iv worktime.Interval, hours float64, kind worktime.BlockKind) worktime.Block {
	return worktime.Block{
		Start:         iv.Start.Clock(),
		End:           iv.End.Clock(),
		EndsNextDay:   iv.End.Date() != date,
		DurationHours: hours,
		Kind:          kind,
	}
}
