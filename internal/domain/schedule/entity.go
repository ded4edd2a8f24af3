package schedule

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
)

// ShiftPlan is the planned working window of one employee on one date.
// It holds either an explicit StartTime/EndTime window or a half-hour slot bitmap.
type ShiftPlan struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	StartTime     *string // HH:MM
	EndTime       *string // HH:MM, at or before StartTime means next day
	Slots         int64
	OvertimeHours *float64
	LunchStart    *string
	LunchEnd      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToPlan converts the stored row into the engine's canonical plan.
func (p ShiftPlan) ToPlan() worktime.ShiftPlan {
	plan := worktime.ShiftPlan{
		Date:                  p.Date.Format(worktime.DateLayout),
		Start:                 p.StartTime,
		End:                   p.EndTime,
		Slots:                 worktime.SlotBitmap(p.Slots),
		RecordedOvertimeHours: p.OvertimeHours,
	}
	if p.LunchStart != nil && p.LunchEnd != nil {
		plan.Lunch = &worktime.Lunch{Start: *p.LunchStart, End: *p.LunchEnd}
	}
	return plan
}
