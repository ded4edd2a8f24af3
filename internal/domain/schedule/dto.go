package schedule

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// MaxPlanRangeDays bounds ListShiftPlans.
const MaxPlanRangeDays = 93

type UpsertShiftPlanRequest struct {
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	Start         *string         `json:"start,omitempty"`
	End           *string         `json:"end,omitempty"`
	Slots         []int           `json:"slots,omitempty"`
	OvertimeHours *float64        `json:"overtime_hours,omitempty"`
	Lunch         *worktime.Lunch `json:"lunch,omitempty"`
}

func (r *UpsertShiftPlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date in YYYY-MM-DD format",
		})
	}

	hasStart := r.Start != nil && *r.Start != ""
	hasEnd := r.End != nil && *r.End != ""
	if !hasStart && !hasEnd && len(r.Slots) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "either start/end or slots is required",
		})
	}
	if hasStart {
		if _, ok := validator.IsValidTime(*r.Start); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be a valid time in HH:MM format",
			})
		}
	}
	if hasEnd {
		if _, ok := validator.IsValidTime(*r.End); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be a valid time in HH:MM format",
			})
		}
	}

	if _, err := worktime.NewSlotBitmap(r.Slots...); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "slots",
			Message: "slots must be indices between 0 and 47",
		})
	}

	if r.OvertimeHours != nil && (*r.OvertimeHours < 0 || *r.OvertimeHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must be between 0 and 24",
		})
	}

	if r.Lunch != nil {
		_, startOK := validator.IsValidTime(r.Lunch.Start)
		_, endOK := validator.IsValidTime(r.Lunch.End)
		if !startOK || !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch",
				Message: "lunch start and end must be valid times in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftPlanFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (f *ShiftPlanFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start) > MaxPlanRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 93 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftPlanResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	Start         *string         `json:"start,omitempty"`
	End           *string         `json:"end,omitempty"`
	Slots         []int           `json:"slots"`
	OvertimeHours *float64        `json:"overtime_hours,omitempty"`
	Lunch         *worktime.Lunch `json:"lunch,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewShiftPlanResponse(p ShiftPlan) ShiftPlanResponse {
	plan := p.ToPlan()
	return ShiftPlanResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		Date:          plan.Date,
		Start:         p.StartTime,
		End:           p.EndTime,
		Slots:         plan.Slots.Indices(),
		OvertimeHours: p.OvertimeHours,
		Lunch:         plan.Lunch,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
