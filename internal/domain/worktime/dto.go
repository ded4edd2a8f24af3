package worktime

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// STATELESS ENGINE DTOs
// ========================================

type DailyMetricsRequest struct {
	Record AttendanceRecord `json:"record"`
	Plan   *ShiftPlan       `json:"plan,omitempty"`
	Rates  RateConfig       `json:"rates"`
}

func (r *DailyMetricsRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Record.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "record.date",
			Message: "record.date must be a valid date in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Record.EntryTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "record.entry_time",
			Message: "record.entry_time is required",
		})
	} else if _, ok := validator.IsValidTime(r.Record.EntryTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "record.entry_time",
			Message: "record.entry_time must be a valid time in HH:MM format",
		})
	}

	if r.Record.IsOpen() {
		errs = append(errs, validator.ValidationError{
			Field:   "record.exit_time",
			Message: "record.exit_time is required to compute metrics",
		})
	} else if _, ok := validator.IsValidTime(*r.Record.ExitTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "record.exit_time",
			Message: "record.exit_time must be a valid time in HH:MM format",
		})
	}

	if r.Record.EmbeddedRate != nil && r.Record.EmbeddedRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "record.embedded_rate",
			Message: "record.embedded_rate must not be negative",
		})
	}

	if r.Plan != nil {
		errs = append(errs, validatePlanWindow("plan", *r.Plan)...)
	}
	errs = append(errs, ValidateRateConfig("rates", r.Rates)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyOverviewRequest struct {
	WeekStart string      `json:"week_start"`
	Plans     []ShiftPlan `json:"plans"`
}

func (r *WeeklyOverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeRequest carries one upstream row with arbitrary field names.
type NormalizeRequest struct {
	Kind string         `json:"kind"` // attendance | shift_plan
	Row  map[string]any `json:"row"`
}

func (r *NormalizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind == "" {
		r.Kind = "attendance"
	}
	if !validator.IsInSlice(r.Kind, []string{"attendance", "shift_plan"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: attendance, shift_plan",
		})
	}
	if len(r.Row) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "row",
			Message: "row is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePlanWindow(prefix string, p ShiftPlan) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if p.Start != nil && *p.Start != "" {
		if _, ok := validator.IsValidTime(*p.Start); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".start",
				Message: prefix + ".start must be a valid time in HH:MM format",
			})
		}
	}
	if p.End != nil && *p.End != "" {
		if _, ok := validator.IsValidTime(*p.End); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".end",
				Message: prefix + ".end must be a valid time in HH:MM format",
			})
		}
	}
	if p.RecordedOvertimeHours != nil && *p.RecordedOvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".recorded_overtime_hours",
			Message: prefix + ".recorded_overtime_hours must not be negative",
		})
	}
	return errs
}

// ValidateRateConfig rejects negative rates. Field names are prefixed with "prefix." when prefix is set.
func ValidateRateConfig(prefix string, c RateConfig) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if prefix != "" {
		prefix += "."
	}
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"base_rate", c.BaseRate},
		{"extra_rate", c.ExtraRate},
		{"nocturnal_rate", c.NocturnalRate},
	}
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + f.name,
				Message: prefix + f.name + " must not be negative",
			})
		}
	}
	return errs
}
