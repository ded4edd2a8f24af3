package schedule

import "errors"

var (
	// Shift Plan Errors
	ErrShiftPlanNotFound = errors.New("shift plan not found")
	ErrEmptyShiftPlan    = errors.New("shift plan needs a start/end window or occupied slots")

	// Validation Errors
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)
