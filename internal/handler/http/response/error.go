package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Engine input errors
	if worktime.IsInputError(err) {
		BadRequest(w, err.Error(), nil)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record already checked out")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open attendance record")
	case errors.Is(err, attendance.ErrRecordStillOpen):
		Conflict(w, "Attendance record has no clock out yet")
	case errors.Is(err, attendance.ErrPunchSpanTooLong):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, "Employee ID is required", nil)

	// Shift plan errors
	case errors.Is(err, schedule.ErrShiftPlanNotFound):
		NotFound(w, "Shift plan not found")
	case errors.Is(err, schedule.ErrEmptyShiftPlan),
		errors.Is(err, schedule.ErrEmployeeIDRequired),
		errors.Is(err, schedule.ErrInvalidDateFormat),
		errors.Is(err, schedule.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Rate settings errors
	case errors.Is(err, payroll.ErrRateSettingNotFound):
		NotFound(w, "Rate setting not found")
	case errors.Is(err, payroll.ErrEmployeeIDRequired):
		BadRequest(w, "Employee ID is required", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
