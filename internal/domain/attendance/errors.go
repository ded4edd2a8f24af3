package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyCheckedIn  = errors.New("attendance for this employee and date already exists")
	ErrNotCheckedIn      = errors.New("no open attendance record to check out")
	ErrAlreadyCheckedOut = errors.New("attendance record has already been checked out")
	ErrPunchSpanTooLong  = errors.New("open record started more than 24 hours ago, clock out with an explicit time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrRecordStillOpen    = errors.New("attendance record has no clock out yet")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
)
