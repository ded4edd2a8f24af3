package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All tenant-facing methods take companyID to keep companies isolated.
type AttendanceRepository interface {
	// Create inserts a record. A second record for the same employee and date fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record on date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// GetOpenSession returns the latest record of the employee that has no clock out.
	GetOpenSession(ctx context.Context, employeeID string, companyID string) (Attendance, error)

	// SetClockOut closes an open record. A closed record is never overwritten.
	SetClockOut(ctx context.Context, id string, companyID string, clockOut string) (Attendance, error)

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// ListOpenBefore returns open records of every company whose clock in (UTC wall clock) is before cutoff.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)
}
