package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens the record of the day for an employee
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the employee's open record, which may belong to the previous day
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ImportAttendance stores loosely shaped upstream rows, reporting failures per row
	ImportAttendance(ctx context.Context, req ImportAttendanceRequest) (ImportAttendanceResponse, error)

	// GetDailyMetrics reconciles one stored record against its shift plan and rates
	GetDailyMetrics(ctx context.Context, req DailyMetricsRequest) (DailyMetricsResponse, error)

	// ListDailyMetrics reconciles every closed record matching the filter, keeping their order
	ListDailyMetrics(ctx context.Context, req ListDailyMetricsRequest) (ListDailyMetricsResponse, error)
}
