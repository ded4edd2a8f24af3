package schedule

import (
	"context"
	"time"
)

type ShiftPlanRepository interface {
	// Upsert stores the plan, replacing any plan of the same employee and date.
	Upsert(ctx context.Context, plan ShiftPlan) (ShiftPlan, error)

	// GetByEmployeeAndDate returns nil when no plan exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*ShiftPlan, error)

	// ListByEmployee returns plans between start and end inclusive, ordered by date.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]ShiftPlan, error)

	Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error
}
