package schedule

import (
	"context"
)

type ShiftPlanService interface {
	UpsertShiftPlan(ctx context.Context, req UpsertShiftPlanRequest) (ShiftPlanResponse, error)
	GetShiftPlan(ctx context.Context, employeeID, date string) (ShiftPlanResponse, error)
	ListShiftPlans(ctx context.Context, filter ShiftPlanFilter) ([]ShiftPlanResponse, error)
	DeleteShiftPlan(ctx context.Context, employeeID, date string) error
}
