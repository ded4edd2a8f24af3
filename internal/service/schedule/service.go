package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type ShiftPlanServiceImpl struct {
	schedule.ShiftPlanRepository
}

func NewShiftPlanService(shiftPlanRepo schedule.ShiftPlanRepository) schedule.ShiftPlanService {
	return &ShiftPlanServiceImpl{ShiftPlanRepository: shiftPlanRepo}
}

// UpsertShiftPlan implements schedule.ShiftPlanService.
func (s *ShiftPlanServiceImpl) UpsertShiftPlan(ctx context.Context, req schedule.UpsertShiftPlanRequest) (schedule.ShiftPlanResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftPlanResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return schedule.ShiftPlanResponse{}, err
	}
	if !claims.Role.IsManager() {
		return schedule.ShiftPlanResponse{}, user.ErrManagerAccessRequired
	}

	date, err := worktime.ParseDate(req.Date)
	if err != nil {
		return schedule.ShiftPlanResponse{}, schedule.ErrInvalidDateFormat
	}
	slots, err := worktime.NewSlotBitmap(req.Slots...)
	if err != nil {
		return schedule.ShiftPlanResponse{}, err
	}

	plan := schedule.ShiftPlan{
		EmployeeID:    req.EmployeeID,
		CompanyID:     claims.CompanyID,
		Date:          date,
		StartTime:     canonicalClock(req.Start),
		EndTime:       canonicalClock(req.End),
		Slots:         int64(slots),
		OvertimeHours: req.OvertimeHours,
	}
	if plan.StartTime == nil && plan.EndTime == nil && slots.IsEmpty() {
		return schedule.ShiftPlanResponse{}, schedule.ErrEmptyShiftPlan
	}
	if req.Lunch != nil {
		plan.LunchStart = &req.Lunch.Start
		plan.LunchEnd = &req.Lunch.End
	}

	id, err := uuid.NewV7()
	if err != nil {
		return schedule.ShiftPlanResponse{}, fmt.Errorf("failed to generate shift plan ID: %w", err)
	}
	plan.ID = id.String()

	saved, err := s.ShiftPlanRepository.Upsert(ctx, plan)
	if err != nil {
		return schedule.ShiftPlanResponse{}, err
	}

	slog.Info("Shift plan saved",
		"company_id", claims.CompanyID,
		"employee_id", saved.EmployeeID,
		"date", req.Date,
		"slots", slots.Count(),
	)
	return schedule.NewShiftPlanResponse(saved), nil
}

// GetShiftPlan implements schedule.ShiftPlanService.
func (s *ShiftPlanServiceImpl) GetShiftPlan(ctx context.Context, employeeID string, date string) (schedule.ShiftPlanResponse, error) {
	if employeeID == "" {
		return schedule.ShiftPlanResponse{}, schedule.ErrEmployeeIDRequired
	}
	day, err := worktime.ParseDate(date)
	if err != nil {
		return schedule.ShiftPlanResponse{}, schedule.ErrInvalidDateFormat
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return schedule.ShiftPlanResponse{}, err
	}
	if !claims.CanAccessEmployee(employeeID) {
		return schedule.ShiftPlanResponse{}, user.ErrInsufficientPermissions
	}

	plan, err := s.ShiftPlanRepository.GetByEmployeeAndDate(ctx, employeeID, day, claims.CompanyID)
	if err != nil {
		return schedule.ShiftPlanResponse{}, err
	}
	if plan == nil {
		return schedule.ShiftPlanResponse{}, schedule.ErrShiftPlanNotFound
	}

	return schedule.NewShiftPlanResponse(*plan), nil
}

// ListShiftPlans implements schedule.ShiftPlanService.
func (s *ShiftPlanServiceImpl) ListShiftPlans(ctx context.Context, filter schedule.ShiftPlanFilter) ([]schedule.ShiftPlanResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !claims.CanAccessEmployee(filter.EmployeeID) {
		return nil, user.ErrInsufficientPermissions
	}

	start, _ := worktime.ParseDate(filter.StartDate)
	end, _ := worktime.ParseDate(filter.EndDate)

	plans, err := s.ShiftPlanRepository.ListByEmployee(ctx, filter.EmployeeID, start, end, claims.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ShiftPlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, schedule.NewShiftPlanResponse(p))
	}
	return responses, nil
}

// DeleteShiftPlan implements schedule.ShiftPlanService.
func (s *ShiftPlanServiceImpl) DeleteShiftPlan(ctx context.Context, employeeID string, date string) error {
	if employeeID == "" {
		return schedule.ErrEmployeeIDRequired
	}
	day, err := worktime.ParseDate(date)
	if err != nil {
		return schedule.ErrInvalidDateFormat
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.Role.IsManager() {
		return user.ErrManagerAccessRequired
	}

	if err := s.ShiftPlanRepository.Delete(ctx, employeeID, day, claims.CompanyID); err != nil {
		return err
	}

	slog.Info("Shift plan deleted", "company_id", claims.CompanyID, "employee_id", employeeID, "date", date)
	return nil
}

// canonicalClock rewrites an already validated clock as HH:MM, nil when unset.
func canonicalClock(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	minutes, err := worktime.ParseClock(*s)
	if err != nil {
		return s
	}
	clock := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	return &clock
}
