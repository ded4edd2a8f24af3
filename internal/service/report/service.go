package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/spreadsheet"
)

type ReportServiceImpl struct {
	shiftPlanRepo schedule.ShiftPlanRepository
	calculator    worktime.Calculator
}

func NewReportService(shiftPlanRepo schedule.ShiftPlanRepository, calculator worktime.Calculator) report.ReportService {
	return &ReportServiceImpl{
		shiftPlanRepo: shiftPlanRepo,
		calculator:    calculator,
	}
}

// GenerateWeeklyOverview implements report.ReportService.
func (s *ReportServiceImpl) GenerateWeeklyOverview(ctx context.Context, req report.WeeklyReportRequest) (report.WeeklyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyReportResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return report.WeeklyReportResponse{}, err
	}
	if !user.HasPermission(claims.Role, user.PermissionReportsView) && !claims.CanAccessEmployee(req.EmployeeID) {
		return report.WeeklyReportResponse{}, user.ErrInsufficientPermissions
	}

	weekStart, err := worktime.ParseDate(req.WeekStart)
	if err != nil {
		return report.WeeklyReportResponse{}, err
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	stored, err := s.shiftPlanRepo.ListByEmployee(ctx, req.EmployeeID, weekStart, weekEnd, claims.CompanyID)
	if err != nil {
		return report.WeeklyReportResponse{}, fmt.Errorf("failed to load shift plans: %w", err)
	}

	plans := make([]worktime.ShiftPlan, 0, len(stored))
	for _, p := range stored {
		plans = append(plans, p.ToPlan())
	}

	overview, err := s.calculator.ComputeWeekly(req.WeekStart, plans)
	if err != nil {
		return report.WeeklyReportResponse{}, err
	}

	return report.WeeklyReportResponse{
		EmployeeID: req.EmployeeID,
		Overview:   overview,
	}, nil
}

// ExportWeeklyOverview implements report.ReportService.
func (s *ReportServiceImpl) ExportWeeklyOverview(ctx context.Context, req report.WeeklyReportRequest) (report.ExportFile, error) {
	resp, err := s.GenerateWeeklyOverview(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := spreadsheet.WriteWeeklyOverview(resp.EmployeeID, resp.Overview)
	if err != nil {
		slog.Error("Failed to render weekly overview", "employee_id", resp.EmployeeID, "week_start", req.WeekStart, "error", err)
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("weekly-overview-%s-%s.xlsx", resp.EmployeeID, req.WeekStart),
		ContentType: report.XLSXContentType,
		Content:     content,
	}, nil
}
