package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// metricsWorkers bounds the concurrent plan lookups of ListDailyMetrics.
const metricsWorkers = 8

// errDuplicateRow marks an import row whose date is already recorded. A unique violation raised
// by the insert itself aborts the transaction and is reported as a failure instead.
var errDuplicateRow = fmt.Errorf("row skipped: %w", attendance.ErrAlreadyCheckedIn)

// maxOpenSpan is the longest server-clock punch pair accepted at clock out.
const maxOpenSpan = 24 * time.Hour

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.ShiftPlanRepository
	rateSettingService payroll.RateSettingService
	calculator         worktime.Calculator
	tx                 database.Transactor
	loc                *time.Location
	now                func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	shiftPlanRepo schedule.ShiftPlanRepository,
	rateSettingService payroll.RateSettingService,
	calculator worktime.Calculator,
	tx database.Transactor,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		ShiftPlanRepository:  shiftPlanRepo,
		rateSettingService:   rateSettingService,
		calculator:           calculator,
		tx:                   tx,
		loc:                  loc,
		now:                  time.Now,
	}
}

// localNow is the server clock as a wall-clock time point in the configured zone.
func (a *AttendanceServiceImpl) localNow() worktime.TimePoint {
	return worktime.NewTimePoint(a.now().In(a.loc))
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.CanAccessEmployee(req.EmployeeID) {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}

	point := a.localNow()
	date := point.Date()
	if req.Date != nil {
		date = *req.Date
	}
	clock := point.Clock()
	if req.Time != nil {
		if clock, err = canonicalClock(*req.Time); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	day, err := worktime.ParseDate(date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance ID: %w", err)
	}

	newAttendance := attendance.Attendance{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		CompanyID:  claims.CompanyID,
		Date:       day,
		ClockIn:    clock,
		Source:     attendance.SourcePunch,
	}
	if req.HourlyRate != nil {
		newAttendance.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
	}

	created, err := a.AttendanceRepository.Create(ctx, newAttendance)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Clocked in", "company_id", claims.CompanyID, "employee_id", created.EmployeeID, "date", date, "clock_in", clock)
	return attendance.NewAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.CanAccessEmployee(req.EmployeeID) {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}

	open, err := a.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var clock string
	if req.Time != nil {
		if clock, err = canonicalClock(*req.Time); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	} else {
		now := a.localNow()
		in, err := worktime.ResolveTimePoint(open.Date.Format(worktime.DateLayout), open.ClockIn)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("stored clock in: %w", err)
		}
		if now.Sub(in) > maxOpenSpan {
			return attendance.AttendanceResponse{}, attendance.ErrPunchSpanTooLong
		}
		clock = now.Clock()
	}

	closed, err := a.AttendanceRepository.SetClockOut(ctx, open.ID, claims.CompanyID, clock)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Clocked out",
		"company_id", claims.CompanyID,
		"employee_id", closed.EmployeeID,
		"attendance_id", closed.ID,
		"clock_in", closed.ClockIn,
		"clock_out", clock,
	)
	return attendance.NewAttendanceResponse(closed), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.CanAccessEmployee(att.EmployeeID) {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}

	return attendance.NewAttendanceResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := scopeFilter(&filter, claims); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.NewAttendanceResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  attendance.TotalPages(total, filter.Limit),
		Attendances: responses,
	}, nil
}

// ImportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ImportAttendance(ctx context.Context, req attendance.ImportAttendanceRequest) (attendance.ImportAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ImportAttendanceResponse{}, err
	}
	if !user.HasPermission(claims.Role, user.PermissionAttendanceImport) {
		return attendance.ImportAttendanceResponse{}, user.ErrInsufficientPermissions
	}

	resp := attendance.ImportAttendanceResponse{
		Imported: []attendance.AttendanceResponse{},
		Errors:   []attendance.RowError{},
	}

	// Valid rows land together: an infrastructure failure rolls back the whole batch.
	err = a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for i, row := range req.Rows {
			rowNum := i + 1

			record, err := worktime.NormalizeAttendance(row)
			if err != nil {
				resp.Errors = append(resp.Errors, attendance.RowError{Row: rowNum, Message: err.Error()})
				continue
			}

			created, err := a.importRecord(ctx, req.EmployeeID, claims.CompanyID, record)
			if err != nil {
				if errors.Is(err, errDuplicateRow) || worktime.IsInputError(err) {
					resp.Errors = append(resp.Errors, attendance.RowError{Row: rowNum, Message: err.Error()})
					continue
				}
				return fmt.Errorf("row %d: %w", rowNum, err)
			}
			resp.Imported = append(resp.Imported, attendance.NewAttendanceResponse(created))
		}
		return nil
	})
	if err != nil {
		return attendance.ImportAttendanceResponse{}, err
	}

	slog.Info("Attendance imported",
		"company_id", claims.CompanyID,
		"employee_id", req.EmployeeID,
		"imported", len(resp.Imported),
		"failed", len(resp.Errors),
	)
	return resp, nil
}

func (a *AttendanceServiceImpl) importRecord(ctx context.Context, employeeID, companyID string, record worktime.AttendanceRecord) (attendance.Attendance, error) {
	day, err := worktime.ParseDate(record.Date)
	if err != nil {
		return attendance.Attendance{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if existing != nil {
		return attendance.Attendance{}, errDuplicateRow
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance ID: %w", err)
	}

	newAttendance := attendance.Attendance{
		ID:         id.String(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       day,
		ClockIn:    record.EntryTime,
		Source:     attendance.SourceImport,
	}
	if !record.IsOpen() {
		newAttendance.ClockOut = record.ExitTime
	}
	if record.EmbeddedRate != nil {
		newAttendance.HourlyRate = decimal.NewNullDecimal(*record.EmbeddedRate)
	}

	return a.AttendanceRepository.Create(ctx, newAttendance)
}

// GetDailyMetrics implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyMetrics(ctx context.Context, req attendance.DailyMetricsRequest) (attendance.DailyMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyMetricsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.DailyMetricsResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return attendance.DailyMetricsResponse{}, err
	}
	if !claims.CanAccessEmployee(att.EmployeeID) {
		return attendance.DailyMetricsResponse{}, user.ErrInsufficientPermissions
	}
	if att.IsOpen() {
		return attendance.DailyMetricsResponse{}, attendance.ErrRecordStillOpen
	}

	cfg, err := a.rateSettingService.ResolveConfig(ctx, att.EmployeeID, req.Rates)
	if err != nil {
		return attendance.DailyMetricsResponse{}, fmt.Errorf("failed to resolve rates: %w", err)
	}

	return a.computeMetrics(ctx, att, cfg)
}

// ListDailyMetrics implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListDailyMetrics(ctx context.Context, req attendance.ListDailyMetricsRequest) (attendance.ListDailyMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ListDailyMetricsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListDailyMetricsResponse{}, err
	}
	if err := scopeFilter(&req.Filter, claims); err != nil {
		return attendance.ListDailyMetricsResponse{}, err
	}

	records, _, err := a.AttendanceRepository.List(ctx, req.Filter, claims.CompanyID)
	if err != nil {
		return attendance.ListDailyMetricsResponse{}, err
	}

	// Rate defaults are per employee; resolve each once before fanning out.
	configs := make(map[string]worktime.RateConfig)
	for _, att := range records {
		if _, ok := configs[att.EmployeeID]; ok || att.IsOpen() {
			continue
		}
		cfg, err := a.rateSettingService.ResolveConfig(ctx, att.EmployeeID, req.Rates)
		if err != nil {
			return attendance.ListDailyMetricsResponse{}, fmt.Errorf("failed to resolve rates for employee %s: %w", att.EmployeeID, err)
		}
		configs[att.EmployeeID] = cfg
	}

	type outcome struct {
		item   *attendance.DailyMetricsResponse
		rowErr *attendance.RowError
	}
	outcomes := make([]outcome, len(records))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(metricsWorkers)

	for i, att := range records {
		if att.IsOpen() {
			continue
		}
		g.Go(func() error {
			item, err := a.computeMetrics(gCtx, att, configs[att.EmployeeID])
			if err != nil {
				if worktime.IsInputError(err) {
					outcomes[i].rowErr = &attendance.RowError{Row: i + 1, RecordID: att.ID, Message: err.Error()}
					return nil
				}
				return err
			}
			outcomes[i].item = &item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return attendance.ListDailyMetricsResponse{}, err
	}

	resp := attendance.ListDailyMetricsResponse{
		Items:     []attendance.DailyMetricsResponse{},
		Errors:    []attendance.RowError{},
		TotalCost: decimal.Zero,
	}
	for i, att := range records {
		switch {
		case att.IsOpen():
			resp.OpenCount++
		case outcomes[i].rowErr != nil:
			resp.Errors = append(resp.Errors, *outcomes[i].rowErr)
		case outcomes[i].item != nil:
			item := *outcomes[i].item
			resp.Items = append(resp.Items, item)
			resp.TotalCost = resp.TotalCost.Add(item.Metrics.Cost)
			resp.TotalHours += item.Metrics.TotalHours
		}
	}

	return resp, nil
}

// computeMetrics runs the engine for a closed record against the employee's plan of that date.
func (a *AttendanceServiceImpl) computeMetrics(ctx context.Context, att attendance.Attendance, cfg worktime.RateConfig) (attendance.DailyMetricsResponse, error) {
	stored, err := a.ShiftPlanRepository.GetByEmployeeAndDate(ctx, att.EmployeeID, att.Date, att.CompanyID)
	if err != nil {
		return attendance.DailyMetricsResponse{}, fmt.Errorf("failed to load shift plan: %w", err)
	}

	var plan *worktime.ShiftPlan
	if stored != nil {
		p := stored.ToPlan()
		plan = &p
	}

	metrics, err := a.calculator.ComputeDaily(att.ToRecord(), plan, cfg)
	if err != nil {
		return attendance.DailyMetricsResponse{}, err
	}

	return attendance.DailyMetricsResponse{
		Attendance: attendance.NewAttendanceResponse(att),
		Metrics:    metrics,
	}, nil
}

// scopeFilter restricts callers without attendance.view_all to their own records.
func scopeFilter(filter *attendance.AttendanceFilter, claims jwt.AccessClaims) error {
	if user.HasPermission(claims.Role, user.PermissionAttendanceViewAll) {
		return nil
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && *filter.EmployeeID != claims.EmployeeID {
		return user.ErrInsufficientPermissions
	}
	if claims.EmployeeID == "" {
		return user.ErrInsufficientPermissions
	}
	employeeID := claims.EmployeeID
	filter.EmployeeID = &employeeID
	return nil
}

func canonicalClock(clock string) (string, error) {
	minutes, err := worktime.ParseClock(clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}
