package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt/jwttest"
	worktimeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKE SERVICES
// ========================================

type fakeAttendanceService struct {
	attendance.AttendanceService
	lastFilter  attendance.AttendanceFilter
	lastMetrics attendance.DailyMetricsRequest
	clockInErr  error
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if f.clockInErr != nil {
		return attendance.AttendanceResponse{}, f.clockInErr
	}
	return attendance.AttendanceResponse{ID: "att-1", EmployeeID: req.EmployeeID, IsOpen: true}, nil
}

func (f *fakeAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	f.lastFilter = filter
	return attendance.ListAttendanceResponse{
		TotalCount:  41,
		Page:        2,
		Limit:       20,
		TotalPages:  3,
		Attendances: []attendance.AttendanceResponse{{ID: "att-1"}},
	}, nil
}

func (f *fakeAttendanceService) GetDailyMetrics(ctx context.Context, req attendance.DailyMetricsRequest) (attendance.DailyMetricsResponse, error) {
	f.lastMetrics = req
	if req.ID == "missing" {
		return attendance.DailyMetricsResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.DailyMetricsResponse{Attendance: attendance.AttendanceResponse{ID: req.ID}}, nil
}

type fakeShiftPlanService struct {
	schedule.ShiftPlanService
	deleted []string
}

func (f *fakeShiftPlanService) UpsertShiftPlan(ctx context.Context, req schedule.UpsertShiftPlanRequest) (schedule.ShiftPlanResponse, error) {
	return schedule.ShiftPlanResponse{ID: "plan-1", EmployeeID: req.EmployeeID, Date: req.Date, Start: req.Start, End: req.End}, nil
}

func (f *fakeShiftPlanService) GetShiftPlan(ctx context.Context, employeeID, date string) (schedule.ShiftPlanResponse, error) {
	return schedule.ShiftPlanResponse{}, schedule.ErrShiftPlanNotFound
}

func (f *fakeShiftPlanService) DeleteShiftPlan(ctx context.Context, employeeID, date string) error {
	f.deleted = append(f.deleted, employeeID+"/"+date)
	return nil
}

type fakeRateSettingService struct {
	payroll.RateSettingService
	lastUpsert payroll.UpsertRateSettingRequest
}

func (f *fakeRateSettingService) UpsertRateSetting(ctx context.Context, req payroll.UpsertRateSettingRequest) (payroll.RateSettingResponse, error) {
	f.lastUpsert = req
	return payroll.RateSettingResponse{EmployeeID: req.EmployeeID, BaseRate: req.BaseRate}, nil
}

type fakeReportService struct {
	report.ReportService
}

func (f *fakeReportService) ExportWeeklyOverview(ctx context.Context, req report.WeeklyReportRequest) (report.ExportFile, error) {
	return report.ExportFile{
		Filename:    "weekly-overview-" + req.EmployeeID + "-" + req.WeekStart + ".xlsx",
		ContentType: report.XLSXContentType,
		Content:     []byte("PK"),
	}, nil
}

// ========================================
// HELPERS
// ========================================

type routerFixture struct {
	handler     http.Handler
	attendance  *fakeAttendanceService
	shiftPlans  *fakeShiftPlanService
	rateSetting *fakeRateSettingService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		attendance:  &fakeAttendanceService{},
		shiftPlans:  &fakeShiftPlanService{},
		rateSetting: &fakeRateSettingService{},
	}
	f.handler = NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		jwt.NewJWTService(jwttest.Secret, 0),
		Handlers{
			Worktime:    NewWorktimeHandler(worktimeService.NewCalculator()),
			Attendance:  NewAttendanceHandler(f.attendance),
			ShiftPlan:   NewShiftPlanHandler(f.shiftPlans),
			RateSetting: NewRateSettingHandler(f.rateSetting),
			Report:      NewReportHandler(&fakeReportService{}),
		},
	)
	return f
}

var (
	employeeClaims = jwt.AccessClaims{UserID: "u1", EmployeeID: "emp-1", CompanyID: "c1", Role: user.RoleEmployee}
	managerClaims  = jwt.AccessClaims{UserID: "u2", EmployeeID: "emp-2", CompanyID: "c1", Role: user.RoleManager}
)

func (f *routerFixture) do(t *testing.T, method, path string, claims *jwt.AccessClaims, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req.Header.Set("Authorization", "Bearer "+jwttest.Token(t, *claims))
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) response.Response {
	t.Helper()
	var envelope struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if target != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, target))
	}
	return envelope.Response
}

// ========================================
// TESTS
// ========================================

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/worktime/daily", nil, map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorktimeHandler_ComputeDaily(t *testing.T) {
	f := newRouterFixture(t)

	body := `{
		"record": {"date": "2025-03-10", "entry_time": "22:00", "exit_time": "06:00"},
		"rates": {"base_rate": "10", "nocturnal_rate": "20"}
	}`
	rec := f.do(t, http.MethodPost, "/api/v1/worktime/daily", &employeeClaims, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result worktime.DailyMetricsResult
	resp := decodeData(t, rec, &result)
	assert.True(t, resp.Success)
	assert.Equal(t, 8.0, result.TotalHours)
	assert.Equal(t, 8.0, result.NocturnalHours)
	assert.True(t, decimal.NewFromInt(160).Equal(result.Cost), result.Cost.String())
}

func TestWorktimeHandler_ComputeDaily_Errors(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("malformed body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/worktime/daily", &employeeClaims, "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("open record", func(t *testing.T) {
		body := `{"record": {"date": "2025-03-10", "entry_time": "08:00"}}`
		rec := f.do(t, http.MethodPost, "/api/v1/worktime/daily", &employeeClaims, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "record.exit_time")
	})
}

func TestWorktimeHandler_ComputeWeekly(t *testing.T) {
	f := newRouterFixture(t)

	body := `{
		"week_start": "2025-01-06",
		"plans": [
			{"date": "2025-01-06", "start": "08:00", "end": "17:00", "recorded_overtime_hours": 2},
			{"date": "2025-01-07", "slots": [16, 17, 18, 19]}
		]
	}`
	rec := f.do(t, http.MethodPost, "/api/v1/worktime/weekly", &employeeClaims, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var overview worktime.WeeklyOverview
	decodeData(t, rec, &overview)
	assert.Equal(t, 11.0, overview.WeeklyBase)
	assert.Equal(t, 2.0, overview.WeeklyExtra)
	require.Len(t, overview.Days[1].Blocks, 1)
	assert.Equal(t, "08:00", overview.Days[1].Blocks[0].Start)
	assert.Equal(t, "10:00", overview.Days[1].Blocks[0].End)
	assert.NotNil(t, overview.Days[6].Blocks)
}

func TestWorktimeHandler_Normalize(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("aliased attendance row", func(t *testing.T) {
		body := `{"row": {"fecha": "2025-03-10", "entrada": "08:00", "salida": "17:30"}}`
		rec := f.do(t, http.MethodPost, "/api/v1/worktime/normalize", &employeeClaims, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var record worktime.AttendanceRecord
		decodeData(t, rec, &record)
		assert.Equal(t, "2025-03-10", record.Date)
		assert.Equal(t, "08:00", record.EntryTime)
		require.NotNil(t, record.ExitTime)
		assert.Equal(t, "17:30", *record.ExitTime)
	})

	t.Run("bad clock", func(t *testing.T) {
		body := `{"row": {"date": "2025-03-10", "entry_time": "8am"}}`
		rec := f.do(t, http.MethodPost, "/api/v1/worktime/normalize", &employeeClaims, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		body := `{"kind": "payslip", "row": {"date": "2025-03-10"}}`
		rec := f.do(t, http.MethodPost, "/api/v1/worktime/normalize", &employeeClaims, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendances/clock-in", &employeeClaims, map[string]any{"employee_id": "emp-1"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	f.attendance.clockInErr = attendance.ErrAlreadyCheckedIn
	rec = f.do(t, http.MethodPost, "/api/v1/attendances/clock-in", &employeeClaims, map[string]any{"employee_id": "emp-1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/attendances/clock-in", &employeeClaims, map[string]any{"employee_id": "emp-1", "time": "25:00"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceHandler_ImportRequiresPermission(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendances/import", &employeeClaims, map[string]any{"employee_id": "emp-1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandler_List(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendances?employee_id=emp-1&start_date=2025-03-01&page=2&limit=20&open_only=true&sort_order=asc", &managerClaims, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	filter := f.attendance.lastFilter
	require.NotNil(t, filter.EmployeeID)
	assert.Equal(t, "emp-1", *filter.EmployeeID)
	require.NotNil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.True(t, filter.OpenOnly)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, "asc", filter.SortOrder)

	resp := decodeData(t, rec, nil)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestAttendanceHandler_GetMetrics(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendances/att-9/metrics?base_rate=12.5&nocturnal_rate=20", &employeeClaims, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := f.attendance.lastMetrics
	assert.Equal(t, "att-9", req.ID)
	require.NotNil(t, req.Rates.BaseRate)
	assert.Equal(t, "12.5", req.Rates.BaseRate.String())
	assert.Nil(t, req.Rates.ExtraRate)
	require.NotNil(t, req.Rates.NocturnalRate)

	rec = f.do(t, http.MethodGet, "/api/v1/attendances/att-9/metrics?extra_rate=abc", &employeeClaims, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "extra_rate")

	rec = f.do(t, http.MethodGet, "/api/v1/attendances/missing/metrics", &employeeClaims, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShiftPlanHandler(t *testing.T) {
	f := newRouterFixture(t)
	plan := map[string]any{"employee_id": "emp-1", "date": "2025-03-10", "start": "08:00", "end": "17:00"}

	t.Run("employee cannot write", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/v1/shift-plans", &employeeClaims, plan)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager upserts", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/v1/shift-plans", &managerClaims, plan)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got schedule.ShiftPlanResponse
		decodeData(t, rec, &got)
		assert.Equal(t, "plan-1", got.ID)
	})

	t.Run("missing plan", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/shift-plans/emp-1/2025-03-11", &employeeClaims, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("manager deletes", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, "/api/v1/shift-plans/emp-1/2025-03-10", &managerClaims, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"emp-1/2025-03-10"}, f.shiftPlans.deleted)
	})
}

func TestRateSettingHandler_Upsert(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPut, "/api/v1/rate-settings/emp-1", &employeeClaims, map[string]any{"base_rate": "20"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/rate-settings/emp-1", &managerClaims, map[string]any{"base_rate": "20"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "emp-1", f.rateSetting.lastUpsert.EmployeeID)
	require.NotNil(t, f.rateSetting.lastUpsert.BaseRate)
	assert.Equal(t, "20", f.rateSetting.lastUpsert.BaseRate.String())

	rec = f.do(t, http.MethodPut, "/api/v1/rate-settings/emp-1", &managerClaims, map[string]any{"base_rate": "-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportHandler_Export(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/reports/weekly/export?employee_id=emp-1&week_start=2025-01-06", &employeeClaims, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "weekly-overview-emp-1-2025-01-06.xlsx"))
	assert.Equal(t, "PK", rec.Body.String())
}
