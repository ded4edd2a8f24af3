package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt/jwttest"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/spreadsheet"
	worktimeservice "github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeShiftPlanRepo struct {
	schedule.ShiftPlanRepository
	plans []schedule.ShiftPlan

	gotStart, gotEnd time.Time
	gotCompany       string
}

func (f *fakeShiftPlanRepo) ListByEmployee(_ context.Context, employeeID string, start, end time.Time, companyID string) ([]schedule.ShiftPlan, error) {
	f.gotStart, f.gotEnd, f.gotCompany = start, end, companyID
	var out []schedule.ShiftPlan
	for _, p := range f.plans {
		if p.EmployeeID == employeeID && !p.Date.Before(start) && !p.Date.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

var (
	managerClaims  = jwt.AccessClaims{UserID: "u-1", EmployeeID: "emp-mgr", CompanyID: "c-1", Role: user.RoleManager}
	employeeClaims = jwt.AccessClaims{UserID: "u-2", EmployeeID: "emp-1", CompanyID: "c-1", Role: user.RoleEmployee}
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := worktime.ParseDate(date)
	require.NoError(t, err)
	return d
}

func newRepo(t *testing.T) *fakeShiftPlanRepo {
	slots, err := worktime.NewSlotBitmap(16, 17, 18, 19)
	require.NoError(t, err)
	start, end := "22:00", "06:00"
	overtime := 1.0

	return &fakeShiftPlanRepo{plans: []schedule.ShiftPlan{
		{EmployeeID: "emp-1", Date: day(t, "2025-03-10"), Slots: int64(slots)},
		{EmployeeID: "emp-1", Date: day(t, "2025-03-12"), StartTime: &start, EndTime: &end, OvertimeHours: &overtime},
		{EmployeeID: "emp-1", Date: day(t, "2025-03-17"), Slots: int64(slots)},
	}}
}

func TestGenerateWeeklyOverview(t *testing.T) {
	repo := newRepo(t)
	svc := NewReportService(repo, worktimeservice.NewCalculator())

	resp, err := svc.GenerateWeeklyOverview(jwttest.Context(t, employeeClaims), report.WeeklyReportRequest{
		EmployeeID: "emp-1",
		WeekStart:  "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-16", repo.gotEnd.Format(worktime.DateLayout))
	assert.Equal(t, "c-1", repo.gotCompany)

	o := resp.Overview
	assert.Equal(t, 2.0, o.Days[0].BaseHours)
	require.Len(t, o.Days[0].Blocks, 1)
	assert.Equal(t, "08:00", o.Days[0].Blocks[0].Start)
	assert.Equal(t, "10:00", o.Days[0].Blocks[0].End)

	assert.Empty(t, o.Days[1].Blocks)
	assert.NotNil(t, o.Days[1].Blocks)

	require.Len(t, o.Days[2].Blocks, 2)
	assert.True(t, o.Days[2].Blocks[0].EndsNextDay)
	assert.Equal(t, worktime.BlockKindOvertime, o.Days[2].Blocks[1].Kind)

	assert.Equal(t, 10.0, o.WeeklyBase)
	assert.Equal(t, 1.0, o.WeeklyExtra)
	assert.Equal(t, 11.0, o.WeeklyTotal)
}

func TestGenerateWeeklyOverview_Access(t *testing.T) {
	svc := NewReportService(newRepo(t), worktimeservice.NewCalculator())

	_, err := svc.GenerateWeeklyOverview(jwttest.Context(t, employeeClaims), report.WeeklyReportRequest{
		EmployeeID: "emp-2",
		WeekStart:  "2025-03-10",
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.GenerateWeeklyOverview(jwttest.Context(t, managerClaims), report.WeeklyReportRequest{
		EmployeeID: "emp-2",
		WeekStart:  "2025-03-10",
	})
	assert.NoError(t, err)

	_, err = svc.GenerateWeeklyOverview(jwttest.Context(t, managerClaims), report.WeeklyReportRequest{
		EmployeeID: "emp-2",
		WeekStart:  "March 10",
	})
	assert.Error(t, err)
}

func TestExportWeeklyOverview(t *testing.T) {
	svc := NewReportService(newRepo(t), worktimeservice.NewCalculator())

	file, err := svc.ExportWeeklyOverview(jwttest.Context(t, managerClaims), report.WeeklyReportRequest{
		EmployeeID: "emp-1",
		WeekStart:  "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "weekly-overview-emp-1-2025-03-10.xlsx", file.Filename)
	assert.Equal(t, report.XLSXContentType, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(spreadsheet.OverviewSheet, "D12")
	require.NoError(t, err)
	assert.Equal(t, "11", total)
}
