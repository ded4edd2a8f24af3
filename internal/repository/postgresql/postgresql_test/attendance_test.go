package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestAttendanceRepository_CreateAndClockOut(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	companyID, employeeID := newID(t), newID(t)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:         newID(t),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       day(t, "2025-03-10"),
		ClockIn:    "22:00",
		HourlyRate: decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
		Source:     attendance.SourcePunch,
	})
	require.NoError(t, err)
	assert.Equal(t, "22:00", created.ClockIn)
	assert.True(t, created.IsOpen())
	assert.True(t, created.HourlyRate.Decimal.Equal(decimal.RequireFromString("12.5")))

	_, err = repo.Create(ctx, attendance.Attendance{
		ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
		Date: day(t, "2025-03-10"), ClockIn: "23:00", Source: attendance.SourcePunch,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	open, err := repo.GetOpenSession(ctx, employeeID, companyID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, open.ID)

	closed, err := repo.SetClockOut(ctx, created.ID, companyID, "06:00")
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	assert.Equal(t, "06:00", *closed.ClockOut)

	_, err = repo.SetClockOut(ctx, created.ID, companyID, "07:00")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = repo.SetClockOut(ctx, newID(t), companyID, "07:00")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = repo.GetOpenSession(ctx, employeeID, companyID)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceRepository_CompanyIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	companyID := newID(t)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID: newID(t), EmployeeID: newID(t), CompanyID: companyID,
		Date: day(t, "2025-03-10"), ClockIn: "08:00", Source: attendance.SourceImport,
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, newID(t))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	found, err := repo.GetByEmployeeAndDate(ctx, created.EmployeeID, created.Date, newID(t))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAttendanceRepository_ListAndOpenBefore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	companyID, employeeID := newID(t), newID(t)

	exit := "17:00"
	for _, d := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		_, err := repo.Create(ctx, attendance.Attendance{
			ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
			Date: day(t, d), ClockIn: "08:00", ClockOut: &exit, Source: attendance.SourceImport,
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, attendance.Attendance{
		ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
		Date: day(t, "2025-03-13"), ClockIn: "08:00", Source: attendance.SourcePunch,
	})
	require.NoError(t, err)

	start, end := "2025-03-11", "2025-03-13"
	list, total, err := repo.List(ctx, attendance.AttendanceFilter{
		EmployeeID: &employeeID, StartDate: &start, EndDate: &end, Page: 1, Limit: 2, SortOrder: "asc",
	}, companyID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-03-11", list[0].Date.Format("2006-01-02"))

	stale, err := repo.ListOpenBefore(ctx, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.True(t, stale[0].IsOpen())

	stale, err = repo.ListOpenBefore(ctx, time.Date(2025, 3, 13, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, stale)
}
