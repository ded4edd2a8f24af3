package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftPlanRepository_UpsertReplacesPlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftPlanRepository(db)
	companyID, employeeID := newID(t), newID(t)

	start, end := "08:00", "17:00"
	first, err := repo.Upsert(ctx, schedule.ShiftPlan{
		ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
		Date: day(t, "2025-03-10"), StartTime: &start, EndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", *first.StartTime)

	slots, err := worktime.NewSlotBitmap(16, 17, 18, 19)
	require.NoError(t, err)
	ot := 1.5
	second, err := repo.Upsert(ctx, schedule.ShiftPlan{
		ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
		Date: day(t, "2025-03-10"), Slots: int64(slots), OvertimeHours: &ot,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, second.StartTime)
	assert.Equal(t, []int{16, 17, 18, 19}, second.ToPlan().Slots.Indices())
	require.NotNil(t, second.OvertimeHours)
	assert.Equal(t, 1.5, *second.OvertimeHours)

	plans, err := repo.ListByEmployee(ctx, employeeID, day(t, "2025-03-10"), day(t, "2025-03-16"), companyID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	require.NoError(t, repo.Delete(ctx, employeeID, day(t, "2025-03-10"), companyID))
	assert.ErrorIs(t, repo.Delete(ctx, employeeID, day(t, "2025-03-10"), companyID), schedule.ErrShiftPlanNotFound)

	missing, err := repo.GetByEmployeeAndDate(ctx, employeeID, day(t, "2025-03-10"), companyID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRateSettingRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewRateSettingRepository(db)
	companyID, employeeID := newID(t), newID(t)

	_, err := repo.GetByEmployee(ctx, employeeID, companyID)
	assert.ErrorIs(t, err, payroll.ErrRateSettingNotFound)

	_, err = repo.Upsert(ctx, payroll.RateSetting{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		BaseRate:   decimal.NewNullDecimal(decimal.NewFromInt(20)),
	})
	require.NoError(t, err)

	got, err := repo.GetByEmployee(ctx, employeeID, companyID)
	require.NoError(t, err)
	assert.True(t, got.BaseRate.Valid)
	assert.True(t, got.BaseRate.Decimal.Equal(decimal.NewFromInt(20)))
	assert.False(t, got.ExtraRate.Valid)
}
