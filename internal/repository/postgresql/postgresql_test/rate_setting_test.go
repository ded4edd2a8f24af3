package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateSettingRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewRateSettingRepository(db)
	companyID, employeeID := newID(t), newID(t)

	_, err := repo.GetByEmployee(ctx, employeeID, companyID)
	assert.ErrorIs(t, err, payroll.ErrRateSettingNotFound)

	first, err := repo.Upsert(ctx, payroll.RateSetting{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		BaseRate:   decimal.NewNullDecimal(decimal.NewFromInt(20)),
	})
	require.NoError(t, err)
	assert.True(t, first.BaseRate.Valid)
	assert.False(t, first.ExtraRate.Valid)

	second, err := repo.Upsert(ctx, payroll.RateSetting{
		EmployeeID:    employeeID,
		CompanyID:     companyID,
		BaseRate:      decimal.NewNullDecimal(decimal.NewFromInt(22)),
		NocturnalRate: decimal.NewNullDecimal(decimal.RequireFromString("30.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	got, err := repo.GetByEmployee(ctx, employeeID, companyID)
	require.NoError(t, err)
	assert.True(t, got.BaseRate.Decimal.Equal(decimal.NewFromInt(22)))
	assert.True(t, got.NocturnalRate.Decimal.Equal(decimal.RequireFromString("30.5")))

	_, err = repo.GetByEmployee(ctx, employeeID, newID(t))
	assert.ErrorIs(t, err, payroll.ErrRateSettingNotFound)
}
