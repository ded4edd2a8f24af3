package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTxManager(db)
	companyID, employeeID := newID(t), newID(t)

	errBoom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, attendance.Attendance{
			ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
			Date: day(t, "2025-03-10"), ClockIn: "08:00", Source: attendance.SourceImport,
		})
		require.NoError(t, err)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	existing, err := repo.GetByEmployeeAndDate(ctx, employeeID, day(t, "2025-03-10"), companyID)
	require.NoError(t, err)
	assert.Nil(t, existing)
}

func TestTxManager_Commits(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTxManager(db)
	companyID, employeeID := newID(t), newID(t)

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, attendance.Attendance{
			ID: newID(t), EmployeeID: employeeID, CompanyID: companyID,
			Date: day(t, "2025-03-11"), ClockIn: "08:00", Source: attendance.SourceImport,
		})
		return err
	})
	require.NoError(t, err)

	existing, err := repo.GetByEmployeeAndDate(ctx, employeeID, day(t, "2025-03-11"), companyID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, "08:00", existing.ClockIn)
}
