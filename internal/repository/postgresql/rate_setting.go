package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rateSettingRepository struct {
	db *database.DB
}

func NewRateSettingRepository(db *database.DB) payroll.RateSettingRepository {
	return &rateSettingRepository{db: db}
}

// GetByEmployee implements payroll.RateSettingRepository.
func (r *rateSettingRepository) GetByEmployee(ctx context.Context, employeeID string, companyID string) (payroll.RateSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, company_id, base_rate, extra_rate, nocturnal_rate, created_at, updated_at
		FROM rate_settings
		WHERE employee_id = $1 AND company_id = $2
	`

	var s payroll.RateSetting
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&s.EmployeeID, &s.CompanyID, &s.BaseRate, &s.ExtraRate, &s.NocturnalRate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.RateSetting{}, payroll.ErrRateSettingNotFound
		}
		return payroll.RateSetting{}, fmt.Errorf("failed to get rate setting: %w", err)
	}

	return s, nil
}

// Upsert implements payroll.RateSettingRepository.
func (r *rateSettingRepository) Upsert(ctx context.Context, setting payroll.RateSetting) (payroll.RateSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rate_settings (employee_id, company_id, base_rate, extra_rate, nocturnal_rate)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, employee_id) DO UPDATE SET
			base_rate      = EXCLUDED.base_rate,
			extra_rate     = EXCLUDED.extra_rate,
			nocturnal_rate = EXCLUDED.nocturnal_rate,
			updated_at     = NOW()
		RETURNING employee_id, company_id, base_rate, extra_rate, nocturnal_rate, created_at, updated_at
	`

	var s payroll.RateSetting
	err := q.QueryRow(ctx, query,
		setting.EmployeeID, setting.CompanyID, setting.BaseRate, setting.ExtraRate, setting.NocturnalRate,
	).Scan(&s.EmployeeID, &s.CompanyID, &s.BaseRate, &s.ExtraRate, &s.NocturnalRate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return payroll.RateSetting{}, fmt.Errorf("failed to upsert rate setting: %w", err)
	}

	return s, nil
}
