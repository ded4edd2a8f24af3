package payroll

import "context"

// RateSettingRepository defines data access methods for rate settings.
// All methods include companyID parameter to prevent cross-company data access.
type RateSettingRepository interface {
	// GetByEmployee returns ErrRateSettingNotFound when the employee has no stored rates.
	GetByEmployee(ctx context.Context, employeeID string, companyID string) (RateSetting, error)
	Upsert(ctx context.Context, setting RateSetting) (RateSetting, error)
}
