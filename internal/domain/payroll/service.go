package payroll

import (
	"context"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
)

type RateSettingService interface {
	GetRateSetting(ctx context.Context, employeeID string) (RateSettingResponse, error)
	UpsertRateSetting(ctx context.Context, req UpsertRateSettingRequest) (RateSettingResponse, error)

	// ResolveConfig merges explicit request rates over the employee's stored defaults.
	ResolveConfig(ctx context.Context, employeeID string, explicit worktime.RateConfig) (worktime.RateConfig, error)
}
