package payroll

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertRateSettingRequest struct {
	EmployeeID    string           `json:"-"`
	BaseRate      *decimal.Decimal `json:"base_rate,omitempty"`
	ExtraRate     *decimal.Decimal `json:"extra_rate,omitempty"`
	NocturnalRate *decimal.Decimal `json:"nocturnal_rate,omitempty"`
}

func (r *UpsertRateSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, worktime.ValidateRateConfig("", r.toConfig())...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpsertRateSettingRequest) toConfig() worktime.RateConfig {
	return worktime.RateConfig{BaseRate: r.BaseRate, ExtraRate: r.ExtraRate, NocturnalRate: r.NocturnalRate}
}

// ToRateSetting builds the entity to store for companyID.
func (r *UpsertRateSettingRequest) ToRateSetting(companyID string) RateSetting {
	return RateSetting{
		EmployeeID:    r.EmployeeID,
		CompanyID:     companyID,
		BaseRate:      ptrToNull(r.BaseRate),
		ExtraRate:     ptrToNull(r.ExtraRate),
		NocturnalRate: ptrToNull(r.NocturnalRate),
	}
}

type RateSettingResponse struct {
	EmployeeID    string           `json:"employee_id"`
	BaseRate      *decimal.Decimal `json:"base_rate"`
	ExtraRate     *decimal.Decimal `json:"extra_rate"`
	NocturnalRate *decimal.Decimal `json:"nocturnal_rate"`
	// Effective rates with the fallback multipliers applied.
	Effective worktime.Rates `json:"effective"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

func NewRateSettingResponse(s RateSetting, effective worktime.Rates) RateSettingResponse {
	resp := RateSettingResponse{
		EmployeeID:    s.EmployeeID,
		BaseRate:      nullToPtr(s.BaseRate),
		ExtraRate:     nullToPtr(s.ExtraRate),
		NocturnalRate: nullToPtr(s.NocturnalRate),
		Effective:     effective,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
