package payroll

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/shopspring/decimal"
)

// RateSetting holds the default hourly rates of one employee. Null columns fall back
// to the record-embedded rate and the standard multipliers.
type RateSetting struct {
	EmployeeID    string
	CompanyID     string
	BaseRate      decimal.NullDecimal
	ExtraRate     decimal.NullDecimal
	NocturnalRate decimal.NullDecimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToRateConfig exposes the stored defaults as an engine rate configuration.
func (s RateSetting) ToRateConfig() worktime.RateConfig {
	return worktime.RateConfig{
		BaseRate:      nullToPtr(s.BaseRate),
		ExtraRate:     nullToPtr(s.ExtraRate),
		NocturnalRate: nullToPtr(s.NocturnalRate),
	}
}

func nullToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func ptrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
