package worktime

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/shopspring/decimal"
)

// Multipliers applied to the resolved base rate when no explicit rate is configured.
const (
	ExtraRateMultiplier     = "1.5"
	NocturnalRateMultiplier = "1.35"
)

var (
	extraMultiplier     = decimal.RequireFromString(ExtraRateMultiplier)
	nocturnalMultiplier = decimal.RequireFromString(NocturnalRateMultiplier)
	minutesPerHour      = decimal.NewFromInt(60)
)

// ResolveRates picks each hourly rate in order: explicit config, record-embedded
// rate (base only), multiple of the resolved base, zero.
func ResolveRates(record worktime.AttendanceRecord, cfg worktime.RateConfig) worktime.Rates {
	base := decimal.Zero
	switch {
	case cfg.BaseRate != nil:
		base = *cfg.BaseRate
	case record.EmbeddedRate != nil:
		base = *record.EmbeddedRate
	}

	extra := base.Mul(extraMultiplier)
	if cfg.ExtraRate != nil {
		extra = *cfg.ExtraRate
	}

	nocturnal := base.Mul(nocturnalMultiplier)
	if cfg.NocturnalRate != nil {
		nocturnal = *cfg.NocturnalRate
	}

	return worktime.Rates{
		BaseRate:      base,
		ExtraRate:     extra,
		NocturnalRate: nocturnal,
	}
}

// priceMinutes returns rate * minutes / 60.
func priceMinutes(rate decimal.Decimal, minutes int) decimal.Decimal {
	if minutes == 0 || rate.IsZero() {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour)
}
