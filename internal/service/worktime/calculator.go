package worktime

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
)

// Calculator reconciles punches against planned shifts. It holds no state besides its
// grace period and can be shared between goroutines.
type Calculator struct {
	gracePeriod time.Duration
}

type Option func(*Calculator)

// WithGracePeriod sets how early before the planned start an arrival is still counted.
func WithGracePeriod(d time.Duration) Option {
	return func(c *Calculator) {
		if d >= 0 {
			c.gracePeriod = d
		}
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{gracePeriod: worktime.DefaultGracePeriod}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ worktime.Calculator = (*Calculator)(nil)

func (c *Calculator) GracePeriod() time.Duration {
	return c.gracePeriod
}

// ResolveRates implements worktime.Calculator.
func (c *Calculator) ResolveRates(record worktime.AttendanceRecord, cfg worktime.RateConfig) worktime.Rates {
	return ResolveRates(record, cfg)
}

// ComputeDaily implements worktime.Calculator.
func (c *Calculator) ComputeDaily(record worktime.AttendanceRecord, plan *worktime.ShiftPlan, cfg worktime.RateConfig) (worktime.DailyMetricsResult, error) {
	if strings.TrimSpace(record.EntryTime) == "" || record.IsOpen() {
		return worktime.DailyMetricsResult{}, worktime.ErrIncompleteRecord
	}

	in, err := worktime.ResolveTimePoint(record.Date, record.EntryTime)
	if err != nil {
		return worktime.DailyMetricsResult{}, fmt.Errorf("entry punch: %w", err)
	}
	out, err := worktime.ResolveTimePoint(record.Date, *record.ExitTime)
	if err != nil {
		return worktime.DailyMetricsResult{}, fmt.Errorf("exit punch: %w", err)
	}
	punches := worktime.NewWorkedInterval(in, out)

	var plannedStart, plannedEnd *worktime.TimePoint
	if plan != nil {
		plannedStart, plannedEnd, err = plan.PlannedBounds(record.Date)
		if err != nil {
			return worktime.DailyMetricsResult{}, fmt.Errorf("shift plan: %w", err)
		}
	}

	countedIn := worktime.ClampEarlyArrival(in, plannedStart, c.gracePeriod)
	worked := worktime.Interval{Start: countedIn, End: punches.End}
	nocturnal := worktime.NocturnalWindow(in)

	workedMinutes := worked.Minutes()
	nocturnalMinutes := worktime.OverlapMinutes(worked, nocturnal)
	diurnalMinutes := workedMinutes - nocturnalMinutes

	// Diurnal time before the planned start is dropped, nocturnal time is kept.
	if plannedStart != nil {
		trimEnd := *plannedStart
		if worked.End.Before(trimEnd) {
			trimEnd = worked.End
		}
		diurnalMinutes -= diurnalPart(worktime.Interval{Start: worked.Start, End: trimEnd}, nocturnal)
		diurnalMinutes = max(diurnalMinutes, 0)
	}

	overtimeMinutes := 0
	if plannedEnd != nil {
		otStart := *plannedEnd
		if worked.Start.After(otStart) {
			otStart = worked.Start
		}
		overtimeMinutes = min(diurnalPart(worktime.Interval{Start: otStart, End: worked.End}, nocturnal), diurnalMinutes)
	}
	normalMinutes := diurnalMinutes - overtimeMinutes

	lateMinutes := 0
	if plannedStart != nil {
		lateMinutes = worktime.Interval{Start: *plannedStart, End: countedIn}.Minutes()
	}

	rates := ResolveRates(record, cfg)
	normalHours := toHours(normalMinutes)
	overtimeHours := toHours(overtimeMinutes)
	nocturnalHours := toHours(nocturnalMinutes)

	return worktime.DailyMetricsResult{
		NormalHours:        normalHours,
		OvertimeHours:      overtimeHours,
		NocturnalHours:     nocturnalHours,
		TotalHours:         normalHours + overtimeHours + nocturnalHours,
		NormalMinutes:      normalMinutes,
		OvertimeMinutes:    overtimeMinutes,
		NocturnalMinutes:   nocturnalMinutes,
		WorkedMinutes:      workedMinutes,
		LateArrivalMinutes: lateMinutes,
		Rates:              rates,
		Cost: priceMinutes(rates.BaseRate, normalMinutes).
			Add(priceMinutes(rates.ExtraRate, overtimeMinutes)).
			Add(priceMinutes(rates.NocturnalRate, nocturnalMinutes)),
	}, nil
}

// diurnalPart is the part of iv outside the nocturnal window, in minutes.
func diurnalPart(iv, nocturnal worktime.Interval) int {
	return iv.Minutes() - worktime.OverlapMinutes(iv, nocturnal)
}

func toHours(minutes int) float64 {
	return float64(minutes) / 60
}
