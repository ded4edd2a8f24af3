package worktime

// Calculator is the worked-time reconciliation engine. Implementations are pure:
// no I/O, no shared mutable state, safe to call concurrently.
type Calculator interface {
	// ComputeDaily splits one closed punch pair into normal, overtime and nocturnal hours and prices it.
	ComputeDaily(record AttendanceRecord, plan *ShiftPlan, cfg RateConfig) (DailyMetricsResult, error)

	// ComputeWeekly rebuilds the planned blocks of the seven days starting at weekStart.
	ComputeWeekly(weekStart string, plans []ShiftPlan) (WeeklyOverview, error)

	// ResolveRates picks base, overtime and nocturnal hourly rates for a record.
	ResolveRates(record AttendanceRecord, cfg RateConfig) Rates
}
