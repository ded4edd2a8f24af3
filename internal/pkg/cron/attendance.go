package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
)

const StalePunchJobName = "flag_stale_open_punches"

// AttendanceJobs reports data-quality problems in stored punches. It never modifies records:
// an open record cannot be metered and only a person can tell when the shift actually ended.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	maxOpen        time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, maxOpen time.Duration, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		maxOpen:        maxOpen,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(StalePunchJobName, time.Hour, j.FlagStaleOpenPunches)
}

// FlagStaleOpenPunches logs every record that has been open for longer than maxOpen.
func (j *AttendanceJobs) FlagStaleOpenPunches(ctx context.Context) error {
	_, err := j.flagStaleOpenPunches(ctx)
	return err
}

func (j *AttendanceJobs) flagStaleOpenPunches(ctx context.Context) (int, error) {
	// Stored punches are wall-clock values in the configured zone.
	now := worktime.NewTimePoint(j.now().In(j.loc))
	cutoff := now.Add(-j.maxOpen)

	stale, err := j.attendanceRepo.ListOpenBefore(ctx, cutoff.Time())
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendances: %w", err)
	}

	for _, att := range stale {
		openedAt, err := worktime.ResolveTimePoint(att.Date.Format(worktime.DateLayout), att.ClockIn)
		if err != nil {
			slog.Warn("Open attendance with unreadable clock in", "attendance_id", att.ID, "clock_in", att.ClockIn)
			continue
		}
		slog.Warn("Stale open attendance",
			"attendance_id", att.ID,
			"company_id", att.CompanyID,
			"employee_id", att.EmployeeID,
			"date", att.Date.Format("2006-01-02"),
			"clock_in", att.ClockIn,
			"open_for", now.Sub(openedAt).Round(time.Minute),
		)
	}

	if len(stale) > 0 {
		slog.Info("Cron: flagged stale open attendances", "count", len(stale), "cutoff", cutoff.String())
	}
	return len(stale), nil
}
