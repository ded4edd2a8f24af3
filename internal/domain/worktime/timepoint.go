package worktime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// DefaultGracePeriod is how far before the planned start an early arrival is still counted.
	DefaultGracePeriod = 20 * time.Minute

	// Nocturnal window: 19:00 on the record's day to 06:00 on the next day.
	NocturnalStartHour = 19
	NocturnalEndHour   = 6
)

// TimePoint is an instant resolved from a calendar day and a wall-clock value.
// All arithmetic is plain wall-clock arithmetic in UTC; no DST correction is applied.
type TimePoint struct {
	t time.Time
}

// NewTimePoint keeps the wall clock of t and drops its location.
func NewTimePoint(t time.Time) TimePoint {
	return TimePoint{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func (p TimePoint) Time() time.Time               { return p.t }
func (p TimePoint) IsZero() bool                  { return p.t.IsZero() }
func (p TimePoint) Before(o TimePoint) bool       { return p.t.Before(o.t) }
func (p TimePoint) After(o TimePoint) bool        { return p.t.After(o.t) }
func (p TimePoint) Equal(o TimePoint) bool        { return p.t.Equal(o.t) }
func (p TimePoint) Sub(o TimePoint) time.Duration { return p.t.Sub(o.t) }
func (p TimePoint) Add(d time.Duration) TimePoint { return TimePoint{t: p.t.Add(d)} }
func (p TimePoint) AddDays(n int) TimePoint       { return TimePoint{t: p.t.AddDate(0, 0, n)} }
func (p TimePoint) Clock() string                 { return p.t.Format(ClockLayout) }
func (p TimePoint) Date() string                  { return p.t.Format(DateLayout) }
func (p TimePoint) String() string                { return p.t.Format("2006-01-02 15:04") }

// StartOfDay returns midnight of the point's calendar day.
func (p TimePoint) StartOfDay() TimePoint {
	return TimePoint{t: time.Date(p.t.Year(), p.t.Month(), p.t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

// ParseClock parses "HH:MM" (or "H:MM", or "HH:MM:00") into minutes past midnight.
func ParseClock(hhmm string) (int, error) {
	s := strings.TrimSpace(hhmm)
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		if parts[2] != "00" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, hhmm)
		}
		parts = parts[:2]
	}
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, hhmm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, hhmm)
	}
	return h*60 + m, nil
}

// ResolveTimePoint anchors an "HH:MM" wall-clock value to a calendar day.
func ResolveTimePoint(date, hhmm string) (TimePoint, error) {
	d, err := ParseDate(date)
	if err != nil {
		return TimePoint{}, err
	}
	mins, err := ParseClock(hhmm)
	if err != nil {
		return TimePoint{}, err
	}
	return TimePoint{t: d.Add(time.Duration(mins) * time.Minute)}, nil
}

// ApplyCrossover moves out one calendar day forward when it does not come after in.
// Spans longer than 24 hours cannot be expressed and must be rejected by the caller.
func ApplyCrossover(in, out TimePoint) TimePoint {
	if !out.After(in) {
		return out.AddDays(1)
	}
	return out
}

// Interval is a [Start, End) pair of time points.
type Interval struct {
	Start TimePoint
	End   TimePoint
}

// NewWorkedInterval builds the interval between two punches, applying the crossover rule.
func NewWorkedInterval(in, out TimePoint) Interval {
	return Interval{Start: in, End: ApplyCrossover(in, out)}
}

func (i Interval) Duration() time.Duration { return i.End.Sub(i.Start) }

// Minutes is the interval length in whole minutes; degenerate intervals yield zero.
func (i Interval) Minutes() int {
	if !i.End.After(i.Start) {
		return 0
	}
	return int(i.Duration() / time.Minute)
}

// OverlapMinutes returns the minutes shared by a and b. Abutting intervals share nothing.
func OverlapMinutes(a, b Interval) int {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return Interval{Start: start, End: end}.Minutes()
}

// ClampEarlyArrival limits the counted start to plannedStart minus grace.
// The real punch is untouched; only the value used for metrics moves.
func ClampEarlyArrival(realIn TimePoint, plannedStart *TimePoint, grace time.Duration) TimePoint {
	if plannedStart == nil {
		return realIn
	}
	earliest := plannedStart.Add(-grace)
	if realIn.Before(earliest) {
		return earliest
	}
	return realIn
}

// NocturnalWindow returns 19:00 of day to 06:00 of the following day.
func NocturnalWindow(day TimePoint) Interval {
	midnight := day.StartOfDay()
	return Interval{
		Start: midnight.Add(NocturnalStartHour * time.Hour),
		End:   midnight.AddDays(1).Add(NocturnalEndHour * time.Hour),
	}
}
