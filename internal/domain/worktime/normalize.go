package worktime

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted upstream field names, canonical name first.
var (
	dateAliases     = []string{"date", "fecha", "dia", "day"}
	entryAliases    = []string{"entry_time", "entryTime", "entrada", "hora_entrada", "clock_in", "clockIn"}
	exitAliases     = []string{"exit_time", "exitTime", "salida", "hora_salida", "clock_out", "clockOut"}
	rateAliases     = []string{"embedded_rate", "embeddedRate", "hourly_rate", "tarifa", "rate"}
	startAliases    = []string{"start", "start_time", "inicio", "hora_inicio"}
	endAliases      = []string{"end", "end_time", "fin", "hora_fin"}
	slotAliases     = []string{"slots", "occupied_slots", "occupiedSlots", "franjas"}
	overtimeAliases = []string{"recorded_overtime_hours", "overtime_hours", "horas_extra", "overtime"}
	lunchAliases    = []string{"lunch", "almuerzo"}
)

// timestampLayouts are full date-times an upstream may send where a clock value is expected.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func lookup(raw map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// normalizeDate accepts a plain date or a full timestamp and returns YYYY-MM-DD.
func normalizeDate(v any) (string, error) {
	if t, ok := v.(time.Time); ok {
		return t.Format(DateLayout), nil
	}
	s := asString(v)
	if _, err := ParseDate(s); err == nil {
		return s, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// normalizeClock accepts HH:MM, HH:MM:00 or a full timestamp and returns HH:MM.
func normalizeClock(v any) (string, error) {
	if t, ok := v.(time.Time); ok {
		return t.Format(ClockLayout), nil
	}
	s := asString(v)
	if mins, err := ParseClock(s); err == nil {
		return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

func normalizeDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case decimal.Decimal:
		return t, nil
	default:
		return decimal.NewFromString(strings.ReplaceAll(asString(v), ",", "."))
	}
}

func normalizeFloat(v any) (float64, error) {
	d, err := normalizeDecimal(v)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// NormalizeAttendance maps a loosely shaped upstream row onto the canonical AttendanceRecord.
func NormalizeAttendance(raw map[string]any) (AttendanceRecord, error) {
	var rec AttendanceRecord

	dateVal, ok := lookup(raw, dateAliases)
	if !ok {
		return AttendanceRecord{}, fmt.Errorf("%w: date is missing", ErrInvalidDate)
	}
	date, err := normalizeDate(dateVal)
	if err != nil {
		return AttendanceRecord{}, err
	}
	rec.Date = date

	entryVal, ok := lookup(raw, entryAliases)
	if !ok {
		return AttendanceRecord{}, fmt.Errorf("%w: entry time is missing", ErrInvalidTimeFormat)
	}
	if rec.EntryTime, err = normalizeClock(entryVal); err != nil {
		return AttendanceRecord{}, fmt.Errorf("entry time: %w", err)
	}

	if exitVal, ok := lookup(raw, exitAliases); ok {
		exit, err := normalizeClock(exitVal)
		if err != nil {
			return AttendanceRecord{}, fmt.Errorf("exit time: %w", err)
		}
		rec.ExitTime = &exit
	}

	if rateVal, ok := lookup(raw, rateAliases); ok {
		rate, err := normalizeDecimal(rateVal)
		if err == nil && !rate.IsNegative() {
			rec.EmbeddedRate = &rate
		}
	}

	return rec, nil
}

// NormalizeShiftPlan maps a loosely shaped upstream plan onto the canonical ShiftPlan.
func NormalizeShiftPlan(raw map[string]any) (ShiftPlan, error) {
	var plan ShiftPlan

	dateVal, ok := lookup(raw, dateAliases)
	if !ok {
		return ShiftPlan{}, fmt.Errorf("%w: date is missing", ErrInvalidDate)
	}
	date, err := normalizeDate(dateVal)
	if err != nil {
		return ShiftPlan{}, err
	}
	plan.Date = date

	if v, ok := lookup(raw, startAliases); ok {
		s, err := normalizeClock(v)
		if err != nil {
			return ShiftPlan{}, fmt.Errorf("start: %w", err)
		}
		plan.Start = &s
	}
	if v, ok := lookup(raw, endAliases); ok {
		e, err := normalizeClock(v)
		if err != nil {
			return ShiftPlan{}, fmt.Errorf("end: %w", err)
		}
		plan.End = &e
	}

	if v, ok := lookup(raw, slotAliases); ok {
		slots, err := normalizeSlots(v)
		if err != nil {
			return ShiftPlan{}, err
		}
		plan.Slots = slots
	}

	if v, ok := lookup(raw, overtimeAliases); ok {
		hours, err := normalizeFloat(v)
		if err == nil && hours > 0 {
			plan.RecordedOvertimeHours = &hours
		}
	}

	if v, ok := lookup(raw, lunchAliases); ok {
		if m, isMap := v.(map[string]any); isMap {
			start, sok := lookup(m, []string{"start", "inicio"})
			end, eok := lookup(m, []string{"end", "fin"})
			if sok && eok {
				ls, err1 := normalizeClock(start)
				le, err2 := normalizeClock(end)
				if err1 == nil && err2 == nil {
					plan.Lunch = &Lunch{Start: ls, End: le}
				}
			}
		}
	}

	return plan, nil
}

func normalizeSlots(v any) (SlotBitmap, error) {
	var indices []int
	switch t := v.(type) {
	case []int:
		indices = t
	case []any:
		for _, item := range t {
			f, err := normalizeFloat(item)
			if err != nil || f != math.Trunc(f) {
				return 0, fmt.Errorf("%w: %v", ErrInvalidSlot, item)
			}
			indices = append(indices, int(f))
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			i, err := strconv.Atoi(part)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, part)
			}
			indices = append(indices, i)
		}
	default:
		return 0, fmt.Errorf("%w: unsupported slots value %T", ErrInvalidSlot, v)
	}
	return NewSlotBitmap(indices...)
}

// CollapsePunches turns raw terminal timestamps of one day into a punch pair:
// the earliest stamp is the entry and the latest is the exit. A single stamp is an open record.
func CollapsePunches(date string, stamps []time.Time) (AttendanceRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return AttendanceRecord{}, err
	}
	if len(stamps) == 0 {
		return AttendanceRecord{}, fmt.Errorf("%w: no punches on %s", ErrIncompleteRecord, date)
	}

	sorted := make([]time.Time, len(stamps))
	copy(sorted, stamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	rec := AttendanceRecord{
		Date:      date,
		EntryTime: sorted[0].Format(ClockLayout),
	}
	if len(sorted) > 1 {
		exit := sorted[len(sorted)-1].Format(ClockLayout)
		rec.ExitTime = &exit
	}
	return rec, nil
}
