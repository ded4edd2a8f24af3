package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAttendance(t *testing.T) {
	t.Run("canonical names", func(t *testing.T) {
		rec, err := NormalizeAttendance(map[string]any{
			"date":          "2025-03-10",
			"entry_time":    "8:05",
			"exit_time":     "17:00:00",
			"embedded_rate": 42.5,
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", rec.Date)
		assert.Equal(t, "08:05", rec.EntryTime)
		require.NotNil(t, rec.ExitTime)
		assert.Equal(t, "17:00", *rec.ExitTime)
		require.NotNil(t, rec.EmbeddedRate)
		assert.Equal(t, "42.5", rec.EmbeddedRate.String())
	})

	t.Run("alternate names and timestamps", func(t *testing.T) {
		rec, err := NormalizeAttendance(map[string]any{
			"fecha":   "2025-03-10T00:00:00Z",
			"entrada": "2025-03-10T22:00:00Z",
			"salida":  "2025-03-11 06:00:00",
			"tarifa":  "12,75",
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", rec.Date)
		assert.Equal(t, "22:00", rec.EntryTime)
		assert.Equal(t, "06:00", *rec.ExitTime)
		assert.Equal(t, "12.75", rec.EmbeddedRate.String())
	})

	t.Run("time values", func(t *testing.T) {
		in := time.Date(2025, 3, 10, 7, 45, 0, 0, time.UTC)
		rec, err := NormalizeAttendance(map[string]any{"day": in, "clockIn": in})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", rec.Date)
		assert.Equal(t, "07:45", rec.EntryTime)
		assert.True(t, rec.IsOpen())
	})

	t.Run("blank exit is open", func(t *testing.T) {
		rec, err := NormalizeAttendance(map[string]any{"date": "2025-03-10", "entry_time": "08:00", "exit_time": "  "})
		require.NoError(t, err)
		assert.Nil(t, rec.ExitTime)
	})

	t.Run("unusable rate is ignored", func(t *testing.T) {
		rec, err := NormalizeAttendance(map[string]any{"date": "2025-03-10", "entry_time": "08:00", "rate": "n/a"})
		require.NoError(t, err)
		assert.Nil(t, rec.EmbeddedRate)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NormalizeAttendance(map[string]any{"entry_time": "08:00"})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = NormalizeAttendance(map[string]any{"date": "10/03/2025", "entry_time": "08:00"})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = NormalizeAttendance(map[string]any{"date": "2025-03-10"})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)

		_, err = NormalizeAttendance(map[string]any{"date": "2025-03-10", "entry_time": "08:00", "exit_time": "late"})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestNormalizeShiftPlan(t *testing.T) {
	t.Run("explicit window with lunch", func(t *testing.T) {
		plan, err := NormalizeShiftPlan(map[string]any{
			"date":           "2025-03-10",
			"start_time":     "08:00",
			"end_time":       "17:00",
			"overtime_hours": "1.5",
			"lunch":          map[string]any{"start": "12:00", "end": "13:00"},
		})
		require.NoError(t, err)
		assert.True(t, plan.HasWindow())
		require.NotNil(t, plan.RecordedOvertimeHours)
		assert.Equal(t, 1.5, *plan.RecordedOvertimeHours)
		assert.Equal(t, &Lunch{Start: "12:00", End: "13:00"}, plan.Lunch)
	})

	t.Run("slots from decoded json", func(t *testing.T) {
		plan, err := NormalizeShiftPlan(map[string]any{
			"fecha":   "2025-03-10",
			"franjas": []any{16.0, 17.0, 18.0, 19.0},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{16, 17, 18, 19}, plan.Slots.Indices())
		assert.False(t, plan.HasWindow())
	})

	t.Run("slots from a csv cell", func(t *testing.T) {
		plan, err := NormalizeShiftPlan(map[string]any{"date": "2025-03-10", "slots": "16, 17,18"})
		require.NoError(t, err)
		assert.Equal(t, 3, plan.Slots.Count())
	})

	t.Run("zero overtime is dropped", func(t *testing.T) {
		plan, err := NormalizeShiftPlan(map[string]any{"date": "2025-03-10", "overtime": 0})
		require.NoError(t, err)
		assert.Nil(t, plan.RecordedOvertimeHours)
	})

	t.Run("slot out of range", func(t *testing.T) {
		_, err := NormalizeShiftPlan(map[string]any{"date": "2025-03-10", "slots": []int{12, 60}})
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("fractional slot index", func(t *testing.T) {
		_, err := NormalizeShiftPlan(map[string]any{"date": "2025-03-10", "slots": []any{16.0, 16.7}})
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("bad start", func(t *testing.T) {
		_, err := NormalizeShiftPlan(map[string]any{"date": "2025-03-10", "start": "morning"})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestCollapsePunches(t *testing.T) {
	at := func(clock string) time.Time {
		p, err := ResolveTimePoint("2025-03-10", clock)
		require.NoError(t, err)
		return p.Time()
	}

	t.Run("first and last stamp", func(t *testing.T) {
		rec, err := CollapsePunches("2025-03-10", []time.Time{at("12:01"), at("07:58"), at("17:03"), at("13:00")})
		require.NoError(t, err)
		assert.Equal(t, "07:58", rec.EntryTime)
		assert.Equal(t, "17:03", *rec.ExitTime)
	})

	t.Run("single stamp is open", func(t *testing.T) {
		rec, err := CollapsePunches("2025-03-10", []time.Time{at("07:58")})
		require.NoError(t, err)
		assert.True(t, rec.IsOpen())
	})

	t.Run("no stamps", func(t *testing.T) {
		_, err := CollapsePunches("2025-03-10", nil)
		assert.ErrorIs(t, err, ErrIncompleteRecord)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		stamps := []time.Time{at("17:00"), at("08:00")}
		_, err := CollapsePunches("2025-03-10", stamps)
		require.NoError(t, err)
		assert.Equal(t, "17:00", stamps[0].Format(ClockLayout))
	})
}
