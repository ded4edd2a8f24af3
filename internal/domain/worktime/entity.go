package worktime

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord is one canonical punch pair. ExitTime is nil while the record is open.
type AttendanceRecord struct {
	Date         string           `json:"date"`                    // YYYY-MM-DD
	EntryTime    string           `json:"entry_time"`              // HH:MM
	ExitTime     *string          `json:"exit_time,omitempty"`     // HH:MM
	EmbeddedRate *decimal.Decimal `json:"embedded_rate,omitempty"` // hourly base rate carried by the record
}

func (r AttendanceRecord) IsOpen() bool {
	return r.ExitTime == nil || *r.ExitTime == ""
}

// Lunch is display metadata attached to a planned day.
type Lunch struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftPlan is the planned window for one employee and date, either explicit or as slots.
type ShiftPlan struct {
	Date                  string     `json:"date"`
	Start                 *string    `json:"start,omitempty"`
	End                   *string    `json:"end,omitempty"`
	Slots                 SlotBitmap `json:"slots,omitempty"`
	RecordedOvertimeHours *float64   `json:"recorded_overtime_hours,omitempty"`
	Lunch                 *Lunch     `json:"lunch,omitempty"`
}

func (p ShiftPlan) HasWindow() bool {
	return p.Start != nil && *p.Start != "" && p.End != nil && *p.End != ""
}

func (p ShiftPlan) HasSlots() bool {
	return !p.Slots.IsEmpty()
}

// PlannedBounds resolves the planned start and end on date. A complete explicit window wins,
// then the slot envelope, then whichever single explicit bound is set. A nil bound means the
// plan does not define it.
func (p ShiftPlan) PlannedBounds(date string) (start, end *TimePoint, err error) {
	if !p.HasWindow() && p.HasSlots() {
		return p.slotBounds(date)
	}

	if p.Start != nil && *p.Start != "" {
		s, err := ResolveTimePoint(date, *p.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("planned start: %w", err)
		}
		start = &s
	}
	if p.End != nil && *p.End != "" {
		e, err := ResolveTimePoint(date, *p.End)
		if err != nil {
			return nil, nil, fmt.Errorf("planned end: %w", err)
		}
		if start != nil {
			e = ApplyCrossover(*start, e)
		}
		end = &e
	}
	return start, end, nil
}

// SlotInterval is the envelope from the first occupied slot to the end of the last one.
func (p ShiftPlan) SlotInterval(date string) (Interval, bool, error) {
	first, last, ok := p.Slots.Envelope()
	if !ok {
		return Interval{}, false, nil
	}
	d, err := ParseDate(date)
	if err != nil {
		return Interval{}, false, err
	}
	midnight := NewTimePoint(d)
	return Interval{
		Start: midnight.Add(time.Duration(first) * SlotDuration),
		End:   midnight.Add(time.Duration(last) * SlotDuration),
	}, true, nil
}

func (p ShiftPlan) slotBounds(date string) (start, end *TimePoint, err error) {
	iv, ok, err := p.SlotInterval(date)
	if err != nil || !ok {
		return nil, nil, err
	}
	return &iv.Start, &iv.End, nil
}

const (
	SlotsPerDay  = 48
	SlotDuration = 30 * time.Minute
)

// SlotBitmap marks occupied half-hour slots; bit i is the slot starting i*30 minutes past midnight.
type SlotBitmap uint64

// NewSlotBitmap builds a bitmap from occupied slot indices.
func NewSlotBitmap(indices ...int) (SlotBitmap, error) {
	var b SlotBitmap
	for _, i := range indices {
		if i < 0 || i >= SlotsPerDay {
			return 0, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
		}
		b |= 1 << uint(i)
	}
	return b, nil
}

func (b SlotBitmap) Has(i int) bool {
	return i >= 0 && i < SlotsPerDay && b&(1<<uint(i)) != 0
}

func (b SlotBitmap) IsEmpty() bool { return b == 0 }

func (b SlotBitmap) Count() int { return bits.OnesCount64(uint64(b)) }

// Indices lists the occupied slots in ascending order.
func (b SlotBitmap) Indices() []int {
	out := make([]int, 0, b.Count())
	for i := 0; i < SlotsPerDay; i++ {
		if b.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Envelope returns the first occupied slot and one past the last one.
// Unoccupied slots in between are not reported.
func (b SlotBitmap) Envelope() (first, end int, ok bool) {
	if b.IsEmpty() {
		return 0, 0, false
	}
	first = bits.TrailingZeros64(uint64(b))
	end = 64 - bits.LeadingZeros64(uint64(b))
	return first, end, true
}

// MarshalJSON renders the bitmap as its list of occupied slot indices.
func (b SlotBitmap) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Indices())
}

func (b *SlotBitmap) UnmarshalJSON(data []byte) error {
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return fmt.Errorf("%w: slots must be a list of integers", ErrInvalidSlot)
	}
	bm, err := NewSlotBitmap(indices...)
	if err != nil {
		return err
	}
	*b = bm
	return nil
}

// OccupiedHours is half an hour per occupied slot.
func (b SlotBitmap) OccupiedHours() float64 {
	return float64(b.Count()) * SlotDuration.Hours()
}

// RateConfig overrides hourly rates for one computation. Nil fields fall back.
type RateConfig struct {
	BaseRate      *decimal.Decimal `json:"base_rate,omitempty"`
	ExtraRate     *decimal.Decimal `json:"extra_rate,omitempty"`
	NocturnalRate *decimal.Decimal `json:"nocturnal_rate,omitempty"`
}

// Merge fills the nil fields of c from fallback.
func (c RateConfig) Merge(fallback RateConfig) RateConfig {
	if c.BaseRate == nil {
		c.BaseRate = fallback.BaseRate
	}
	if c.ExtraRate == nil {
		c.ExtraRate = fallback.ExtraRate
	}
	if c.NocturnalRate == nil {
		c.NocturnalRate = fallback.NocturnalRate
	}
	return c
}

// Rates are the resolved hourly rates used to price a day.
type Rates struct {
	BaseRate      decimal.Decimal `json:"base_rate"`
	ExtraRate     decimal.Decimal `json:"extra_rate"`
	NocturnalRate decimal.Decimal `json:"nocturnal_rate"`
}

// DailyMetricsResult is the reconciliation of one attendance record.
type DailyMetricsResult struct {
	NormalHours        float64         `json:"normal_hours"`
	OvertimeHours      float64         `json:"overtime_hours"`
	NocturnalHours     float64         `json:"nocturnal_hours"`
	TotalHours         float64         `json:"total_hours"`
	NormalMinutes      int             `json:"normal_minutes"`
	OvertimeMinutes    int             `json:"overtime_minutes"`
	NocturnalMinutes   int             `json:"nocturnal_minutes"`
	WorkedMinutes      int             `json:"worked_minutes"`
	LateArrivalMinutes int             `json:"late_arrival_minutes"`
	Rates              Rates           `json:"rates"`
	Cost               decimal.Decimal `json:"cost"`
}

type BlockKind string

const (
	BlockKindBase     BlockKind = "base"
	BlockKindOvertime BlockKind = "overtime"
)

// Block is one contiguous stretch of a planned day.
type Block struct {
	Start         string    `json:"start"`
	End           string    `json:"end"`
	EndsNextDay   bool      `json:"ends_next_day"`
	DurationHours float64   `json:"duration_hours"`
	Kind          BlockKind `json:"kind"`
}

// DayOverview is one day of a WeeklyOverview.
type DayOverview struct {
	Date          string  `json:"date"`
	BaseHours     float64 `json:"base_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	TotalHours    float64 `json:"total_hours"`
	Lunch         *Lunch  `json:"lunch,omitempty"`
	Blocks        []Block `json:"blocks"`
}

// WeeklyOverview aggregates seven consecutive planned days.
type WeeklyOverview struct {
	WeekStart   string         `json:"week_start"`
	Days        [7]DayOverview `json:"days"`
	WeeklyBase  float64        `json:"weekly_base"`
	WeeklyExtra float64        `json:"weekly_extra"`
	WeeklyTotal float64        `json:"weekly_total"`
}
