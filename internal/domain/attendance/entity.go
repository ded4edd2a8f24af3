package attendance

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/shopspring/decimal"
)

type Source string

const (
	SourcePunch  Source = "punch"
	SourceImport Source = "import"
)

// Attendance is one stored punch pair. ClockIn and ClockOut are wall-clock values on Date;
// a ClockOut at or before ClockIn belongs to the next day.
type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	ClockIn    string  // HH:MM
	ClockOut   *string // HH:MM, nil while open
	HourlyRate decimal.NullDecimal
	Source     Source
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// ToRecord converts the stored row into the engine's canonical record.
func (a Attendance) ToRecord() worktime.AttendanceRecord {
	rec := worktime.AttendanceRecord{
		Date:      a.Date.Format(worktime.DateLayout),
		EntryTime: a.ClockIn,
		ExitTime:  a.ClockOut,
	}
	if a.HourlyRate.Valid {
		rate := a.HourlyRate.Decimal
		rec.EmbeddedRate = &rate
	}
	return rec
}
