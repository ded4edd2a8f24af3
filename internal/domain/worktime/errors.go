package worktime

import "errors"

// Worktime domain errors
var (
	// Input errors
	ErrInvalidDate       = errors.New("invalid date: expected YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time: expected HH:MM between 00:00 and 23:59")
	ErrIncompleteRecord  = errors.New("attendance record is incomplete: entry and exit punches are required")
	ErrInvalidSlot       = errors.New("slot index must be between 0 and 47")
)

// IsInputError reports whether err comes from malformed engine input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrIncompleteRecord) ||
		errors.Is(err, ErrInvalidSlot)
}
