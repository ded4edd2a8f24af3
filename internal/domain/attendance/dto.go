package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PUNCH DTOs
// ========================================

// ClockInRequest opens a record. Date and Time default to the current UTC wall clock.
type ClockInRequest struct {
	EmployeeID string           `json:"employee_id"`
	Date       *string          `json:"date,omitempty"` // YYYY-MM-DD
	Time       *string          `json:"time,omitempty"` // HH:MM
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if r.Time != nil {
		if _, ok := validator.IsValidTime(*r.Time); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be a valid time in HH:MM format",
			})
		}
	}

	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockOutRequest closes the employee's open record. Time defaults to the current UTC wall clock.
type ClockOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Time       *string `json:"time,omitempty"` // HH:MM
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Time != nil {
		if _, ok := validator.IsValidTime(*r.Time); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be a valid time in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	ClockIn    string           `json:"clock_in"`
	ClockOut   *string          `json:"clock_out,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Source     Source           `json:"source"`
	IsOpen     bool             `json:"is_open"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(worktime.DateLayout),
		ClockIn:    a.ClockIn,
		ClockOut:   a.ClockOut,
		Source:     a.Source,
		IsOpen:     a.IsOpen(),
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
	if a.HourlyRate.Valid {
		rate := a.HourlyRate.Decimal
		resp.HourlyRate = &rate
	}
	return resp
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	OpenOnly   bool    `json:"open_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be one of: asc, desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// ========================================
// IMPORT DTOs
// ========================================

// ImportAttendanceRequest carries upstream rows whose field names may vary, see worktime.NormalizeAttendance.
type ImportAttendanceRequest struct {
	EmployeeID string           `json:"employee_id"`
	Rows       []map[string]any `json:"rows"`
}

func (r *ImportAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "rows must contain at least one row",
		})
	}
	if len(r.Rows) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "rows must not contain more than 1000 rows",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RowError reports why one input row or record was skipped.
type RowError struct {
	Row      int    `json:"row"`
	RecordID string `json:"record_id,omitempty"`
	Message  string `json:"message"`
}

type ImportAttendanceResponse struct {
	Imported []AttendanceResponse `json:"imported"`
	Errors   []RowError           `json:"errors"`
}

// ========================================
// METRICS DTOs
// ========================================

type DailyMetricsRequest struct {
	ID    string              `json:"-"`
	Rates worktime.RateConfig `json:"rates"`
}

func (r *DailyMetricsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	errs = append(errs, worktime.ValidateRateConfig("rates", r.Rates)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyMetricsResponse struct {
	Attendance AttendanceResponse          `json:"attendance"`
	Metrics    worktime.DailyMetricsResult `json:"metrics"`
}

type ListDailyMetricsRequest struct {
	Filter AttendanceFilter    `json:"filter"`
	Rates  worktime.RateConfig `json:"rates"`
}

func (r *ListDailyMetricsRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.Filter.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}
	errs = append(errs, worktime.ValidateRateConfig("rates", r.Rates)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListDailyMetricsResponse struct {
	Items      []DailyMetricsResponse `json:"items"`
	Errors     []RowError             `json:"errors"`
	OpenCount  int                    `json:"open_count"`
	TotalCost  decimal.Decimal        `json:"total_cost"`
	TotalHours float64                `json:"total_hours"`
}
