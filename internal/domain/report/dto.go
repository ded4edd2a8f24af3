package report

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WeeklyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	WeekStart  string `json:"week_start"` // YYYY-MM-DD
}

func (r *WeeklyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyReportResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Overview   worktime.WeeklyOverview `json:"overview"`
}

// ExportFile is a rendered report ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
