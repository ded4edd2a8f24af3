package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Weekly planned overview
	GetWeeklyOverview(w http.ResponseWriter, r *http.Request)
	ExportWeeklyOverview(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetWeeklyOverview handles GET /reports/weekly
func (h *reportHandlerImpl) GetWeeklyOverview(w http.ResponseWriter, r *http.Request) {
	req := parseWeeklyReportRequest(r)

	result, err := h.reportService.GenerateWeeklyOverview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWeeklyOverview handles GET /reports/weekly/export
func (h *reportHandlerImpl) ExportWeeklyOverview(w http.ResponseWriter, r *http.Request) {
	req := parseWeeklyReportRequest(r)

	file, err := h.reportService.ExportWeeklyOverview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

func parseWeeklyReportRequest(r *http.Request) report.WeeklyReportRequest {
	return report.WeeklyReportRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		WeekStart:  r.URL.Query().Get("week_start"),
	}
}
