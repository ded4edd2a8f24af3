package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

// WorktimeHandler exposes the reconciliation engine without touching storage.
type WorktimeHandler interface {
	ComputeDaily(w http.ResponseWriter, r *http.Request)
	ComputeWeekly(w http.ResponseWriter, r *http.Request)
	Normalize(w http.ResponseWriter, r *http.Request)
}

type worktimeHandlerImpl struct {
	calculator worktime.Calculator
}

func NewWorktimeHandler(calculator worktime.Calculator) WorktimeHandler {
	return &worktimeHandlerImpl{calculator: calculator}
}

// ComputeDaily handles POST /worktime/daily
func (h *worktimeHandlerImpl) ComputeDaily(w http.ResponseWriter, r *http.Request) {
	var req worktime.DailyMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.calculator.ComputeDaily(req.Record, req.Plan, req.Rates)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputeWeekly handles POST /worktime/weekly
func (h *worktimeHandlerImpl) ComputeWeekly(w http.ResponseWriter, r *http.Request) {
	var req worktime.WeeklyOverviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.calculator.ComputeWeekly(req.WeekStart, req.Plans)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Normalize handles POST /worktime/normalize
func (h *worktimeHandlerImpl) Normalize(w http.ResponseWriter, r *http.Request) {
	var req worktime.NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var (
		result any
		err    error
	)
	switch req.Kind {
	case "shift_plan":
		result, err = worktime.NormalizeShiftPlan(req.Row)
	default:
		result, err = worktime.NormalizeAttendance(req.Row)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
