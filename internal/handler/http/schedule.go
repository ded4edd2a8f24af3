package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftPlanHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type shiftPlanHandlerImpl struct {
	shiftPlanService schedule.ShiftPlanService
}

func NewShiftPlanHandler(shiftPlanService schedule.ShiftPlanService) ShiftPlanHandler {
	return &shiftPlanHandlerImpl{shiftPlanService: shiftPlanService}
}

// Upsert handles PUT /shift-plans
func (h *shiftPlanHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertShiftPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftPlanService.UpsertShiftPlan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift plan saved", result)
}

// Get handles GET /shift-plans/{employeeID}/{date}
func (h *shiftPlanHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, date := planKey(r)

	result, err := h.shiftPlanService.GetShiftPlan(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /shift-plans?employee_id=&start_date=&end_date=
func (h *shiftPlanHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := schedule.ShiftPlanFilter{
		EmployeeID: query.Get("employee_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}

	result, err := h.shiftPlanService.ListShiftPlans(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete handles DELETE /shift-plans/{employeeID}/{date}
func (h *shiftPlanHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID, date := planKey(r)

	if err := h.shiftPlanService.DeleteShiftPlan(r.Context(), employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift plan deleted", nil)
}

func planKey(r *http.Request) (employeeID, date string) {
	return chi.URLParam(r, "employeeID"), chi.URLParam(r, "date")
}
