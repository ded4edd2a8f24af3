package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RateSettingHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type rateSettingHandlerImpl struct {
	rateSettingService payroll.RateSettingService
}

func NewRateSettingHandler(rateSettingService payroll.RateSettingService) RateSettingHandler {
	return &rateSettingHandlerImpl{rateSettingService: rateSettingService}
}

func (h *rateSettingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.rateSettingService.GetRateSetting(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateSettingHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertRateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rateSettingService.UpsertRateSetting(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate setting saved", result)
}
