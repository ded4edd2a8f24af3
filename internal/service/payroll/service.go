package payroll

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/worktime"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

type RateSettingServiceImpl struct {
	payroll.RateSettingRepository
	calculator worktime.Calculator
}

func NewRateSettingService(rateSettingRepo payroll.RateSettingRepository, calculator worktime.Calculator) payroll.RateSettingService {
	return &RateSettingServiceImpl{
		RateSettingRepository: rateSettingRepo,
		calculator:            calculator,
	}
}

// GetRateSetting implements payroll.RateSettingService.
func (s *RateSettingServiceImpl) GetRateSetting(ctx context.Context, employeeID string) (payroll.RateSettingResponse, error) {
	if employeeID == "" {
		return payroll.RateSettingResponse{}, payroll.ErrEmployeeIDRequired
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.RateSettingResponse{}, err
	}
	if !claims.CanAccessEmployee(employeeID) {
		return payroll.RateSettingResponse{}, user.ErrInsufficientPermissions
	}

	setting, err := s.RateSettingRepository.GetByEmployee(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return payroll.RateSettingResponse{}, err
	}

	return payroll.NewRateSettingResponse(setting, s.effectiveRates(setting)), nil
}

// UpsertRateSetting implements payroll.RateSettingService.
func (s *RateSettingServiceImpl) UpsertRateSetting(ctx context.Context, req payroll.UpsertRateSettingRequest) (payroll.RateSettingResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RateSettingResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.RateSettingResponse{}, err
	}
	if !claims.Role.IsManager() {
		return payroll.RateSettingResponse{}, user.ErrManagerAccessRequired
	}

	saved, err := s.RateSettingRepository.Upsert(ctx, req.ToRateSetting(claims.CompanyID))
	if err != nil {
		return payroll.RateSettingResponse{}, err
	}

	slog.Info("Rate setting saved", "company_id", claims.CompanyID, "employee_id", saved.EmployeeID, "user_id", claims.UserID)
	return payroll.NewRateSettingResponse(saved, s.effectiveRates(saved)), nil
}

// ResolveConfig implements payroll.RateSettingService.
func (s *RateSettingServiceImpl) ResolveConfig(ctx context.Context, employeeID string, explicit worktime.RateConfig) (worktime.RateConfig, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return worktime.RateConfig{}, err
	}

	stored, err := s.RateSettingRepository.GetByEmployee(ctx, employeeID, claims.CompanyID)
	if err != nil {
		if errors.Is(err, payroll.ErrRateSettingNotFound) {
			return explicit, nil
		}
		return worktime.RateConfig{}, err
	}

	return explicit.Merge(stored.ToRateConfig()), nil
}

// effectiveRates shows what a record without an embedded rate would be priced at.
func (s *RateSettingServiceImpl) effectiveRates(setting payroll.RateSetting) worktime.Rates {
	return s.calculator.ResolveRates(worktime.AttendanceRecord{}, setting.ToRateConfig())
}
