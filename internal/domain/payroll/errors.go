package payroll

import "errors"

var (
	ErrRateSettingNotFound = errors.New("rate setting not found")
	ErrEmployeeIDRequired  = errors.New("employee ID is required")
)
