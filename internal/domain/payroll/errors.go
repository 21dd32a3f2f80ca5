package payroll

import "errors"

var (
	ErrInvalidPeriod    = errors.New("invalid payroll period")
	ErrInvalidSettings  = errors.New("invalid payroll settings")
	ErrEmployeeNotFound = errors.New("employee not found")
)
