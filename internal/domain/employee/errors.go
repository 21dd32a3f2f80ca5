package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrVersionConflict  = errors.New("employee was modified by another request")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
