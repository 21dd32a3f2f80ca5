package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDays                  = errors.New("leave days must not be negative")
	ErrBalanceNotFound              = errors.New("leave balance not found")
	ErrForbidden                    = errors.New("not allowed to access this leave request")
)

// UnknownLeaveTypeError reports a leave-type key with no balance entry.
type UnknownLeaveTypeError struct {
	Key string
}

func (e *UnknownLeaveTypeError) Error() string {
	return fmt.Sprintf("unrecognized leave type %q", e.Key)
}

// IsUnknownLeaveType reports whether err wraps an UnknownLeaveTypeError.
func IsUnknownLeaveType(err error) bool {
	var target *UnknownLeaveTypeError
	return errors.As(err, &target)
}
