package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidTimeRange  = errors.New("check-out must not be before check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrConcurrentUpdate   = errors.New("attendance record was modified by another request")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
