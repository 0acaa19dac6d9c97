package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrOverlappingLeave = errors.New("an overlapping leave request already exists")
)
