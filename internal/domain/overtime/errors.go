package overtime

import "errors"

var (
	ErrRequestNotFound  = errors.New("overtime request not found")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrDuplicateRequest = errors.New("an overtime request for this date already exists")
)
