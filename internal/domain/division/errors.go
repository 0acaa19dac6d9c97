package division

import "errors"

var (
	ErrDivisionNotFound    = errors.New("division not found")
	ErrCodeExists          = errors.New("division code already exists")
	ErrCircularReference   = errors.New("division cannot be its own ancestor")
	ErrMaxDepthExceeded    = errors.New("maximum hierarchy depth exceeded")
	ErrHasActiveChildren   = errors.New("division still has active sub-divisions")
	ErrHasActiveEmployees  = errors.New("division still has active employees")
	ErrParentNotFound      = errors.New("parent division not found")
	ErrParentDeactivated   = errors.New("parent division is deactivated")
)
