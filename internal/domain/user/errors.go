package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrEmailExists           = errors.New("email already registered")
	ErrUserDeactivated       = errors.New("user account is deactivated")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrInvalidRole           = errors.New("invalid role")
)
