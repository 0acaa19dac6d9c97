package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - full access
	RoleManager  Role = "manager"  // Division head - can approve requests
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Phone        *string
	PasswordHash *string
	Role         Role
	DivisionID   *string
	HireDate     *time.Time

	OAuthProvider   *string
	OAuthProviderID *string

	// Users are never hard-deleted, only deactivated.
	IsActive      bool
	DeactivatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for responses
	DivisionName *string
}

// IsAdmin checks if user is an HR admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is a manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can act on approval steps
func (u *User) CanApprove() bool {
	return u.IsManager()
}
