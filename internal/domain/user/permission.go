package user

type Permission string

const (
	// Self management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Leave & overtime requests
	PermissionRequestCreate  Permission = "request.create"
	PermissionRequestViewOwn Permission = "request.view_own"
	PermissionRequestViewAll Permission = "request.view_all"
	PermissionRequestDecide  Permission = "request.decide"

	// Divisions
	PermissionDivisionView   Permission = "division.view"
	PermissionDivisionManage Permission = "division.manage"

	// Users
	PermissionUserManage Permission = "user.manage"

	// Dashboard & reports
	PermissionDashboardView  Permission = "dashboard.view"
	PermissionReportExport   Permission = "report.export"
	PermissionDashboardScope Permission = "dashboard.view_all"
)

// RolePermissions maps roles to their permissions. Authorization is an
// explicit capability check per action, evaluated before any state mutation.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
		PermissionRequestViewAll,
		PermissionRequestDecide,
		PermissionDivisionView,
		PermissionDivisionManage,
		PermissionUserManage,
		PermissionDashboardView,
		PermissionDashboardScope,
		PermissionReportExport,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
		PermissionRequestViewAll,
		PermissionRequestDecide,
		PermissionDivisionView,
		PermissionDashboardView,
		PermissionReportExport,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionRequestCreate,
		PermissionRequestViewOwn,
		PermissionDivisionView,
		PermissionDashboardView,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
