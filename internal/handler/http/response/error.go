package response

import (
	"errors"
	"net/http"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hrms-backend-go/internal/domain/auth"
	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/leave"
	"github.com/kantorkita/hrms-backend-go/internal/domain/overtime"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	"github.com/kantorkita/hrms-backend-go/internal/service/export"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthUserNotFound):
		Unauthorized(w, "No account is linked to this Google identity")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserDeactivated):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInvalidRole):
		UnprocessableEntity(w, "INVALID_ROLE", "Role must be admin, manager or employee")

	// Division domain errors
	case errors.Is(err, division.ErrDivisionNotFound):
		NotFound(w, "Division not found")
	case errors.Is(err, division.ErrCodeExists):
		Conflict(w, "Division code already exists")
	case errors.Is(err, division.ErrCircularReference):
		UnprocessableEntity(w, "CIRCULAR_REFERENCE", "Division cannot be its own ancestor")
	case errors.Is(err, division.ErrMaxDepthExceeded):
		UnprocessableEntity(w, "MAX_DEPTH_EXCEEDED", "Division hierarchy depth limit reached")
	case errors.Is(err, division.ErrHasActiveChildren):
		Conflict(w, "Division still has active child divisions")
	case errors.Is(err, division.ErrHasActiveEmployees):
		Conflict(w, "Division still has active employees")
	case errors.Is(err, division.ErrParentNotFound):
		UnprocessableEntity(w, "PARENT_NOT_FOUND", "Parent division does not exist")
	case errors.Is(err, division.ErrParentDeactivated):
		UnprocessableEntity(w, "PARENT_DEACTIVATED", "Parent division is deactivated")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		UnprocessableEntity(w, "INVALID_DATE_RANGE", "End date must not be before start date")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrInvalidTimeRange):
		UnprocessableEntity(w, "INVALID_TIME_RANGE", "End time must be after start time")
	case errors.Is(err, overtime.ErrDuplicateRequest):
		Conflict(w, "An overtime request already exists for this date")

	// Approval workflow errors
	case errors.Is(err, approval.ErrChainUnresolved):
		UnprocessableEntity(w, "APPROVAL_CHAIN_UNRESOLVED", "No approver chain could be resolved for this request")
	case errors.Is(err, approval.ErrNotCurrentApprover):
		Forbidden(w, "You are not the approver of the current step")
	case errors.Is(err, approval.ErrCancelNotAllowed):
		Forbidden(w, "Only the requester or an admin can cancel this request")
	case errors.Is(err, approval.ErrRequestFinalized):
		Conflict(w, "Request has already been finalized")
	case errors.Is(err, approval.ErrInvalidDecision):
		UnprocessableEntity(w, "INVALID_DECISION", "Decision must be approved or rejected")

	// Export errors
	case errors.Is(err, export.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format, use csv, xlsx or pdf", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
