package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/auth"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)

	// User
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, user.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrSelfManager):
		ValidationError(w, map[string]string{"manager_id": err.Error()})
	case errors.Is(err, user.ErrManagerCycle):
		Conflict(w, "Selected manager reports to this user")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Policy
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Policy not found")

	// Time off
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time off request not found")
	case errors.Is(err, timeoff.ErrNotOwnerManager):
		Forbidden(w, err.Error())
	case errors.Is(err, timeoff.ErrRequestAlreadyDecided):
		Conflict(w, err.Error())
	case errors.Is(err, timeoff.ErrNoNextStep),
		errors.Is(err, timeoff.ErrInvalidStep),
		errors.Is(err, timeoff.ErrDraftIncomplete):
		BadRequest(w, err.Error(), nil)

	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		InternalServerError(w, "An unexpected error occurred")
	}
}
