package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

const (
	noRoleLabel    = "Sin rol"
	noManagerLabel = "N/A"
)

// ProfileResponse is the signed-in user's own profile
type ProfileResponse struct {
	ID          string    `json:"id"`
	DisplayName *string   `json:"display_name"`
	Email       string    `json:"email"`
	Role        RoleName  `json:"role"`
	ManagerID   *string   `json:"manager_id"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResponse is one row of the admin user table
type UserResponse struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	RoleID      *int    `json:"role_id"`
	Manager     string  `json:"manager"`
	ManagerID   *string `json:"manager_id"`
}

type RoleResponse struct {
	ID   int      `json:"id"`
	Name RoleName `json:"name"`
}

type ManagerResponse struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	perms := make([]string, 0, len(RolePermissions[p.Role()]))
	for _, perm := range RolePermissions[p.Role()] {
		perms = append(perms, string(perm))
	}
	return ProfileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Role:        p.Role(),
		ManagerID:   p.ManagerID,
		Permissions: perms,
		CreatedAt:   p.CreatedAt,
	}
}

func NewUserResponse(p Profile) UserResponse {
	res := UserResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Role:        noRoleLabel,
		RoleID:      p.RoleID,
		Manager:     noManagerLabel,
		ManagerID:   p.ManagerID,
	}
	if p.RoleName != nil {
		res.Role = string(*p.RoleName)
	}
	if p.ManagerName != nil && *p.ManagerName != "" {
		res.Manager = *p.ManagerName
	}
	return res
}

// UpdateAssignmentRequest replaces a user's role and manager
type UpdateAssignmentRequest struct {
	UserID    string  `json:"-"`
	RoleID    *int    `json:"role_id"`
	ManagerID *string `json:"manager_id"`
}

// Validate checks the request. An empty manager_id clears the manager.
func (r *UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ManagerID != nil && strings.TrimSpace(*r.ManagerID) == "" {
		r.ManagerID = nil
	}

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if r.RoleID != nil && *r.RoleID <= 0 {
		errs.Add("role_id", "role_id must be a positive integer")
	}

	if r.ManagerID != nil {
		if !validator.IsValidUUID(*r.ManagerID) {
			errs.Add("manager_id", "manager_id must be a valid UUID")
		} else if strings.EqualFold(*r.ManagerID, r.UserID) {
			errs.Add("manager_id", ErrSelfManager.Error())
		}
	}

	return errs.Err()
}
