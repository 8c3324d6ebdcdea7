package user

import "time"

type RoleName string

const (
	RoleSuperAdmin RoleName = "Super Administrador" // Manages policies and users
	RoleManager    RoleName = "Manager"             // Approves team requests
	RoleEmployee   RoleName = "Empleado"            // Default for new accounts
)

// Role is a row of the roles table
type Role struct {
	ID   int
	Name RoleName
}

// Profile is an application user. ManagerID forms the reporting tree.
type Profile struct {
	ID              string
	DisplayName     *string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	ManagerID       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	RoleID      *int
	RoleName    *RoleName
	ManagerName *string
}

// Name returns the display name, falling back to the email.
func (p *Profile) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return p.Email
}

// Role returns the assigned role, or the employee default when unassigned.
func (p *Profile) Role() RoleName {
	if p.RoleName == nil {
		return RoleEmployee
	}
	return *p.RoleName
}

// IsSuperAdmin checks if user administers the portal
func (p *Profile) IsSuperAdmin() bool {
	return p.Role() == RoleSuperAdmin
}

// CanApprove checks if user can approve requests
func (p *Profile) CanApprove() bool {
	return HasPermission(p.Role(), PermissionTimeOffApprove)
}
