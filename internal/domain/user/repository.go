package user

import (
	"context"
)

type ProfileRepository interface {
	// Create inserts the profile and assigns it the given role.
	Create(ctx context.Context, profile Profile, role RoleName) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	LinkGoogleAccount(ctx context.Context, id string, googleID string) error
	// ReportsTo reports whether userID sits anywhere below managerID in the reporting tree.
	ReportsTo(ctx context.Context, userID string, managerID string) (bool, error)
	// UpdateAssignment replaces the role row and the manager reference in one
	// transaction. It returns ErrManagerCycle when managerID reports to userID.
	UpdateAssignment(ctx context.Context, userID string, roleID *int, managerID *string) error
}

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int) (Role, error)
}
