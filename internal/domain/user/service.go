package user

import "context"

type UserService interface {
	GetProfile(ctx context.Context, id string) (ProfileResponse, error)
	CurrentRole(ctx context.Context, userID string) (RoleName, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	ListManagerCandidates(ctx context.Context, userID string) ([]ManagerResponse, error)
	UpdateAssignment(ctx context.Context, req UpdateAssignmentRequest) error
}
