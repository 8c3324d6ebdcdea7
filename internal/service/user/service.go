package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

type UserServiceImpl struct {
	profiles user.ProfileRepository
	roles    user.RoleRepository
}

func NewUserService(profileRepository user.ProfileRepository, roleRepository user.RoleRepository) user.UserService {
	return &UserServiceImpl{
		profiles: profileRepository,
		roles:    roleRepository,
	}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, id string) (user.ProfileResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(p), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]user.UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, user.NewUserResponse(p))
	}
	return out, nil
}

// CurrentRole returns the role stored for the user, not the one in its token.
func (s *UserServiceImpl) CurrentRole(ctx context.Context, userID string) (user.RoleName, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Role(), nil
}

// ListRoles implements user.UserService.
func (s *UserServiceImpl) ListRoles(ctx context.Context) ([]user.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]user.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, user.RoleResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// ListManagerCandidates returns every profile except the user being edited.
func (s *UserServiceImpl) ListManagerCandidates(ctx context.Context, userID string) ([]user.ManagerResponse, error) {
	if !validator.IsValidUUID(userID) {
		return nil, user.ErrUserNotFound
	}
	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]user.ManagerResponse, 0, len(profiles))
	for _, p := range profiles {
		if strings.EqualFold(p.ID, userID) {
			continue
		}
		out = append(out, user.ManagerResponse{ID: p.ID, DisplayName: p.DisplayName})
	}
	return out, nil
}

// UpdateAssignment implements user.UserService.
func (s *UserServiceImpl) UpdateAssignment(ctx context.Context, req user.UpdateAssignmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.profiles.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	if req.RoleID != nil {
		if _, err := s.roles.GetByID(ctx, *req.RoleID); err != nil {
			return err
		}
	}

	if req.ManagerID != nil {
		if strings.EqualFold(*req.ManagerID, req.UserID) {
			return user.ErrSelfManager
		}
		if _, err := s.profiles.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return user.ErrManagerNotFound
			}
			return err
		}
		cycle, err := s.profiles.ReportsTo(ctx, *req.ManagerID, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to check reporting chain: %w", err)
		}
		if cycle {
			return user.ErrManagerCycle
		}
	}

	if err := s.profiles.UpdateAssignment(ctx, req.UserID, req.RoleID, req.ManagerID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user assignment updated",
		"user_id", req.UserID,
		"role_id", req.RoleID,
		"manager_id", req.ManagerID,
	)
	return nil
}
