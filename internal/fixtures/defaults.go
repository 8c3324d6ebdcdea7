package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
)

func strPtr(s string) *string { return &s }

// DefaultPolicies returns the policies a fresh portal starts with.
func DefaultPolicies() []policy.CreatePolicyRequest {
	return []policy.CreatePolicyRequest{
		{
			Name:        "Vacaciones",
			Description: strPtr("Días de descanso anuales retribuidos."),
			DaysPerYear: 22,
		},
		{
			Name:        "Asuntos propios",
			Description: strPtr("Días para gestiones personales."),
			DaysPerYear: 3,
		},
		{
			Name:        "Enfermedad",
			Description: strPtr("Ausencias por motivos de salud."),
			DaysPerYear: 10,
		},
	}
}

// Seeder fills an empty portal with default data.
type Seeder struct {
	policies policy.PolicyService
	profiles user.ProfileRepository
	roles    user.RoleRepository
}

func NewSeeder(policies policy.PolicyService, profiles user.ProfileRepository, roles user.RoleRepository) *Seeder {
	return &Seeder{policies: policies, profiles: profiles, roles: roles}
}

// SeedPolicies creates DefaultPolicies when no policy exists yet and returns
// how many were created.
func (s *Seeder) SeedPolicies(ctx context.Context) (int, error) {
	existing, err := s.policies.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		slog.InfoContext(ctx, "policies already present, skipping", "count", len(existing))
		return 0, nil
	}

	created := 0
	for _, req := range DefaultPolicies() {
		if _, err := s.policies.Create(ctx, req); err != nil {
			return created, fmt.Errorf("seed policy %q: %w", req.Name, err)
		}
		created++
	}
	return created, nil
}

// PromoteAdmin gives the account registered under email the Super
// Administrador role, keeping its manager.
func (s *Seeder) PromoteAdmin(ctx context.Context, email string) error {
	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r.Name != user.RoleSuperAdmin {
			continue
		}
		if err := s.profiles.UpdateAssignment(ctx, p.ID, &r.ID, p.ManagerID); err != nil {
			return err
		}
		slog.InfoContext(ctx, "user promoted", "user_id", p.ID, "role", string(r.Name))
		return nil
	}
	return user.ErrRoleNotFound
}
