package policy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

type PolicyServiceImpl struct {
	policies policy.PolicyRepository
}

func NewPolicyService(policyRepository policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{policies: policyRepository}
}

// List implements policy.PolicyService.
func (s *PolicyServiceImpl) List(ctx context.Context) ([]policy.PolicyResponse, error) {
	policies, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]policy.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, policy.NewPolicyResponse(p))
	}
	return out, nil
}

// Options implements policy.PolicyService.
func (s *PolicyServiceImpl) Options(ctx context.Context) ([]policy.PolicyOption, error) {
	policies, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]policy.PolicyOption, 0, len(policies))
	for _, p := range policies {
		out = append(out, policy.PolicyOption{Value: p.ID, Label: p.Name})
	}
	return out, nil
}

// Create implements policy.PolicyService.
func (s *PolicyServiceImpl) Create(ctx context.Context, req policy.CreatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	created, err := s.policies.Create(ctx, policy.Policy{
		Name:        req.Name,
		Description: req.Description,
		DaysPerYear: req.DaysPerYear,
	})
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to create policy: %w", err)
	}

	slog.InfoContext(ctx, "policy created", "policy_id", created.ID, "days_per_year", created.DaysPerYear)
	return policy.NewPolicyResponse(created), nil
}

// Update implements policy.PolicyService.
func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return policy.PolicyResponse{}, policy.ErrPolicyNotFound
	}
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	updated, err := s.policies.Update(ctx, policy.Policy{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		DaysPerYear: req.DaysPerYear,
	})
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	slog.InfoContext(ctx, "policy updated", "policy_id", updated.ID)
	return policy.NewPolicyResponse(updated), nil
}
