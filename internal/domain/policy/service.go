package policy

import "context"

type PolicyService interface {
	List(ctx context.Context) ([]PolicyResponse, error)
	// Options lists policies as selectable options for the request composer.
	Options(ctx context.Context) ([]PolicyOption, error)
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
}
