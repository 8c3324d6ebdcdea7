package policy

import "context"

type PolicyRepository interface {
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id string) (Policy, error)
	// List returns policies newest first.
	List(ctx context.Context) ([]Policy, error)
	Update(ctx context.Context, p Policy) (Policy, error)
}
