package timeoff

import "context"

type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	// GetByID loads the request with its owner's name and manager.
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	// ListTeam returns submitted requests of managerID's direct reports.
	ListTeam(ctx context.Context, managerID string) ([]TeamRequest, error)
	// UpdateStatus overwrites the status. Writing the current status is a no-op.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
