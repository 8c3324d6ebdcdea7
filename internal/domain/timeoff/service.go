package timeoff

import "context"

// TimeOffService acts on behalf of the session stored in ctx.
type TimeOffService interface {
	Compose(ctx context.Context, req DraftRequest) (DraftResponse, error)
	Submit(ctx context.Context, draft Draft) (RequestResponse, error)
	ListMine(ctx context.Context) ([]RequestResponse, error)
	ListAll(ctx context.Context) ([]RequestResponse, error)
	ListTeam(ctx context.Context) ([]TeamRequestResponse, error)
	Approve(ctx context.Context, id string) (RequestResponse, error)
	Reject(ctx context.Context, id string) (RequestResponse, error)
}
