package timeoff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/auth"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

type Options struct {
	// LockDecided rejects status changes on requests that are already approved or rejected.
	LockDecided bool
}

type TimeOffServiceImpl struct {
	requests timeoff.RequestRepository
	policies policy.PolicyRepository
	opts     Options
}

func NewTimeOffService(requestRepository timeoff.RequestRepository, policyRepository policy.PolicyRepository, opts Options) timeoff.TimeOffService {
	return &TimeOffServiceImpl{
		requests: requestRepository,
		policies: policyRepository,
		opts:     opts,
	}
}

// Compose implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Compose(ctx context.Context, req timeoff.DraftRequest) (timeoff.DraftResponse, error) {
	if _, err := auth.SessionFromContext(ctx); err != nil {
		return timeoff.DraftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeoff.DraftResponse{}, err
	}

	if req.Action == timeoff.DraftActionReset {
		c := timeoff.NewComposer()
		return timeoff.DraftResponse{Step: c.Step(), Draft: c.Draft()}, nil
	}

	c, err := timeoff.Resume(req.Step, req.Draft)
	if err != nil {
		return timeoff.DraftResponse{}, err
	}

	switch req.Action {
	case timeoff.DraftActionBack:
		c.Back()
	case timeoff.DraftActionNext:
		from := c.Step()
		if err := c.Next(); err != nil {
			return timeoff.DraftResponse{}, err
		}
		if from == timeoff.StepPolicy {
			if _, err := s.policies.GetByID(ctx, c.Draft().PolicyID); err != nil {
				return timeoff.DraftResponse{}, err
			}
		}
	}

	res := timeoff.DraftResponse{Step: c.Step(), Draft: c.Draft()}
	if c.Step() == timeoff.StepReview {
		summary, err := s.summarize(ctx, c)
		if err != nil {
			return timeoff.DraftResponse{}, err
		}
		res.Summary = &summary
	}
	return res, nil
}

func (s *TimeOffServiceImpl) summarize(ctx context.Context, c *timeoff.Composer) (timeoff.DraftSummary, error) {
	preview, err := c.Build("")
	if err != nil {
		return timeoff.DraftSummary{}, err
	}
	pol, err := s.policies.GetByID(ctx, preview.PolicyID)
	if err != nil {
		return timeoff.DraftSummary{}, err
	}
	return timeoff.DraftSummary{
		PolicyName: pol.Name,
		TotalDays:  preview.TotalDays,
		Duration:   timeoff.FormatDuration(preview.TotalDays, preview.DayPortion),
		Dates:      timeoff.FormatDateRange(preview.StartDate, preview.EndDate),
	}, nil
}

// Submit implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Submit(ctx context.Context, draft timeoff.Draft) (timeoff.RequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	c, err := timeoff.Resume(timeoff.StepReview, draft)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	request, err := c.Build(session.UserID)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	if _, err := s.policies.GetByID(ctx, request.PolicyID); err != nil {
		return timeoff.RequestResponse{}, err
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to create time off request: %w", err)
	}

	slog.InfoContext(ctx, "time off request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"total_days", created.TotalDays,
	)
	return timeoff.NewRequestResponse(created), nil
}

// ListMine implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListMine(ctx context.Context) ([]timeoff.RequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.ListByEmployee(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return timeoff.NewRequestResponses(requests), nil
}

// ListAll implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListAll(ctx context.Context) ([]timeoff.RequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Can(user.PermissionTimeOffViewAll) {
		return nil, user.ErrInsufficientPermissions
	}

	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return timeoff.NewRequestResponses(requests), nil
}

// ListTeam implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListTeam(ctx context.Context) ([]timeoff.TeamRequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Can(user.PermissionTimeOffApprove) {
		return nil, user.ErrInsufficientPermissions
	}

	team, err := s.requests.ListTeam(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]timeoff.TeamRequestResponse, 0, len(team))
	for _, tr := range team {
		out = append(out, timeoff.NewTeamRequestResponse(tr))
	}
	return out, nil
}

// Approve implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Approve(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	return s.decide(ctx, id, timeoff.StatusApproved)
}

// Reject implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Reject(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	return s.decide(ctx, id, timeoff.StatusRejected)
}

func (s *TimeOffServiceImpl) decide(ctx context.Context, id string, status timeoff.Status) (timeoff.RequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	if !session.Can(user.PermissionTimeOffApprove) {
		return timeoff.RequestResponse{}, user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return timeoff.RequestResponse{}, timeoff.ErrRequestNotFound
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	isManager := request.ManagerID != nil && *request.ManagerID == session.UserID
	if !isManager && session.Role != user.RoleSuperAdmin {
		return timeoff.RequestResponse{}, timeoff.ErrNotOwnerManager
	}

	if request.Status == status {
		return timeoff.NewRequestResponse(request), nil
	}
	if s.opts.LockDecided && request.Status.IsTerminal() {
		return timeoff.RequestResponse{}, timeoff.ErrRequestAlreadyDecided
	}

	if err := s.requests.UpdateStatus(ctx, id, status); err != nil {
		return timeoff.RequestResponse{}, err
	}

	slog.InfoContext(ctx, "time off request decided",
		"request_id", id,
		"status", string(status),
		"previous_status", string(request.Status),
		"decided_by", session.UserID,
	)

	request.Status = status
	return timeoff.NewRequestResponse(request), nil
}
