package timeoff

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/auth"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	policyID   = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	managerID  = "8f14e45f-ceea-467f-a0e6-4e3f5c6e1d10"
	employeeID = "c9f0f895-fb98-4b91-9a3d-7d1f4e0b2a11"
	otherID    = "45c48cce-2e2d-4fbd-8b7f-1f0d3c9a7e12"
	requestID  = "d3d94468-02a4-4b8e-9c6f-2a1b3c4d5e6f"
)

type fakePolicyRepository struct {
	policies map[string]policy.Policy
}

func (f *fakePolicyRepository) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	f.policies[p.ID] = p
	return p, nil
}

func (f *fakePolicyRepository) GetByID(ctx context.Context, id string) (policy.Policy, error) {
	p, ok := f.policies[id]
	if !ok {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	return p, nil
}

func (f *fakePolicyRepository) List(ctx context.Context) ([]policy.Policy, error) {
	out := []policy.Policy{}
	for _, p := range f.policies {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePolicyRepository) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	f.policies[p.ID] = p
	return p, nil
}

type fakeRequestRepository struct {
	requests map[string]timeoff.Request
	managers map[string]string
	created  []timeoff.Request
	updates  int
}

func newFakeRequestRepository() *fakeRequestRepository {
	return &fakeRequestRepository{
		requests: map[string]timeoff.Request{},
		managers: map[string]string{employeeID: managerID},
	}
}

func (f *fakeRequestRepository) Create(ctx context.Context, r timeoff.Request) (timeoff.Request, error) {
	r.ID = "req-" + r.StartDate.Format("20060102")
	f.created = append(f.created, r)
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepository) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	if m, ok := f.managers[r.EmployeeID]; ok {
		r.ManagerID = &m
	}
	return r, nil
}

func (f *fakeRequestRepository) ListByEmployee(ctx context.Context, id string) ([]timeoff.Request, error) {
	out := []timeoff.Request{}
	for _, r := range f.requests {
		if r.EmployeeID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepository) ListAll(ctx context.Context) ([]timeoff.Request, error) {
	out := []timeoff.Request{}
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepository) ListTeam(ctx context.Context, manager string) ([]timeoff.TeamRequest, error) {
	out := []timeoff.TeamRequest{}
	for _, r := range f.requests {
		if f.managers[r.EmployeeID] == manager && r.Status == timeoff.StatusSubmitted {
			out = append(out, timeoff.TeamRequest{
				RequestID:  r.ID,
				EmployeeID: r.EmployeeID,
				StartDate:  r.StartDate,
				EndDate:    r.LastDay(),
				TotalDays:  r.TotalDays,
				Status:     r.Status,
			})
		}
	}
	return out, nil
}

func (f *fakeRequestRepository) UpdateStatus(ctx context.Context, id string, status timeoff.Status) error {
	r, ok := f.requests[id]
	if !ok {
		return timeoff.ErrRequestNotFound
	}
	f.updates++
	r.Status = status
	f.requests[id] = r
	return nil
}

func newService(opts Options) (timeoff.TimeOffService, *fakeRequestRepository) {
	requests := newFakeRequestRepository()
	policies := &fakePolicyRepository{policies: map[string]policy.Policy{
		policyID: {ID: policyID, Name: "Vacaciones", DaysPerYear: 15},
	}}
	return NewTimeOffService(requests, policies, opts), requests
}

func sessionCtx(id string, role user.RoleName) context.Context {
	return auth.WithSession(context.Background(), auth.Session{UserID: id, Role: role})
}

func seedRequest(repo *fakeRequestRepository, id, owner string, status timeoff.Status) {
	start := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	repo.requests[id] = timeoff.Request{
		ID:          id,
		EmployeeID:  owner,
		PolicyID:    policyID,
		RequestType: timeoff.RequestTypeSingleDay,
		StartDate:   start,
		EndDate:     &start,
		TotalDays:   1,
		Status:      status,
	}
}

func TestSubmit(t *testing.T) {
	svc, repo := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)

	res, err := svc.Submit(ctx, timeoff.Draft{
		PolicyID:    policyID,
		RequestType: timeoff.RequestTypeMultiDay,
		StartDate:   "2025-09-10",
		EndDate:     "2025-09-12",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, employeeID, repo.created[0].EmployeeID)
	assert.Equal(t, timeoff.StatusSubmitted, repo.created[0].Status)
	assert.Equal(t, 3.0, res.TotalDays)
	assert.Equal(t, "3 días", res.Duration)
	assert.Equal(t, "Solicitado", res.StatusLabel)
}

func TestSubmit_IncompleteDraftNeverReachesStorage(t *testing.T) {
	svc, repo := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)

	_, err := svc.Submit(ctx, timeoff.Draft{RequestType: timeoff.RequestTypeSingleDay, StartDate: "2025-09-10"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "policy_id")
	assert.Empty(t, repo.created)
}

func TestSubmit_UnknownPolicy(t *testing.T) {
	svc, repo := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)

	_, err := svc.Submit(ctx, timeoff.Draft{
		PolicyID:    otherID,
		RequestType: timeoff.RequestTypeSingleDay,
		StartDate:   "2025-09-10",
	})
	assert.ErrorIs(t, err, policy.ErrPolicyNotFound)
	assert.Empty(t, repo.created)
}

func TestSubmit_RequiresSession(t *testing.T) {
	svc, _ := newService(Options{})
	_, err := svc.Submit(context.Background(), timeoff.Draft{})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestCompose(t *testing.T) {
	svc, _ := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)

	res, err := svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepPolicy, Draft: timeoff.Draft{PolicyID: policyID}})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StepDayType, res.Step)
	assert.Nil(t, res.Summary)

	_, err = svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepPolicy, Draft: timeoff.Draft{PolicyID: otherID}})
	assert.ErrorIs(t, err, policy.ErrPolicyNotFound)

	res, err = svc.Compose(ctx, timeoff.DraftRequest{
		Step: timeoff.StepDates,
		Draft: timeoff.Draft{
			PolicyID:    policyID,
			RequestType: timeoff.RequestTypeSingleDay,
			StartDate:   "2025-09-10",
			DayPortion:  timeoff.DayPortionAM,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StepReview, res.Step)
	require.NotNil(t, res.Summary)
	assert.Equal(t, "Vacaciones", res.Summary.PolicyName)
	assert.Equal(t, 0.5, res.Summary.TotalDays)
	assert.Equal(t, "0.5 días (Mañana)", res.Summary.Duration)
}

func TestCompose_BackAndReset(t *testing.T) {
	svc, _ := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)
	draft := timeoff.Draft{PolicyID: policyID, RequestType: timeoff.RequestTypeMultiDay}

	res, err := svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepDates, Action: timeoff.DraftActionBack, Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StepDayType, res.Step)

	res, err = svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepPolicy, Action: timeoff.DraftActionBack})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StepPolicy, res.Step)

	res, err = svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepDates, Action: timeoff.DraftActionReset, Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StepPolicy, res.Step)
	assert.Equal(t, timeoff.DefaultDraft(), res.Draft)
}

func TestCompose_CannotSkipToReview(t *testing.T) {
	svc, _ := newService(Options{})
	ctx := sessionCtx(employeeID, user.RoleEmployee)

	_, err := svc.Compose(ctx, timeoff.DraftRequest{Step: timeoff.StepReview, Draft: timeoff.Draft{StartDate: "2025-09-10"}})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "policy_id")
}

func TestDecide_ManagerApproves(t *testing.T) {
	svc, repo := newService(Options{})
	seedRequest(repo, requestID, employeeID, timeoff.StatusSubmitted)

	res, err := svc.Approve(sessionCtx(managerID, user.RoleManager), requestID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, res.Status)
	assert.Equal(t, timeoff.StatusApproved, repo.requests[requestID].Status)
}

func TestDecide_SameStatusIsNoop(t *testing.T) {
	svc, repo := newService(Options{LockDecided: true})
	seedRequest(repo, requestID, employeeID, timeoff.StatusRejected)

	res, err := svc.Reject(sessionCtx(managerID, user.RoleManager), requestID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusRejected, res.Status)
	assert.Zero(t, repo.updates)
}

func TestDecide_OverwriteDecided(t *testing.T) {
	svc, repo := newService(Options{})
	seedRequest(repo, requestID, employeeID, timeoff.StatusApproved)

	res, err := svc.Reject(sessionCtx(managerID, user.RoleManager), requestID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusRejected, res.Status)
}

func TestDecide_LockDecided(t *testing.T) {
	svc, repo := newService(Options{LockDecided: true})
	seedRequest(repo, requestID, employeeID, timeoff.StatusApproved)

	_, err := svc.Reject(sessionCtx(managerID, user.RoleManager), requestID)
	assert.ErrorIs(t, err, timeoff.ErrRequestAlreadyDecided)
	assert.Equal(t, timeoff.StatusApproved, repo.requests[requestID].Status)
}

func TestDecide_Authorization(t *testing.T) {
	svc, repo := newService(Options{})
	seedRequest(repo, requestID, employeeID, timeoff.StatusSubmitted)

	_, err := svc.Approve(sessionCtx(otherID, user.RoleManager), requestID)
	assert.ErrorIs(t, err, timeoff.ErrNotOwnerManager)

	_, err = svc.Approve(sessionCtx(employeeID, user.RoleEmployee), requestID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Approve(sessionCtx(otherID, user.RoleSuperAdmin), requestID)
	assert.NoError(t, err)

	_, err = svc.Approve(sessionCtx(managerID, user.RoleManager), "missing")
	assert.ErrorIs(t, err, timeoff.ErrRequestNotFound)

	_, err = svc.Approve(sessionCtx(managerID, user.RoleManager), "a4c9a2d0-1111-4222-8333-944455556666")
	assert.ErrorIs(t, err, timeoff.ErrRequestNotFound)
}

func TestListTeam(t *testing.T) {
	svc, repo := newService(Options{})
	seedRequest(repo, "mine", employeeID, timeoff.StatusSubmitted)
	seedRequest(repo, "done", employeeID, timeoff.StatusApproved)
	seedRequest(repo, "other", otherID, timeoff.StatusSubmitted)

	team, err := svc.ListTeam(sessionCtx(managerID, user.RoleManager))
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "mine", team[0].RequestID)
	assert.Equal(t, "1 día", team[0].Duration)

	_, err = svc.ListTeam(sessionCtx(employeeID, user.RoleEmployee))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestListMineAndAll(t *testing.T) {
	svc, repo := newService(Options{})
	seedRequest(repo, "a", employeeID, timeoff.StatusSubmitted)
	seedRequest(repo, "b", otherID, timeoff.StatusSubmitted)

	mine, err := svc.ListMine(sessionCtx(employeeID, user.RoleEmployee))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)

	_, err = svc.ListAll(sessionCtx(employeeID, user.RoleEmployee))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	all, err := svc.ListAll(sessionCtx(managerID, user.RoleSuperAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
