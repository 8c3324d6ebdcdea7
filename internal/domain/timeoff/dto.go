package timeoff

import (
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

type DraftAction string

const (
	DraftActionNext  DraftAction = "next"
	DraftActionBack  DraftAction = "back"
	DraftActionReset DraftAction = "reset"
)

// DraftRequest moves a composer held by the client one transition.
type DraftRequest struct {
	Step   Step        `json:"step"`
	Action DraftAction `json:"action"`
	Draft  Draft       `json:"draft"`
}

func (r *DraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Step == 0 {
		r.Step = StepPolicy
	}
	if r.Action == "" {
		r.Action = DraftActionNext
	}

	if !r.Step.IsValid() {
		errs.Add("step", "El paso debe estar entre 1 y 4.")
	}
	switch r.Action {
	case DraftActionNext, DraftActionBack, DraftActionReset:
	default:
		errs.Add("action", "La acción debe ser next, back o reset.")
	}

	return errs.Err()
}

// DraftResponse is the composer state after a transition. Summary is set once
// the draft reaches the review step.
type DraftResponse struct {
	Step    Step          `json:"step"`
	Draft   Draft         `json:"draft"`
	Summary *DraftSummary `json:"summary,omitempty"`
}

type DraftSummary struct {
	PolicyName string  `json:"policy_name"`
	TotalDays  float64 `json:"total_days"`
	Duration   string  `json:"duration"`
	Dates      string  `json:"dates"`
}

type RequestResponse struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName *string     `json:"employee_name,omitempty"`
	PolicyID     string      `json:"policy_id"`
	PolicyName   *string     `json:"policy_name,omitempty"`
	RequestType  RequestType `json:"request_type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	DayPortion   *DayPortion `json:"day_portion"`
	TotalDays    float64     `json:"total_days"`
	Reason       *string     `json:"reason"`
	Status       Status      `json:"status"`
	StatusLabel  string      `json:"status_label"`
	Duration     string      `json:"duration"`
	Dates        string      `json:"dates"`
	CreatedAt    time.Time   `json:"created_at"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		PolicyID:     r.PolicyID,
		PolicyName:   r.PolicyName,
		RequestType:  r.RequestType,
		StartDate:    r.StartDate.Format(validator.DateLayout),
		EndDate:      r.LastDay().Format(validator.DateLayout),
		DayPortion:   r.DayPortion,
		TotalDays:    r.TotalDays,
		Reason:       r.Reason,
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		Duration:     FormatDuration(r.TotalDays, r.DayPortion),
		Dates:        FormatDateRange(r.StartDate, r.EndDate),
		CreatedAt:    r.CreatedAt,
	}
}

func NewRequestResponses(rs []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewRequestResponse(r))
	}
	return out
}

// TeamRequestResponse is one row of a manager's pending queue.
type TeamRequestResponse struct {
	RequestID    string      `json:"request_id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	PolicyName   string      `json:"policy_name"`
	RequestType  RequestType `json:"request_type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	TotalDays    float64     `json:"total_days"`
	Status       Status      `json:"status"`
	StatusLabel  string      `json:"status_label"`
	Duration     string      `json:"duration"`
	Dates        string      `json:"dates"`
}

func NewTeamRequestResponse(r TeamRequest) TeamRequestResponse {
	end := r.EndDate
	return TeamRequestResponse{
		RequestID:    r.RequestID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		PolicyName:   r.PolicyName,
		RequestType:  r.RequestType,
		StartDate:    r.StartDate.Format(validator.DateLayout),
		EndDate:      r.EndDate.Format(validator.DateLayout),
		TotalDays:    r.TotalDays,
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		Duration:     FormatDuration(r.TotalDays, r.DayPortion),
		Dates:        FormatDateRange(r.StartDate, &end),
	}
}
