package timeoff

import "time"

type RequestType string

const (
	RequestTypeSingleDay RequestType = "SINGLE_DAY"
	RequestTypeMultiDay  RequestType = "MULTI_DAY"
)

func (t RequestType) IsValid() bool {
	return t == RequestTypeSingleDay || t == RequestTypeMultiDay
}

type DayPortion string

const (
	DayPortionFullDay DayPortion = "FULL_DAY"
	DayPortionAM      DayPortion = "AM"
	DayPortionPM      DayPortion = "PM"
)

func (p DayPortion) IsValid() bool {
	switch p {
	case DayPortionFullDay, DayPortionAM, DayPortionPM:
		return true
	}
	return false
}

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// IsTerminal reports whether a manager has already decided the request.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Label is the Spanish status label shown in history tables.
func (s Status) Label() string {
	switch s {
	case StatusSubmitted:
		return "Solicitado"
	case StatusApproved:
		return "Aprobado"
	case StatusRejected:
		return "Rechazado"
	}
	return string(s)
}

// Request is one employee's absence request.
type Request struct {
	ID          string
	EmployeeID  string
	PolicyID    string
	RequestType RequestType
	StartDate   time.Time
	EndDate     *time.Time
	DayPortion  *DayPortion
	TotalDays   float64
	Reason      *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeName *string
	PolicyName   *string
	ManagerID    *string
}

// LastDay returns the end date, or the start date for single-day requests.
func (r Request) LastDay() time.Time {
	if r.EndDate != nil {
		return *r.EndDate
	}
	return r.StartDate
}

// TeamRequest is one row of the get_team_requests aggregation.
type TeamRequest struct {
	RequestID    string
	EmployeeID   string
	EmployeeName string
	PolicyName   string
	RequestType  RequestType
	DayPortion   *DayPortion
	StartDate    time.Time
	EndDate      time.Time
	TotalDays    float64
	Status       Status
	CreatedAt    time.Time
}
