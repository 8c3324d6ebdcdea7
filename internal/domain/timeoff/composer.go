package timeoff

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

// Step is a position in the request composer.
type Step int

const (
	StepPolicy Step = iota + 1
	StepDayType
	StepDates
	StepReview
)

const maxReasonLength = 1000

func (s Step) IsValid() bool {
	return s >= StepPolicy && s <= StepReview
}

// Draft holds the composer's fields as the client sends them.
type Draft struct {
	PolicyID    string      `json:"policy_id"`
	RequestType RequestType `json:"request_type"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date,omitempty"`
	DayPortion  DayPortion  `json:"day_portion,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

// DefaultDraft is the state of a freshly opened composer.
func DefaultDraft() Draft {
	return Draft{
		RequestType: RequestTypeSingleDay,
		DayPortion:  DayPortionFullDay,
	}
}

// ValidateStep checks only the fields owned by step.
func (d *Draft) ValidateStep(step Step) error {
	var errs validator.ValidationErrors

	switch step {
	case StepPolicy:
		d.PolicyID = strings.TrimSpace(d.PolicyID)
		if d.PolicyID == "" {
			errs.Add("policy_id", "Debes seleccionar una política.")
		} else if !validator.IsValidUUID(d.PolicyID) {
			errs.Add("policy_id", "La política seleccionada no es válida.")
		}

	case StepDayType:
		if !d.RequestType.IsValid() {
			errs.Add("request_type", "Selecciona un tipo de solicitud válido.")
		}

	case StepDates:
		start, ok := validator.IsValidDate(d.StartDate)
		if validator.IsEmpty(d.StartDate) {
			errs.Add("start_date", "La fecha de inicio es obligatoria.")
		} else if !ok {
			errs.Add("start_date", "La fecha de inicio debe tener el formato AAAA-MM-DD.")
		}

		if d.RequestType == RequestTypeMultiDay {
			end, endOK := validator.IsValidDate(d.EndDate)
			switch {
			case validator.IsEmpty(d.EndDate):
				errs.Add("end_date", "La fecha de fin es obligatoria para varios días.")
			case !endOK:
				errs.Add("end_date", "La fecha de fin debe tener el formato AAAA-MM-DD.")
			case ok && end.Before(start):
				errs.Add("end_date", "La fecha de fin no puede ser anterior a la fecha de inicio.")
			}
		} else {
			if d.DayPortion == "" {
				d.DayPortion = DayPortionFullDay
			}
			if !d.DayPortion.IsValid() {
				errs.Add("day_portion", "Selecciona una jornada válida.")
			}
		}

	case StepReview:
		if !validator.MaxLength(d.Reason, maxReasonLength) {
			errs.Add("reason", "El motivo no puede superar los 1000 caracteres.")
		}

	default:
		return ErrInvalidStep
	}

	return errs.Err()
}

// Composer walks a draft through the four steps in order.
type Composer struct {
	step  Step
	draft Draft
}

func NewComposer() *Composer {
	return &Composer{step: StepPolicy, draft: DefaultDraft()}
}

// Resume rebuilds a composer that claims to be at step by replaying Next
// from the first step. It stops at the first step whose fields fail and
// returns that step's error.
func Resume(step Step, d Draft) (*Composer, error) {
	if !step.IsValid() {
		return nil, ErrInvalidStep
	}
	c := &Composer{step: StepPolicy, draft: d}
	for c.step < step {
		if err := c.Next(); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (c *Composer) Step() Step {
	return c.step
}

func (c *Composer) Draft() Draft {
	return c.draft
}

// Update replaces the draft fields without moving between steps.
func (c *Composer) Update(d Draft) {
	c.draft = d
}

// Next validates the current step and advances by one.
func (c *Composer) Next() error {
	if c.step == StepReview {
		return ErrNoNextStep
	}
	if err := c.draft.ValidateStep(c.step); err != nil {
		return err
	}
	c.step++
	return nil
}

// Back moves one step back. It never goes below the first step.
func (c *Composer) Back() {
	if c.step > StepPolicy {
		c.step--
	}
}

// Reset returns to the first step with default fields.
func (c *Composer) Reset() {
	c.step = StepPolicy
	c.draft = DefaultDraft()
}

// Build turns the reviewed draft into a submitted request owned by employeeID.
// Every step is validated again so an out-of-band draft cannot skip one.
func (c *Composer) Build(employeeID string) (Request, error) {
	if c.step != StepReview {
		return Request{}, ErrDraftIncomplete
	}

	var errs validator.ValidationErrors
	for s := StepPolicy; s <= StepReview; s++ {
		if err := c.draft.ValidateStep(s); err != nil {
			if stepErrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, stepErrs...)
				continue
			}
			return Request{}, err
		}
	}
	if err := errs.Err(); err != nil {
		return Request{}, err
	}

	start, _ := time.Parse(validator.DateLayout, c.draft.StartDate)
	req := Request{
		EmployeeID:  employeeID,
		PolicyID:    c.draft.PolicyID,
		RequestType: c.draft.RequestType,
		StartDate:   start,
		Status:      StatusSubmitted,
	}

	if c.draft.RequestType == RequestTypeMultiDay {
		end, _ := time.Parse(validator.DateLayout, c.draft.EndDate)
		req.EndDate = &end
		req.TotalDays = TotalDays(RequestTypeMultiDay, start, end, "")
	} else {
		portion := c.draft.DayPortion
		req.EndDate = &start
		req.DayPortion = &portion
		req.TotalDays = TotalDays(RequestTypeSingleDay, start, start, portion)
	}

	if reason := strings.TrimSpace(c.draft.Reason); reason != "" {
		req.Reason = &reason
	}

	return req, nil
}
