package policy

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
)

const nameRequiredMessage = "El nombre es requerido."

type CreatePolicyRequest struct {
	Name        string  `json:"policy_name"`
	Description *string `json:"description"`
	DaysPerYear int     `json:"days_per_year"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Description = normalizeDescription(r.Description)
	validateFields(&errs, r.Name, r.DaysPerYear)
	return errs.Err()
}

type UpdatePolicyRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"policy_name"`
	Description *string `json:"description"`
	DaysPerYear int     `json:"days_per_year"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Description = normalizeDescription(r.Description)

	validateFields(&errs, r.Name, r.DaysPerYear)
	return errs.Err()
}

func validateFields(errs *validator.ValidationErrors, name string, daysPerYear int) {
	if !validator.MinLength(name, 3) {
		errs.Add("policy_name", nameRequiredMessage)
	} else if !validator.MaxLength(name, 255) {
		errs.Add("policy_name", "policy_name must not exceed 255 characters")
	}
	if daysPerYear < 1 {
		errs.Add("days_per_year", "days_per_year must be at least 1")
	}
}

// normalizeDescription turns a blank description into nil.
func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type PolicyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"policy_name"`
	Description *string   `json:"description"`
	DaysPerYear int       `json:"days_per_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPolicyResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		DaysPerYear: p.DaysPerYear,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PolicyOption is a select option in the composer's first step.
type PolicyOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
