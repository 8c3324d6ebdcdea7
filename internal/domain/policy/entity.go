package policy

import "time"

// Policy is a category of time off with an annual day allowance.
type Policy struct {
	ID          string
	Name        string
	Description *string
	DaysPerYear int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
