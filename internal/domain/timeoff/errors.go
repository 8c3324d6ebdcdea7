package timeoff

import "errors"

var (
	ErrRequestNotFound       = errors.New("time off request not found")
	ErrRequestAlreadyDecided = errors.New("time off request has already been decided")
	ErrNotOwnerManager       = errors.New("only the employee's manager can decide this request")
	ErrNoNextStep            = errors.New("composer is already at the last step")
	ErrInvalidStep           = errors.New("composer step must be between 1 and 4")
	ErrDraftIncomplete       = errors.New("request must be reviewed before it is submitted")
)
