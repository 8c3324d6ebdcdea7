package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrRoleNotFound            = errors.New("role not found")
	ErrManagerNotFound         = errors.New("manager not found")
	ErrSelfManager             = errors.New("a user cannot be their own manager")
	ErrManagerCycle            = errors.New("manager reports to this user")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
