package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRequired        = errors.New("email is required")
	ErrUserFired            = errors.New("user has been fired")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrNotSelf              = errors.New("operation allowed on own account only")
	ErrRoleNotSelfAssigned  = errors.New("only the Employee role can be self-assigned")
	ErrCannotChangeOwnState = errors.New("admins cannot change their own role or status")
)
