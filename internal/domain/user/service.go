package user

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

// Actor is the authenticated caller a mutating operation is checked against.
type Actor struct {
	Email string
	Role  Role
}

// Can reports whether the actor's role grants permission.
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}

// Is reports whether the actor owns the given email.
func (a Actor) Is(email string) bool {
	return a.Email != "" && equalFoldTrim(a.Email, email)
}

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResult, error)
	GetProfile(ctx context.Context, actor Actor, email string) (User, error)
	GetStatus(ctx context.Context, email string) (StatusResponse, error)
	UpdateLogin(ctx context.Context, actor Actor, req LoginUpdateRequest) error
	ListEmployees(ctx context.Context, actor Actor, filter UserFilter, page pagination.Params) (ListUserResponse, error)
	Verify(ctx context.Context, actor Actor, req VerifyRequest) error
	UpdateUser(ctx context.Context, actor Actor, req UpdateUserRequest) (User, error)
}
