package user

import (
	"context"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// Create inserts newUser unless the email is taken; created is false when
	// a row already existed.
	Create(ctx context.Context, newUser User) (u User, created bool, err error)
	UpdateLastSignIn(ctx context.Context, email string, at time.Time) error
	SetVerified(ctx context.Context, id string, isVerified bool) error
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	List(ctx context.Context, filter UserFilter, page pagination.Params) ([]User, int64, error)
}
