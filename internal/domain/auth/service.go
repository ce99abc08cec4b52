package auth

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
)

// AuthService turns identity provider ID tokens into registrations and API
// access tokens.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.RegisterResult, error)
	IssueToken(ctx context.Context, req TokenRequest) (TokenResponse, error)
}
