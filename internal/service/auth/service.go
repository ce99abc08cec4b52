package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/auth"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/identity"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/jwt"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

type AuthServiceImpl struct {
	userRepo    user.UserRepository
	userService user.UserService
	verifier    identity.Verifier
	jwtService  jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	userService user.UserService,
	verifier identity.Verifier,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		userService: userService,
		verifier:    verifier,
		jwtService:  jwtService,
	}
}

// Register stores the profile under the email proven by the ID token.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.RegisterResult, error) {
	id, err := s.verify(ctx, req.IDToken)
	if err != nil {
		return user.RegisterResult{}, err
	}

	profile := req.RegisterRequest
	profile.Email = id.Email
	return s.userService.Register(ctx, profile)
}

// IssueToken signs an access token carrying the stored role of the user the
// ID token was issued to.
func (s *AuthServiceImpl) IssueToken(ctx context.Context, req auth.TokenRequest) (auth.TokenResponse, error) {
	id, err := s.verify(ctx, req.IDToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, id.Email)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if u.IsFired() {
		return auth.TokenResponse{}, user.ErrUserFired
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		Token:     token,
		Role:      string(u.Role),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthServiceImpl) verify(ctx context.Context, idToken string) (identity.Identity, error) {
	if validator.IsEmpty(idToken) {
		return identity.Identity{}, auth.ErrInvalidIDToken
	}

	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) ||
			errors.Is(err, identity.ErrMissingToken) ||
			errors.Is(err, identity.ErrEmailNotVerified) {
			return identity.Identity{}, fmt.Errorf("%w: %v", auth.ErrInvalidIDToken, err)
		}
		return identity.Identity{}, err
	}

	id.Email = user.NormalizeEmail(id.Email)
	return id, nil
}
