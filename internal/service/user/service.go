package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Register creates the user on first sign-in. Registering an email twice,
// in any letter case, returns the existing user with Exists set instead of
// failing. Self-registration only ever creates employees; HR and Admin are
// granted by an admin afterwards.
func (s *UserServiceImpl) Register(ctx context.Context, req user.RegisterRequest) (user.RegisterResult, error) {
	req.Email = user.NormalizeEmail(req.Email)
	if req.Email == "" {
		return user.RegisterResult{}, user.ErrEmailRequired
	}
	if err := req.Validate(); err != nil {
		return user.RegisterResult{}, err
	}
	if req.Role != "" && req.Role != string(user.RoleEmployee) {
		return user.RegisterResult{}, user.ErrRoleNotSelfAssigned
	}
	salary := decimal.Zero
	if req.Salary != nil {
		salary = *req.Salary
	}
	creationTime := s.now().UTC()
	if req.CreationTime != nil {
		creationTime = *req.CreationTime
	}

	newUser := user.User{
		Email:          req.Email,
		Name:           strings.TrimSpace(req.Name),
		Role:           user.RoleEmployee,
		Designation:    req.Designation,
		Salary:         salary,
		BankAccount:    req.BankAccount,
		IsVerified:     false,
		Status:         user.StatusActive,
		ProfileImage:   req.ProfileImage,
		CreationTime:   creationTime,
		LastSignInTime: req.LastSignInTime,
	}

	stored, created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return user.RegisterResult{}, err
	}
	if !created {
		return user.RegisterResult{Exists: true, Message: "User already exists"}, nil
	}

	slog.Info("user registered", "email", stored.Email, "role", stored.Role)
	return user.RegisterResult{User: &stored}, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, actor user.Actor, email string) (user.User, error) {
	email = user.NormalizeEmail(email)
	ownProfile := actor.Is(email) && actor.Can(user.PermissionViewOwnProfile)
	if !ownProfile && !actor.Can(user.PermissionEmployeeViewAll) {
		return user.User{}, user.ErrForbidden
	}
	return s.userRepo.GetByEmail(ctx, email)
}

// GetStatus is public and reports a nil status for unknown emails.
func (s *UserServiceImpl) GetStatus(ctx context.Context, email string) (user.StatusResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.StatusResponse{}, nil
		}
		return user.StatusResponse{}, err
	}
	return user.StatusResponse{Status: &u.Status}, nil
}

func (s *UserServiceImpl) UpdateLogin(ctx context.Context, actor user.Actor, req user.LoginUpdateRequest) error {
	req.Email = user.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}
	if !actor.Is(req.Email) {
		return user.ErrNotSelf
	}
	return s.userRepo.UpdateLastSignIn(ctx, req.Email, *req.LastSignInTime)
}

func (s *UserServiceImpl) ListEmployees(ctx context.Context, actor user.Actor, filter user.UserFilter, page pagination.Params) (user.ListUserResponse, error) {
	if !actor.Can(user.PermissionEmployeeViewAll) {
		return user.ListUserResponse{}, user.ErrForbidden
	}

	users, total, err := s.userRepo.List(ctx, filter, page)
	if err != nil {
		return user.ListUserResponse{}, err
	}
	return user.ListUserResponse{Employees: users, TotalItems: total}, nil
}

func (s *UserServiceImpl) Verify(ctx context.Context, actor user.Actor, req user.VerifyRequest) error {
	if !actor.Can(user.PermissionEmployeeVerify) {
		return user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return err
	}
	return s.userRepo.SetVerified(ctx, req.ID, *req.IsVerified)
}

// UpdateUser lets an admin edit any field of another user. Admins cannot
// change their own role or status, which would lock them out.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor user.Actor, req user.UpdateUserRequest) (user.User, error) {
	if !actor.Can(user.PermissionUserManage) {
		return user.User{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	target, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}
	if actor.Is(target.Email) && (req.Role != nil || req.Status != nil) {
		return user.User{}, user.ErrCannotChangeOwnState
	}

	updated, err := s.userRepo.Update(ctx, req)
	if err != nil {
		return user.User{}, err
	}
	if req.Status != nil && updated.IsFired() {
		slog.Info("user fired", "email", updated.Email, "by", actor.Email)
	}
	return updated, nil
}
