package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
	seq   int
}

func newFakeUserRepo(seed ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range seed {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[newUser.Email]; ok {
		return existing, false, nil
	}
	r.seq++
	newUser.ID = "0190a000-0000-7000-8000-00000000000" + string(rune('0'+r.seq))
	r.users[newUser.Email] = newUser
	return newUser, true, nil
}

func (r *fakeUserRepo) UpdateLastSignIn(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastSignInTime = &at
	r.users[email] = u
	return nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id string, isVerified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == id {
			u.IsVerified = isVerified
			r.users[email] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	u, err := r.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Salary != nil {
		u.Salary = *req.Salary
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Status != nil {
		u.Status = user.Status(*req.Status)
	}
	r.mu.Lock()
	r.users[u.Email] = u
	r.mu.Unlock()
	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context, filter user.UserFilter, page pagination.Params) ([]user.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, u := range r.users {
		if filter.IsVerified != nil && u.IsVerified != *filter.IsVerified {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

var (
	hrActor       = user.Actor{Email: "hr@example.com", Role: user.RoleHR}
	adminActor    = user.Actor{Email: "admin@example.com", Role: user.RoleAdmin}
	employeeActor = user.Actor{Email: "jane@example.com", Role: user.RoleEmployee}
)

func TestRegister_IsIdempotentByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	req := user.RegisterRequest{Email: "jane@example.com", Name: "Jane"}

	first, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Exists)
	require.NotNil(t, first.User)
	assert.Equal(t, user.RoleEmployee, first.User.Role)
	assert.Equal(t, user.StatusActive, first.User.Status)
	assert.False(t, first.User.IsVerified)

	second, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Exists)
	assert.Equal(t, "User already exists", second.Message)
	assert.Len(t, repo.users, 1)
}

func TestRegister_EmailCaseVariantIsSameUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, user.RegisterRequest{Email: " Jane@Example.com ", Name: "Jane"})
	require.NoError(t, err)
	require.NotNil(t, first.User)
	assert.Equal(t, "jane@example.com", first.User.Email)

	second, err := svc.Register(ctx, user.RegisterRequest{Email: "jane@example.com", Name: "Jane"})
	require.NoError(t, err)
	assert.True(t, second.Exists)
	assert.Len(t, repo.users, 1)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	err = svc.UpdateLogin(ctx, user.Actor{Email: "jane@example.com", Role: user.RoleEmployee},
		user.LoginUpdateRequest{Email: "JANE@example.com", LastSignInTime: &at})
	require.NoError(t, err)
	assert.Equal(t, at, *repo.users["jane@example.com"].LastSignInTime)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Email: "  "})
	assert.ErrorIs(t, err, user.ErrEmailRequired)

	_, err = svc.Register(ctx, user.RegisterRequest{Email: "boss@example.com", Role: "Admin"})
	assert.ErrorIs(t, err, user.ErrRoleNotSelfAssigned)

	_, err = svc.Register(ctx, user.RegisterRequest{Email: "mallory@example.com", Role: "HR"})
	assert.ErrorIs(t, err, user.ErrRoleNotSelfAssigned)

	created, err := svc.Register(ctx, user.RegisterRequest{Email: "emp@example.com", Role: "Employee"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, created.User.Role)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Register(ctx, user.RegisterRequest{Email: "x@example.com", Salary: &negative})
	assert.Error(t, err)
}

func TestGetProfile_Authorization(t *testing.T) {
	jane := user.User{ID: "0190a000-0000-7000-8000-000000000001", Email: "jane@example.com", Status: user.StatusActive}
	svc := NewUserService(newFakeUserRepo(jane))
	ctx := context.Background()

	got, err := svc.GetProfile(ctx, employeeActor, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.ID)

	_, err = svc.GetProfile(ctx, hrActor, "jane@example.com")
	assert.NoError(t, err)

	_, err = svc.GetProfile(ctx, user.Actor{Email: "bob@example.com", Role: user.RoleEmployee}, "jane@example.com")
	assert.ErrorIs(t, err, user.ErrForbidden)
	_, err = svc.GetProfile(ctx, user.Actor{Email: "jane@example.com", Role: "Contractor"}, "jane@example.com")
	assert.ErrorIs(t, err, user.ErrForbidden)

	got, err = svc.GetProfile(ctx, employeeActor, "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.ID)
}

func TestGetStatus_UnknownEmailIsNull(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(user.User{Email: "fired@example.com", Status: user.StatusFired}))

	resp, err := svc.GetStatus(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, resp.Status)

	resp, err = svc.GetStatus(context.Background(), "fired@example.com")
	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, user.StatusFired, *resp.Status)
}

func TestUpdateLogin_OnlySelf(t *testing.T) {
	repo := newFakeUserRepo(user.User{Email: "jane@example.com"})
	svc := NewUserService(repo)
	at := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	err := svc.UpdateLogin(context.Background(), hrActor, user.LoginUpdateRequest{Email: "jane@example.com", LastSignInTime: &at})
	assert.ErrorIs(t, err, user.ErrNotSelf)

	err = svc.UpdateLogin(context.Background(), employeeActor, user.LoginUpdateRequest{Email: "jane@example.com", LastSignInTime: &at})
	require.NoError(t, err)
	assert.Equal(t, at, *repo.users["jane@example.com"].LastSignInTime)
}

func TestVerify_HROnly(t *testing.T) {
	id := "0190a000-0000-7000-8000-000000000001"
	repo := newFakeUserRepo(user.User{ID: id, Email: "jane@example.com"})
	svc := NewUserService(repo)
	yes := true

	err := svc.Verify(context.Background(), adminActor, user.VerifyRequest{ID: id, IsVerified: &yes})
	assert.ErrorIs(t, err, user.ErrForbidden)

	err = svc.Verify(context.Background(), hrActor, user.VerifyRequest{ID: id, IsVerified: &yes})
	require.NoError(t, err)
	assert.True(t, repo.users["jane@example.com"].IsVerified)
}

func TestUpdateUser(t *testing.T) {
	janeID := "0190a000-0000-7000-8000-000000000001"
	adminID := "0190a000-0000-7000-8000-000000000002"
	repo := newFakeUserRepo(
		user.User{ID: janeID, Email: "jane@example.com", Role: user.RoleEmployee, Status: user.StatusActive},
		user.User{ID: adminID, Email: "admin@example.com", Role: user.RoleAdmin, Status: user.StatusActive},
	)
	svc := NewUserService(repo)
	ctx := context.Background()
	fired := string(user.StatusFired)
	hr := string(user.RoleHR)

	_, err := svc.UpdateUser(ctx, hrActor, user.UpdateUserRequest{ID: janeID, Status: &fired})
	assert.ErrorIs(t, err, user.ErrForbidden)

	updated, err := svc.UpdateUser(ctx, adminActor, user.UpdateUserRequest{ID: janeID, Status: &fired, Role: &hr})
	require.NoError(t, err)
	assert.Equal(t, user.StatusFired, updated.Status)
	assert.Equal(t, user.RoleHR, updated.Role)

	_, err = svc.UpdateUser(ctx, adminActor, user.UpdateUserRequest{ID: adminID, Status: &fired})
	assert.ErrorIs(t, err, user.ErrCannotChangeOwnState)

	bad := "Boss"
	_, err = svc.UpdateUser(ctx, adminActor, user.UpdateUserRequest{ID: janeID, Role: &bad})
	assert.Error(t, err)
}

func TestListEmployees_FiltersVerified(t *testing.T) {
	repo := newFakeUserRepo(
		user.User{Email: "a@example.com", IsVerified: true},
		user.User{Email: "b@example.com"},
	)
	svc := NewUserService(repo)
	page := pagination.Params{Page: 1, Size: 10}

	resp, err := svc.ListEmployees(context.Background(), hrActor, user.ParseUserFilter("true"), page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalItems)

	_, err = svc.ListEmployees(context.Background(), employeeActor, user.UserFilter{}, page)
	assert.ErrorIs(t, err, user.ErrForbidden)
}
