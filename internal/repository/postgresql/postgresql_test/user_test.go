package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string, role user.Role) user.User {
	return user.User{
		Email:        email,
		Name:         "Test " + string(role),
		Role:         role,
		Designation:  "Engineer",
		Salary:       decimal.RequireFromString("1500.00"),
		BankAccount:  "0012-3344",
		Status:       user.StatusActive,
		CreationTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserRepository_CreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	first, created, err := repo.Create(ctx, newUser("jane@example.com", user.RoleEmployee))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.Salary.Equal(decimal.RequireFromString("1500")))

	again := newUser("jane@example.com", user.RoleAdmin)
	second, created, err := repo.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, user.RoleEmployee, second.Role)
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_VerifyAndList(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	a, _, err := repo.Create(ctx, newUser("a@example.com", user.RoleEmployee))
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, newUser("b@example.com", user.RoleEmployee))
	require.NoError(t, err)

	require.NoError(t, repo.SetVerified(ctx, a.ID, true))

	verified := true
	list, total, err := repo.List(ctx, user.UserFilter{IsVerified: &verified}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "a@example.com", list[0].Email)

	all, total, err := repo.List(ctx, user.UserFilter{}, pagination.Params{Page: 2, Size: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 1)
}

func TestUserRepository_UpdateLastSignIn(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	_, _, err := repo.Create(ctx, newUser("jane@example.com", user.RoleEmployee))
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastSignIn(ctx, "jane@example.com", at))

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.LastSignInTime)
	assert.True(t, got.LastSignInTime.Equal(at))

	assert.ErrorIs(t, repo.UpdateLastSignIn(ctx, "ghost@example.com", at), user.ErrUserNotFound)
}
