package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingPayRoll(email, month string) payroll.PayRoll {
	return payroll.PayRoll{
		EmployeeEmail: email,
		EmployeeName:  "Jane",
		HREmail:       "hr@example.com",
		HRName:        "Hal",
		Salary:        decimal.RequireFromString("1500"),
		Month:         month,
		Year:          "2024",
		Status:        payroll.StatusPending,
		PayRequestAt:  time.Date(2024, 3, 28, 10, 0, 0, 0, time.UTC),
	}
}

func paymentFor(p payroll.PayRoll, reference string) transaction.Transaction {
	return transaction.Transaction{
		TransactionID: reference,
		Amount:        p.Salary,
		PaidAt:        time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC),
		PayRollID:     p.ID,
		PaymentMethod: "card",
		PayForMonth:   p.Month,
		PayForYear:    p.Year,
		EmployeeEmail: p.EmployeeEmail,
		EmployeeName:  p.EmployeeName,
	}
}

func TestPayRollRepository_PeriodIsUnique(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewPayRollRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	exists, err := repo.ExistsForPeriod(ctx, "jane@example.com", "MAR", "2024")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	assert.ErrorIs(t, err, payroll.ErrPayRollPeriodTaken)
}

func TestPayRollRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewPayRollRepository(db)
	ctx := context.Background()

	for _, month := range []string{"JAN", "FEB", "MAR"} {
		_, err := repo.Create(ctx, pendingPayRoll("jane@example.com", month))
		require.NoError(t, err)
	}
	first, err := repo.Create(ctx, pendingPayRoll("joe@example.com", "JAN"))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, payroll.StatusPaid))

	list, total, err := repo.List(ctx, payroll.PayRollFilter{EmployeeEmail: "jane@example.com"}, pagination.Params{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 2)

	paid, total, err := repo.List(ctx, payroll.PayRollFilter{Status: string(payroll.StatusPaid)}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)
}

func TestPayRollRepository_DeleteOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewPayRollRepository(db)
	ctx := context.Background()

	p, err := repo.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, p.ID, payroll.StatusPaid))

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), payroll.ErrPayRollNotPending)

	q, err := repo.Create(ctx, pendingPayRoll("jane@example.com", "APR"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, q.ID))

	_, err = repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, payroll.ErrPayRollNotFound)
}

func TestTransactor_RollsBackPaymentOnError(t *testing.T) {
	db := newTestDB(t)
	payRolls := postgresql.NewPayRollRepository(db)
	transactions := postgresql.NewTransactionRepository(db)
	tx := postgresql.NewTransactor(db)
	ctx := context.Background()

	p, err := payRolls.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := payRolls.GetByIDForUpdate(txCtx, p.ID); err != nil {
			return err
		}
		if _, err := transactions.Create(txCtx, paymentFor(p, "pi_1")); err != nil {
			return err
		}
		if err := payRolls.UpdateStatus(txCtx, p.ID, payroll.StatusPaid); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := payRolls.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPending, got.Status)

	exists, err := transactions.ExistsForPayRoll(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionRepository_OnePaymentPerPayRoll(t *testing.T) {
	db := newTestDB(t)
	payRolls := postgresql.NewPayRollRepository(db)
	transactions := postgresql.NewTransactionRepository(db)
	ctx := context.Background()

	p, err := payRolls.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	require.NoError(t, err)

	saved, err := transactions.Create(ctx, paymentFor(p, "pi_1"))
	require.NoError(t, err)
	assert.True(t, saved.Amount.Equal(p.Salary))

	_, err = transactions.Create(ctx, paymentFor(p, "pi_2"))
	assert.ErrorIs(t, err, transaction.ErrTransactionExists)

	other, err := payRolls.Create(ctx, pendingPayRoll("jane@example.com", "APR"))
	require.NoError(t, err)
	_, err = transactions.Create(ctx, paymentFor(other, "pi_1"))
	assert.ErrorIs(t, err, transaction.ErrTransactionExists)

	list, total, err := transactions.ListByEmployee(ctx, "jane@example.com", pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "pi_1", list[0].TransactionID)
}

func TestPayRollRepository_FindInconsistencies(t *testing.T) {
	db := newTestDB(t)
	payRolls := postgresql.NewPayRollRepository(db)
	transactions := postgresql.NewTransactionRepository(db)
	ctx := context.Background()

	paidWithoutTx, err := payRolls.Create(ctx, pendingPayRoll("jane@example.com", "JAN"))
	require.NoError(t, err)
	require.NoError(t, payRolls.UpdateStatus(ctx, paidWithoutTx.ID, payroll.StatusPaid))

	pendingWithTx, err := payRolls.Create(ctx, pendingPayRoll("jane@example.com", "FEB"))
	require.NoError(t, err)
	_, err = transactions.Create(ctx, paymentFor(pendingWithTx, "pi_feb"))
	require.NoError(t, err)

	_, err = payRolls.Create(ctx, pendingPayRoll("jane@example.com", "MAR"))
	require.NoError(t, err)

	found, err := payRolls.FindInconsistencies(ctx)
	require.NoError(t, err)
	require.Len(t, found, 2)

	byID := map[string]payroll.Inconsistency{}
	for _, inc := range found {
		byID[inc.PayRollID] = inc
	}
	assert.False(t, byID[paidWithoutTx.ID].HasTransaction)
	assert.True(t, byID[pendingWithTx.ID].HasTransaction)
	assert.Equal(t, "pi_feb", byID[pendingWithTx.ID].TransactionID)
}
