package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) transaction.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `
	id, transaction_id, amount, paid_at, pay_roll_id, payment_method,
	pay_for_month, pay_for_year, employee_email, employee_name
`

func scanTransaction(row pgx.Row) (transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.Amount,
		&t.PaidAt,
		&t.PayRollID,
		&t.PaymentMethod,
		&t.PayForMonth,
		&t.PayForYear,
		&t.EmployeeEmail,
		&t.EmployeeName,
	)
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]transaction.Transaction, error) {
	defer rows.Close()

	txs := make([]transaction.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) Create(ctx context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	query := `
		INSERT INTO transactions (
			id, transaction_id, amount, paid_at, pay_roll_id, payment_method,
			pay_for_month, pay_for_year, employee_email, employee_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(q.QueryRow(ctx, query,
		id.String(),
		t.TransactionID,
		t.Amount,
		t.PaidAt,
		t.PayRollID,
		t.PaymentMethod,
		t.PayForMonth,
		t.PayForYear,
		t.EmployeeEmail,
		t.EmployeeName,
	))
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return transaction.Transaction{}, transaction.ErrTransactionExists
		case pgForeignKeyViolation:
			return transaction.Transaction{}, payroll.ErrPayRollNotFound
		}
		return transaction.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

func (r *transactionRepository) GetByPayRollID(ctx context.Context, payRollID string) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTransaction(q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE pay_roll_id = $1`, payRollID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.Transaction{}, transaction.ErrTransactionNotFound
		}
		return transaction.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (r *transactionRepository) ExistsForPayRoll(ctx context.Context, payRollID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE pay_roll_id = $1)`, payRollID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction: %w", err)
	}
	return exists, nil
}

func (r *transactionRepository) list(ctx context.Context, email string, page pagination.Params) ([]transaction.Transaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	args := []interface{}{}
	if email != "" {
		where = " WHERE lower(employee_email) = lower($1)"
		args = append(args, email)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY paid_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	txs, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *transactionRepository) ListByEmployee(ctx context.Context, email string, page pagination.Params) ([]transaction.Transaction, int64, error) {
	return r.list(ctx, email, page)
}

func (r *transactionRepository) ListAll(ctx context.Context, page pagination.Params) ([]transaction.Transaction, int64, error) {
	return r.list(ctx, "", page)
}

// Delete exists only to compensate a payment whose payroll could not be
// marked paid.
func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}
