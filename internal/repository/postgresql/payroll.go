package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payRollRepository struct {
	db *database.DB
}

func NewPayRollRepository(db *database.DB) payroll.PayRollRepository {
	return &payRollRepository{db: db}
}

const payRollColumns = `
	id, employee_id, employee_email, employee_name, hr_email, hr_name,
	salary, month, year, status, payrequest_at
`

func scanPayRoll(row pgx.Row) (payroll.PayRoll, error) {
	var p payroll.PayRoll
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.EmployeeEmail,
		&p.EmployeeName,
		&p.HREmail,
		&p.HRName,
		&p.Salary,
		&p.Month,
		&p.Year,
		&p.Status,
		&p.PayRequestAt,
	)
	return p, err
}

func collectPayRolls(rows pgx.Rows) ([]payroll.PayRoll, error) {
	defer rows.Close()

	payRolls := make([]payroll.PayRoll, 0)
	for rows.Next() {
		p, err := scanPayRoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payRolls = append(payRolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payrolls: %w", err)
	}
	return payRolls, nil
}

func (r *payRollRepository) Create(ctx context.Context, p payroll.PayRoll) (payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayRoll{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	query := `
		INSERT INTO pay_rolls (
			id, employee_id, employee_email, employee_name, hr_email, hr_name,
			salary, month, year, status, payrequest_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + payRollColumns

	created, err := scanPayRoll(q.QueryRow(ctx, query,
		id.String(),
		p.EmployeeID,
		p.EmployeeEmail,
		p.EmployeeName,
		p.HREmail,
		p.HRName,
		p.Salary,
		p.Month,
		p.Year,
		p.Status,
		p.PayRequestAt,
	))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return payroll.PayRoll{}, payroll.ErrPayRollPeriodTaken
		}
		return payroll.PayRoll{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	return created, nil
}

func (r *payRollRepository) getByID(ctx context.Context, id string, lock bool) (payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payRollColumns + ` FROM pay_rolls WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	p, err := scanPayRoll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayRoll{}, payroll.ErrPayRollNotFound
		}
		return payroll.PayRoll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

func (r *payRollRepository) GetByID(ctx context.Context, id string) (payroll.PayRoll, error) {
	return r.getByID(ctx, id, false)
}

func (r *payRollRepository) GetByIDForUpdate(ctx context.Context, id string) (payroll.PayRoll, error) {
	return r.getByID(ctx, id, true)
}

func (r *payRollRepository) ExistsForPeriod(ctx context.Context, employeeEmail, month, year string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM pay_rolls WHERE lower(employee_email) = lower($1) AND month = $2 AND year = $3
		)
	`, employeeEmail, month, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll period: %w", err)
	}
	return exists, nil
}

func (r *payRollRepository) List(ctx context.Context, filter payroll.PayRollFilter, page pagination.Params) ([]payroll.PayRoll, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM pay_rolls WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.EmployeeEmail != "" {
		baseQuery += fmt.Sprintf(" AND lower(employee_email) = lower($%d)", argIdx)
		args = append(args, filter.EmployeeEmail)
		argIdx++
	}
	if filter.HREmail != "" {
		baseQuery += fmt.Sprintf(" AND lower(hr_email) = lower($%d)", argIdx)
		args = append(args, filter.HREmail)
		argIdx++
	}

	// Count query
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY payrequest_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		payRollColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, page.Limit(), page.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}

	payRolls, err := collectPayRolls(rows)
	if err != nil {
		return nil, 0, err
	}
	return payRolls, total, nil
}

func (r *payRollRepository) UpdateStatus(ctx context.Context, id string, status payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE pay_rolls SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayRollNotFound
	}
	return nil
}

// Delete removes a payroll only while it is still pending, so a concurrent
// payment cannot lose its payroll.
func (r *payRollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pay_rolls WHERE id = $1 AND status = $2`, id, payroll.StatusPending)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return payroll.ErrPayRollNotPending
		}
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrPayRollNotPending
	}
	return nil
}

func (r *payRollRepository) FindInconsistencies(ctx context.Context) ([]payroll.Inconsistency, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT p.id, p.status, t.transaction_id
		FROM pay_rolls p
		LEFT JOIN transactions t ON t.pay_roll_id = p.id
		WHERE (p.status = 'paid' AND t.id IS NULL)
		   OR (p.status = 'pending' AND t.id IS NOT NULL)
		ORDER BY p.payrequest_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll inconsistencies: %w", err)
	}
	defer rows.Close()

	found := make([]payroll.Inconsistency, 0)
	for rows.Next() {
		var (
			inc           payroll.Inconsistency
			transactionID *string
		)
		if err := rows.Scan(&inc.PayRollID, &inc.Status, &transactionID); err != nil {
			return nil, fmt.Errorf("failed to scan payroll inconsistency: %w", err)
		}
		if transactionID != nil {
			inc.HasTransaction = true
			inc.TransactionID = *transactionID
		}
		found = append(found, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll inconsistencies: %w", err)
	}
	return found, nil
}
