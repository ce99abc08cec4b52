package postgresql

import (
	"context"
	"fmt"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/report"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) PayRollSnapshot(ctx context.Context, hrEmail string) ([]payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payRollColumns + ` FROM pay_rolls`
	args := []interface{}{}
	if hrEmail != "" {
		query += ` WHERE lower(hr_email) = lower($1)`
		args = append(args, hrEmail)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll snapshot: %w", err)
	}
	return collectPayRolls(rows)
}

func (r *reportRepository) TransactionSnapshot(ctx context.Context, employeeEmail string) ([]transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []interface{}{}
	if employeeEmail != "" {
		query += ` WHERE lower(employee_email) = lower($1)`
		args = append(args, employeeEmail)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction snapshot: %w", err)
	}
	return collectTransactions(rows)
}

func (r *reportRepository) WorkSheetSnapshot(ctx context.Context, employeeEmail string) ([]worksheet.WorkSheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSheetColumns + ` FROM work_sheets`
	args := []interface{}{}
	if employeeEmail != "" {
		query += ` WHERE lower(employee_email) = lower($1)`
		args = append(args, employeeEmail)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load work sheet snapshot: %w", err)
	}
	return collectWorkSheets(rows)
}
