package report

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
)

// ReportRepository loads the rows a summary is computed from. An empty
// email loads every row.
type ReportRepository interface {
	PayRollSnapshot(ctx context.Context, hrEmail string) ([]payroll.PayRoll, error)
	TransactionSnapshot(ctx context.Context, employeeEmail string) ([]transaction.Transaction, error)
	WorkSheetSnapshot(ctx context.Context, employeeEmail string) ([]worksheet.WorkSheet, error)
}
