package transaction

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type TransactionRepository interface {
	// Create fails with ErrTransactionExists when the external reference or the
	// payroll already has a transaction.
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByPayRollID(ctx context.Context, payRollID string) (Transaction, error)
	ExistsForPayRoll(ctx context.Context, payRollID string) (bool, error)
	ListByEmployee(ctx context.Context, email string, page pagination.Params) ([]Transaction, int64, error)
	ListAll(ctx context.Context, page pagination.Params) ([]Transaction, int64, error)
	Delete(ctx context.Context, id string) error
}
