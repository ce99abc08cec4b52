package transaction

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type TransactionService interface {
	ListForEmployee(ctx context.Context, actor user.Actor, email string, page pagination.Params) (ListTransactionResponse, error)
	ListAll(ctx context.Context, actor user.Actor, page pagination.Params) (ListTransactionResponse, error)
}
