package transaction

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type TransactionServiceImpl struct {
	transactionRepo transaction.TransactionRepository
}

func NewTransactionService(transactionRepo transaction.TransactionRepository) transaction.TransactionService {
	return &TransactionServiceImpl{transactionRepo: transactionRepo}
}

// ListForEmployee returns the payments received by email, newest first.
func (s *TransactionServiceImpl) ListForEmployee(ctx context.Context, actor user.Actor, email string, page pagination.Params) (transaction.ListTransactionResponse, error) {
	email = user.NormalizeEmail(email)
	if !actor.Is(email) && !actor.Can(user.PermissionPayRollViewAll) {
		return transaction.ListTransactionResponse{}, user.ErrForbidden
	}
	txs, total, err := s.transactionRepo.ListByEmployee(ctx, email, page)
	if err != nil {
		return transaction.ListTransactionResponse{}, err
	}
	return transaction.ListTransactionResponse{Transactions: txs, TotalItems: total}, nil
}

func (s *TransactionServiceImpl) ListAll(ctx context.Context, actor user.Actor, page pagination.Params) (transaction.ListTransactionResponse, error) {
	if !actor.Can(user.PermissionPayRollPay) {
		return transaction.ListTransactionResponse{}, user.ErrForbidden
	}
	txs, total, err := s.transactionRepo.ListAll(ctx, page)
	if err != nil {
		return transaction.ListTransactionResponse{}, err
	}
	return transaction.ListTransactionResponse{Transactions: txs, TotalItems: total}, nil
}
