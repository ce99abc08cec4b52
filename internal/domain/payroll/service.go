package payroll

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type PayRollService interface {
	Create(ctx context.Context, actor user.Actor, req CreatePayRollRequest) (PayRoll, error)
	Get(ctx context.Context, actor user.Actor, id string) (PayRoll, error)
	List(ctx context.Context, actor user.Actor, filter PayRollFilter, page pagination.Params) (ListPayRollResponse, error)
	UpdateStatus(ctx context.Context, actor user.Actor, req UpdateStatusRequest) (PayRoll, error)
	Delete(ctx context.Context, actor user.Actor, id string) error

	InitiatePayment(ctx context.Context, actor user.Actor, req PaymentIntentRequest) (PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, actor user.Actor, req ConfirmPaymentRequest) (transaction.Transaction, error)
	FindInconsistencies(ctx context.Context, actor user.Actor) ([]Inconsistency, error)
}
