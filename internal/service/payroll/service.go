package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/payment"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

// SummaryInvalidator drops cached dashboard figures once a payment lands.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context)
}

type PayRollServiceImpl struct {
	payRollRepo     payroll.PayRollRepository
	transactionRepo transaction.TransactionRepository
	userRepo        user.UserRepository
	transactor      database.Transactor
	gateway         payment.Gateway
	summaries       SummaryInvalidator
	currency        string
	now             func() time.Time
}

// NewPayRollService wires the coordinator. A nil transactor selects the
// compensating confirm path; a nil gateway disables payment intents.
func NewPayRollService(
	payRollRepo payroll.PayRollRepository,
	transactionRepo transaction.TransactionRepository,
	userRepo user.UserRepository,
	transactor database.Transactor,
	gateway payment.Gateway,
	summaries SummaryInvalidator,
	currency string,
) payroll.PayRollService {
	return &PayRollServiceImpl{
		payRollRepo:     payRollRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		transactor:      transactor,
		gateway:         gateway,
		summaries:       summaries,
		currency:        currency,
		now:             time.Now,
	}
}

// ========== REQUESTS ==========

func (s *PayRollServiceImpl) Create(ctx context.Context, actor user.Actor, req payroll.CreatePayRollRequest) (payroll.PayRoll, error) {
	if !actor.Can(user.PermissionPayRollCreate) {
		return payroll.PayRoll{}, user.ErrForbidden
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return payroll.PayRoll{}, err
	}

	employee, err := s.userRepo.GetByEmail(ctx, req.EmployeeEmail)
	if err != nil {
		return payroll.PayRoll{}, err
	}
	if !employee.CanBePaid() {
		if employee.IsFired() {
			return payroll.PayRoll{}, user.ErrUserFired
		}
		return payroll.PayRoll{}, payroll.ErrEmployeeNotVerified
	}

	taken, err := s.payRollRepo.ExistsForPeriod(ctx, employee.Email, req.Month, req.Year)
	if err != nil {
		return payroll.PayRoll{}, fmt.Errorf("failed to check payroll period: %w", err)
	}
	if taken {
		return payroll.PayRoll{}, payroll.ErrPayRollPeriodTaken
	}

	hr, err := s.userRepo.GetByEmail(ctx, actor.Email)
	if err != nil {
		return payroll.PayRoll{}, fmt.Errorf("failed to load requesting hr: %w", err)
	}

	created, err := s.payRollRepo.Create(ctx, payroll.PayRoll{
		EmployeeID:    employee.ID,
		EmployeeEmail: employee.Email,
		EmployeeName:  employee.Name,
		HREmail:       hr.Email,
		HRName:        hr.Name,
		Salary:        req.Salary,
		Month:         req.Month,
		Year:          req.Year,
		Status:        payroll.StatusPending,
		PayRequestAt:  s.now().UTC(),
	})
	if err != nil {
		return payroll.PayRoll{}, err
	}
	s.invalidateSummaries(ctx)
	return created, nil
}

func (s *PayRollServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (payroll.PayRoll, error) {
	if !actor.Can(user.PermissionPayRollViewAll) {
		return payroll.PayRoll{}, user.ErrForbidden
	}
	if !validator.IsValidUUID(id) {
		return payroll.PayRoll{}, payroll.ErrPayRollNotFound
	}
	return s.payRollRepo.GetByID(ctx, id)
}

func (s *PayRollServiceImpl) List(ctx context.Context, actor user.Actor, filter payroll.PayRollFilter, page pagination.Params) (payroll.ListPayRollResponse, error) {
	if !actor.Can(user.PermissionPayRollViewAll) {
		return payroll.ListPayRollResponse{}, user.ErrForbidden
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListPayRollResponse{}, err
	}
	filter.EmployeeEmail = user.NormalizeEmail(filter.EmployeeEmail)
	filter.HREmail = user.NormalizeEmail(filter.HREmail)

	payRolls, total, err := s.payRollRepo.List(ctx, filter, page)
	if err != nil {
		return payroll.ListPayRollResponse{}, err
	}
	return payroll.ListPayRollResponse{PayRolls: payRolls, TotalItems: total}, nil
}

// UpdateStatus only moves a payroll forward, and only once its transaction
// exists. Setting the current status again is a no-op.
func (s *PayRollServiceImpl) UpdateStatus(ctx context.Context, actor user.Actor, req payroll.UpdateStatusRequest) (payroll.PayRoll, error) {
	if !actor.Can(user.PermissionPayRollPay) {
		return payroll.PayRoll{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return payroll.PayRoll{}, err
	}

	current, err := s.payRollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayRoll{}, err
	}

	target := payroll.Status(req.Status)
	if current.Status == target {
		return current, nil
	}
	if target == payroll.StatusPending {
		return payroll.PayRoll{}, payroll.ErrPaidToPending
	}

	paid, err := s.transactionRepo.ExistsForPayRoll(ctx, current.ID)
	if err != nil {
		return payroll.PayRoll{}, fmt.Errorf("failed to check transaction: %w", err)
	}
	if !paid {
		return payroll.PayRoll{}, payroll.ErrTransactionRequired
	}

	if err := s.payRollRepo.UpdateStatus(ctx, current.ID, target); err != nil {
		return payroll.PayRoll{}, err
	}
	current.Status = target
	s.invalidateSummaries(ctx)
	return current, nil
}

func (s *PayRollServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if !actor.Can(user.PermissionPayRollViewAll) {
		return user.ErrForbidden
	}
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayRollNotFound
	}
	if err := s.payRollRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}

func (s *PayRollServiceImpl) FindInconsistencies(ctx context.Context, actor user.Actor) ([]payroll.Inconsistency, error) {
	if !actor.Can(user.PermissionPayRollPay) {
		return nil, user.ErrForbidden
	}
	found, err := s.payRollRepo.FindInconsistencies(ctx)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		slog.Warn("payroll inconsistencies detected", "count", len(found))
	}
	return found, nil
}

// ========== PAYMENT ==========

// InitiatePayment asks the processor for an intent covering the payroll
// salary. No intent is created unless the payroll is pending and the
// requested amount equals the salary exactly.
func (s *PayRollServiceImpl) InitiatePayment(ctx context.Context, actor user.Actor, req payroll.PaymentIntentRequest) (payroll.PaymentIntentResponse, error) {
	if !actor.Can(user.PermissionPayRollPay) {
		return payroll.PaymentIntentResponse{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return payroll.PaymentIntentResponse{}, err
	}

	p, err := s.payRollRepo.GetByID(ctx, req.PayRollID)
	if err != nil {
		return payroll.PaymentIntentResponse{}, err
	}
	if !p.IsPending() {
		return payroll.PaymentIntentResponse{}, payroll.ErrPayRollNotPending
	}
	if !p.AmountMatches(req.Amount) {
		return payroll.PaymentIntentResponse{}, payroll.ErrSalaryMismatch
	}
	if s.gateway == nil {
		return payroll.PaymentIntentResponse{}, payroll.ErrPaymentNotConfigured
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Reference:   p.ID,
		Amount:      p.Salary,
		Currency:    s.currency,
		Description: fmt.Sprintf("Salary %s %s for %s", p.Month, p.Year, p.EmployeeEmail),
		PayerEmail:  actor.Email,
	})
	if err != nil {
		slog.Error("payment intent failed", "payroll_id", p.ID, "provider", s.gateway.Provider(), "error", err)
		return payroll.PaymentIntentResponse{}, err
	}

	return payroll.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
		Provider:     s.gateway.Provider(),
		CheckoutURL:  intent.CheckoutURL,
	}, nil
}

// ConfirmPayment records the transaction and marks the payroll paid as one
// unit. Either both writes are visible afterwards or neither is. When a
// processor is configured the reported payment is read back from it first.
func (s *PayRollServiceImpl) ConfirmPayment(ctx context.Context, actor user.Actor, req payroll.ConfirmPaymentRequest) (transaction.Transaction, error) {
	if !actor.Can(user.PermissionPayRollPay) {
		return transaction.Transaction{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return transaction.Transaction{}, err
	}
	if s.gateway != nil {
		p, err := s.payRollRepo.GetByID(ctx, req.PayRollID)
		if err != nil {
			return transaction.Transaction{}, err
		}
		if err := checkPayable(p, req); err != nil {
			return transaction.Transaction{}, err
		}
		if err := s.verifyPayment(ctx, req); err != nil {
			return transaction.Transaction{}, err
		}
	}

	var (
		recorded transaction.Transaction
		err      error
	)
	if s.transactor != nil {
		err = s.transactor.WithinTx(ctx, func(txCtx context.Context) error {
			p, err := s.payRollRepo.GetByIDForUpdate(txCtx, req.PayRollID)
			if err != nil {
				return err
			}
			if err := checkPayable(p, req); err != nil {
				return err
			}
			recorded, err = s.transactionRepo.Create(txCtx, s.newTransaction(p, req))
			if err != nil {
				return err
			}
			return s.payRollRepo.UpdateStatus(txCtx, p.ID, payroll.StatusPaid)
		})
	} else {
		recorded, err = s.confirmWithCompensation(ctx, req)
	}
	if err != nil {
		return transaction.Transaction{}, err
	}

	slog.Info("payroll paid",
		"payroll_id", recorded.PayRollID,
		"transaction_id", recorded.TransactionID,
		"amount", recorded.Amount.String(),
	)
	s.invalidateSummaries(ctx)
	return recorded, nil
}

// confirmWithCompensation is the confirm path for stores without
// transactions: insert, flip, and delete the insert if the flip fails.
func (s *PayRollServiceImpl) confirmWithCompensation(ctx context.Context, req payroll.ConfirmPaymentRequest) (transaction.Transaction, error) {
	p, err := s.payRollRepo.GetByID(ctx, req.PayRollID)
	if err != nil {
		return transaction.Transaction{}, err
	}
	if err := checkPayable(p, req); err != nil {
		return transaction.Transaction{}, err
	}

	recorded, err := s.transactionRepo.Create(ctx, s.newTransaction(p, req))
	if err != nil {
		return transaction.Transaction{}, err
	}

	flipErr := s.payRollRepo.UpdateStatus(ctx, p.ID, payroll.StatusPaid)
	if flipErr == nil {
		return recorded, nil
	}

	slog.Warn("payroll status update failed, removing transaction",
		"payroll_id", p.ID,
		"transaction_id", recorded.TransactionID,
		"error", flipErr,
	)
	if undoErr := s.transactionRepo.Delete(ctx, recorded.ID); undoErr != nil {
		slog.Error("payment left inconsistent",
			"payroll_id", p.ID,
			"transaction_id", recorded.TransactionID,
			"status_error", flipErr,
			"compensation_error", undoErr,
		)
		return transaction.Transaction{}, fmt.Errorf("%w: %w", payroll.ErrInconsistentPayment, errors.Join(flipErr, undoErr))
	}
	return transaction.Transaction{}, fmt.Errorf("failed to mark payroll paid: %w", flipErr)
}

func (s *PayRollServiceImpl) invalidateSummaries(ctx context.Context) {
	if s.summaries != nil {
		s.summaries.Invalidate(ctx)
	}
}

// verifyPayment checks the processor's record of req.TransactionID: it must
// have succeeded, for this payroll, for the confirmed amount.
func (s *PayRollServiceImpl) verifyPayment(ctx context.Context, req payroll.ConfirmPaymentRequest) error {
	paid, err := s.gateway.VerifyPayment(ctx, req.TransactionID)
	if err != nil {
		return err
	}
	if !paid.Succeeded {
		slog.Warn("confirm rejected, payment not settled", "payroll_id", req.PayRollID, "transaction_id", req.TransactionID)
		return payroll.ErrPaymentNotSettled
	}
	if paid.Reference != req.PayRollID || payment.MinorUnits(paid.Amount) != payment.MinorUnits(req.Amount) {
		slog.Warn("confirm rejected, payment mismatch",
			"payroll_id", req.PayRollID,
			"transaction_id", req.TransactionID,
			"payment_reference", paid.Reference,
			"payment_amount", paid.Amount.String(),
		)
		return payroll.ErrPaymentMismatch
	}
	return nil
}

func checkPayable(p payroll.PayRoll, req payroll.ConfirmPaymentRequest) error {
	if !p.IsPending() {
		return payroll.ErrPayRollNotPending
	}
	if !p.AmountMatches(req.Amount) {
		return payroll.ErrSalaryMismatch
	}
	return nil
}

func (s *PayRollServiceImpl) newTransaction(p payroll.PayRoll, req payroll.ConfirmPaymentRequest) transaction.Transaction {
	paidAt := s.now().UTC()
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}
	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}
	return transaction.Transaction{
		TransactionID: req.TransactionID,
		Amount:        p.Salary,
		PaidAt:        paidAt,
		PayRollID:     p.ID,
		PaymentMethod: method,
		PayForMonth:   p.Month,
		PayForYear:    p.Year,
		EmployeeEmail: p.EmployeeEmail,
		EmployeeName:  p.EmployeeName,
	}
}
