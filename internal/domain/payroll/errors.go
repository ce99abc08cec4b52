package payroll

import "errors"

var (
	ErrPayRollNotFound      = errors.New("payroll not found")
	ErrPayRollNotPending    = errors.New("payroll is not pending")
	ErrPayRollPeriodTaken   = errors.New("payroll already exists for this employee and period")
	ErrSalaryMismatch       = errors.New("salary amount mismatch")
	ErrEmployeeNotVerified  = errors.New("employee is not verified")
	ErrTransactionRequired  = errors.New("payroll can only be marked paid after its transaction is recorded")
	ErrPaidToPending        = errors.New("a paid payroll cannot return to pending")
	ErrPaymentNotConfigured = errors.New("payment processor is not configured")
	ErrInconsistentPayment  = errors.New("payment recorded but payroll status could not be reconciled")
	ErrPaymentNotSettled    = errors.New("payment has not succeeded at the processor")
	ErrPaymentMismatch      = errors.New("payment does not match this payroll")
)
