package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/auth"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/contact"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/report"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/payment"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidIDToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailRequired):
		BadRequest(w, "Email is required", nil)
	case errors.Is(err, user.ErrUserFired):
		Forbidden(w, "User has been fired")
	case errors.Is(err, user.ErrForbidden),
		errors.Is(err, user.ErrNotSelf),
		errors.Is(err, user.ErrRoleNotSelfAssigned),
		errors.Is(err, user.ErrCannotChangeOwnState):
		Forbidden(w, err.Error())

	// Work sheet domain errors
	case errors.Is(err, worksheet.ErrWorkSheetNotFound):
		NotFound(w, "Work sheet not found")
	case errors.Is(err, worksheet.ErrNotOwner):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayRollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrSalaryMismatch):
		BadRequestCode(w, "SALARY_MISMATCH", "Amount does not match the payroll salary")
	case errors.Is(err, payroll.ErrPayRollNotPending),
		errors.Is(err, payroll.ErrPayRollPeriodTaken),
		errors.Is(err, payroll.ErrEmployeeNotVerified),
		errors.Is(err, payroll.ErrTransactionRequired),
		errors.Is(err, payroll.ErrPaidToPending),
		errors.Is(err, payroll.ErrPaymentNotSettled):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrPaymentMismatch),
		errors.Is(err, payment.ErrPaymentNotFound):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPaymentNotConfigured):
		ServiceUnavailable(w, "PAYMENT_NOT_CONFIGURED", "Payment processor is not configured")
	case errors.Is(err, payroll.ErrInconsistentPayment):
		slog.Error("inconsistent payment state", "error", err)
		InternalServerError(w, "Payment recorded but payroll status could not be updated")

	// Transaction domain errors
	case errors.Is(err, transaction.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, transaction.ErrTransactionExists):
		Conflict(w, err.Error())

	// Report and contact errors
	case errors.Is(err, report.ErrHREmailRequired):
		BadRequest(w, "hrEmail is required", nil)
	case errors.Is(err, contact.ErrMessageTooLong):
		BadRequest(w, err.Error(), nil)

	// Infrastructure
	case errors.Is(err, pagination.ErrInvalidPageSize):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payment.ErrGateway):
		slog.Error("payment gateway error", "error", err)
		BadGateway(w, "Payment processor request failed")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
