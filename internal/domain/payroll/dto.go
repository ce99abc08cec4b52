package payroll

import (
	"strings"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreatePayRollRequest is submitted by HR. The HR fields are taken from the
// caller, the employee fields from the stored user.
type CreatePayRollRequest struct {
	EmployeeEmail string          `json:"employeeEmail"`
	Salary        decimal.Decimal `json:"salary"`
	Month         string          `json:"month"`
	Year          string          `json:"year"`
}

func (r *CreatePayRollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeEmail",
			Message: "employeeEmail must be a valid email address",
		})
	}
	if !r.Salary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must be greater than 0",
		})
	}
	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	}
	if validator.IsEmpty(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Normalize trims the period so "MAR " and "MAR" are the same request.
func (r *CreatePayRollRequest) Normalize() {
	r.EmployeeEmail = user.NormalizeEmail(r.EmployeeEmail)
	r.Month = strings.TrimSpace(r.Month)
	r.Year = strings.TrimSpace(r.Year)
}

type PayRollFilter struct {
	Status        string
	EmployeeEmail string
	HREmail       string
}

func (f PayRollFilter) Validate() error {
	if f.Status != "" && !validator.IsInSlice(f.Status, ValidStatuses()) {
		return validator.ValidationErrors{{Field: "status", Message: "status must be pending or paid"}}
	}
	return nil
}

type ListPayRollResponse struct {
	PayRolls   []PayRoll `json:"payRolls"`
	TotalItems int64     `json:"totalItems"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid id"})
	}
	if !validator.IsInSlice(r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending or paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentIntentRequest struct {
	PayRollID string          `json:"payRollId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r *PaymentIntentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PayRollID) {
		errs = append(errs, validator.ValidationError{Field: "payRollId", Message: "invalid payroll id"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	IntentID     string `json:"intentId"`
	Provider     string `json:"provider"`
	CheckoutURL  string `json:"checkoutUrl,omitempty"`
}

// ConfirmPaymentRequest records a payment the processor reported successful.
// Period and employee fields are copied from the payroll, not the client.
type ConfirmPaymentRequest struct {
	PayRollID     string          `json:"payRollId"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

func (r *ConfirmPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PayRollID) {
		errs = append(errs, validator.ValidationError{Field: "payRollId", Message: "invalid payroll id"})
	}
	if validator.IsEmpty(r.TransactionID) {
		errs = append(errs, validator.ValidationError{Field: "transactionId", Message: "transactionId is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
