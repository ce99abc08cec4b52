package user

import (
	"strings"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RegisterRequest is the profile the client submits after its first
// sign-in with the identity provider.
type RegisterRequest struct {
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	Designation    string           `json:"designation"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	BankAccount    string           `json:"bank_account"`
	ProfileImage   string           `json:"profileImage"`
	CreationTime   *time.Time       `json:"creationTime,omitempty"`
	LastSignInTime *time.Time       `json:"lastSignInTime,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Role != "" && !validator.IsInSlice(r.Role, ValidRoles()) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "invalid role",
		})
	}

	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RegisterResult carries either the newly created user or the signal that
// the email was already registered.
type RegisterResult struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type StatusResponse struct {
	Status *Status `json:"status"`
}

type LoginUpdateRequest struct {
	Email          string     `json:"email"`
	LastSignInTime *time.Time `json:"lastSignInTime"`
}

func (r *LoginUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is required"})
	}
	if r.LastSignInTime == nil {
		errs = append(errs, validator.ValidationError{Field: "lastSignInTime", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VerifyRequest struct {
	ID         string `json:"-"`
	IsVerified *bool  `json:"isVerified"`
}

func (r *VerifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid id"})
	}
	if r.IsVerified == nil {
		errs = append(errs, validator.ValidationError{Field: "isVerified", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateUserRequest is the admin edit of any user field. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name,omitempty"`
	Designation  *string          `json:"designation,omitempty"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
	Role         *string          `json:"role,omitempty"`
	Status       *string          `json:"status,omitempty"`
	BankAccount  *string          `json:"bank_account,omitempty"`
	ProfileImage *string          `json:"profileImage,omitempty"`
	IsVerified   *bool            `json:"isVerified,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid id"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, ValidRoles()) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "invalid role"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	if r.IsEmpty() {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Designation == nil && r.Salary == nil && r.Role == nil &&
		r.Status == nil && r.BankAccount == nil && r.ProfileImage == nil && r.IsVerified == nil
}

type UserFilter struct {
	IsVerified *bool
}

// ParseUserFilter treats only the literal "true" as verified. Any other
// non-empty value means unverified.
func ParseUserFilter(isVerified string) UserFilter {
	var f UserFilter
	if isVerified = strings.TrimSpace(isVerified); isVerified != "" {
		v := isVerified == "true"
		f.IsVerified = &v
	}
	return f
}

type ListUserResponse struct {
	Employees  []User `json:"employees"`
	TotalItems int64  `json:"totalItems"`
}
