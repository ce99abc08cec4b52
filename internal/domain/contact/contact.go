package contact

import (
	"context"
	"errors"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

var ErrMessageTooLong = errors.New("message must not exceed 5000 characters")

// Contact is a message left by an anonymous visitor.
type Contact struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r *CreateContactRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	} else if len(r.Message) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: ErrMessageTooLong.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListContactResponse struct {
	Messages   []Contact `json:"messages"`
	TotalItems int64     `json:"totalItems"`
}

type ContactRepository interface {
	Create(ctx context.Context, c Contact) (Contact, error)
	List(ctx context.Context, page pagination.Params) ([]Contact, int64, error)
}

type ContactService interface {
	Create(ctx context.Context, req CreateContactRequest) (Contact, error)
	List(ctx context.Context, actor user.Actor, page pagination.Params) (ListContactResponse, error)
}
