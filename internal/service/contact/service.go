package contact

import (
	"context"
	"strings"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/contact"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type ContactServiceImpl struct {
	contactRepo contact.ContactRepository
}

func NewContactService(contactRepo contact.ContactRepository) contact.ContactService {
	return &ContactServiceImpl{contactRepo: contactRepo}
}

// Create stores a message from an unauthenticated visitor.
func (s *ContactServiceImpl) Create(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return contact.Contact{}, err
	}
	return s.contactRepo.Create(ctx, contact.Contact{
		Email:   req.Email,
		Message: strings.TrimSpace(req.Message),
	})
}

func (s *ContactServiceImpl) List(ctx context.Context, actor user.Actor, page pagination.Params) (contact.ListContactResponse, error) {
	if !actor.Can(user.PermissionContactView) {
		return contact.ListContactResponse{}, user.ErrForbidden
	}
	messages, total, err := s.contactRepo.List(ctx, page)
	if err != nil {
		return contact.ListContactResponse{}, err
	}
	return contact.ListContactResponse{Messages: messages, TotalItems: total}, nil
}
