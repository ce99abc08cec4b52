package http

import (
	"encoding/json"
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/contact"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type ContactHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type contactHandlerImpl struct {
	contactService contact.ContactService
}

func NewContactHandler(contactService contact.ContactService) ContactHandler {
	return &contactHandlerImpl{contactService: contactService}
}

func (h *contactHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contact.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.contactService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Message received", created)
}

func (h *contactHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.contactService.List(r.Context(), currentActor(r), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Paginated(w, result, page, result.TotalItems)
}
