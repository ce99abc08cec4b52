package http

import (
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type TransactionHandler interface {
	ListForEmployee(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type transactionHandlerImpl struct {
	transactionService transaction.TransactionService
}

func NewTransactionHandler(transactionService transaction.TransactionService) TransactionHandler {
	return &transactionHandlerImpl{transactionService: transactionService}
}

func (h *transactionHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.transactionService.ListForEmployee(r.Context(), currentActor(r), chi.URLParam(r, "email"), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Paginated(w, result, page, result.TotalItems)
}

func (h *transactionHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.transactionService.ListAll(r.Context(), currentActor(r), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Paginated(w, result, page, result.TotalItems)
}
