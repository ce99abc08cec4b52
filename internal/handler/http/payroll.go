package http

import (
	"encoding/json"
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type PayRollHandler interface {
	// Requests
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Inconsistencies(w http.ResponseWriter, r *http.Request)

	// Payment
	CreatePaymentIntent(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	RecordTransaction(w http.ResponseWriter, r *http.Request)
}

type payRollHandlerImpl struct {
	payRollService payroll.PayRollService
}

func NewPayRollHandler(payRollService payroll.PayRollService) PayRollHandler {
	return &payRollHandlerImpl{payRollService: payRollService}
}

// ========== REQUESTS ==========

func (h *payRollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayRollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.payRollService.Create(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll request created", created)
}

func (h *payRollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payRollService.Get(r.Context(), currentActor(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payRollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	q := r.URL.Query()
	filter := payroll.PayRollFilter{
		Status:        q.Get("status"),
		EmployeeEmail: q.Get("employeeEmail"),
		HREmail:       q.Get("hrEmail"),
	}

	result, err := h.payRollService.List(r.Context(), currentActor(r), filter, page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Paginated(w, result, page, result.TotalItems)
}

func (h *payRollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.payRollService.UpdateStatus(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll status updated", updated)
}

func (h *payRollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payRollService.Delete(r.Context(), currentActor(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll request deleted", nil)
}

func (h *payRollHandlerImpl) Inconsistencies(w http.ResponseWriter, r *http.Request) {
	found, err := h.payRollService.FindInconsistencies(r.Context(), currentActor(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// ========== PAYMENT ==========

func (h *payRollHandlerImpl) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req payroll.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	intent, err := h.payRollService.InitiatePayment(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, intent)
}

// Confirm takes the payroll id from the path.
func (h *payRollHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayRollID = chi.URLParam(r, "id")
	h.confirm(w, r, req)
}

// RecordTransaction takes the payroll id from the body.
func (h *payRollHandlerImpl) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	h.confirm(w, r, req)
}

func (h *payRollHandlerImpl) confirm(w http.ResponseWriter, r *http.Request, req payroll.ConfirmPaymentRequest) {
	recorded, err := h.payRollService.ConfirmPayment(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment recorded", recorded)
}
