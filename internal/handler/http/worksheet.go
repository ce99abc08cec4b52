package http

import (
	"encoding/json"
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type WorkSheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type workSheetHandlerImpl struct {
	workSheetService worksheet.WorkSheetService
}

func NewWorkSheetHandler(workSheetService worksheet.WorkSheetService) WorkSheetHandler {
	return &workSheetHandlerImpl{workSheetService: workSheetService}
}

func (h *workSheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksheet.CreateWorkSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.workSheetService.Create(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Work sheet created", created)
}

func (h *workSheetHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workSheetService.ListMine(r.Context(), currentActor(r), chi.URLParam(r, "email"), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Paginated(w, result, page, result.TotalItems)
}

func (h *workSheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worksheet.UpdateWorkSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.workSheetService.Update(r.Context(), currentActor(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Work sheet updated", updated)
}

func (h *workSheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workSheetService.Delete(r.Context(), currentActor(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Work sheet deleted", nil)
}

// ListAll is unpaginated; HR reads the whole filtered set.
func (h *workSheetHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := worksheet.ParseWorkSheetFilter(q.Get("employee"), q.Get("search"), q.Get("month"), q.Get("year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sheets, err := h.workSheetService.ListAll(r.Context(), currentActor(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheets)
}
