package http

import (
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/report"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	AdminSummary(w http.ResponseWriter, r *http.Request)
	HRSummary(w http.ResponseWriter, r *http.Request)
	EmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
}

func NewDashboardHandler(reportService report.ReportService) DashboardHandler {
	return &dashboardHandlerImpl{reportService: reportService}
}

func (h *dashboardHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.AdminSummary(r.Context(), currentActor(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *dashboardHandlerImpl) HRSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.HRSummary(r.Context(), currentActor(r), chi.URLParam(r, "hrEmail"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *dashboardHandlerImpl) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.EmployeeDashboard(r.Context(), currentActor(r), chi.URLParam(r, "email"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dashboard)
}
