package report

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
)

type ReportService interface {
	AdminSummary(ctx context.Context, actor user.Actor) (AdminSummary, error)
	HRSummary(ctx context.Context, actor user.Actor, hrEmail string) (HRSummary, error)
	EmployeeDashboard(ctx context.Context, actor user.Actor, email string) (EmployeeDashboard, error)
	// Invalidate drops cached summaries after payments change.
	Invalidate(ctx context.Context)
}
