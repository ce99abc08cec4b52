package worksheet

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type WorkSheetRepository interface {
	Create(ctx context.Context, sheet WorkSheet) (WorkSheet, error)
	GetByID(ctx context.Context, id string) (WorkSheet, error)
	ListByEmployee(ctx context.Context, email string, page pagination.Params) ([]WorkSheet, int64, error)
	// ListAll applies only the equality and search parts of filter.
	ListAll(ctx context.Context, filter WorkSheetFilter) ([]WorkSheet, error)
	Update(ctx context.Context, req UpdateWorkSheetRequest) (WorkSheet, error)
	Delete(ctx context.Context, id string) error
}
