package payroll

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type PayRollRepository interface {
	Create(ctx context.Context, p PayRoll) (PayRoll, error)
	GetByID(ctx context.Context, id string) (PayRoll, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (PayRoll, error)
	ExistsForPeriod(ctx context.Context, employeeEmail, month, year string) (bool, error)
	List(ctx context.Context, filter PayRollFilter, page pagination.Params) ([]PayRoll, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	FindInconsistencies(ctx context.Context) ([]Inconsistency, error)
}
