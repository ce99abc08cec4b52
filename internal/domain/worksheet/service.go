package worksheet

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
)

type WorkSheetService interface {
	Create(ctx context.Context, actor user.Actor, req CreateWorkSheetRequest) (WorkSheet, error)
	ListMine(ctx context.Context, actor user.Actor, email string, page pagination.Params) (ListMyWorkSheetResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateWorkSheetRequest) (WorkSheet, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
	ListAll(ctx context.Context, actor user.Actor, filter WorkSheetFilter) ([]WorkSheet, error)
}
