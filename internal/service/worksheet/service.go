package worksheet

import (
	"context"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

type WorkSheetServiceImpl struct {
	workSheetRepo worksheet.WorkSheetRepository
	userRepo      user.UserRepository
}

func NewWorkSheetService(workSheetRepo worksheet.WorkSheetRepository, userRepo user.UserRepository) worksheet.WorkSheetService {
	return &WorkSheetServiceImpl{
		workSheetRepo: workSheetRepo,
		userRepo:      userRepo,
	}
}

// Create logs a work session for the caller. The owner fields always come
// from the caller, never from the request.
func (s *WorkSheetServiceImpl) Create(ctx context.Context, actor user.Actor, req worksheet.CreateWorkSheetRequest) (worksheet.WorkSheet, error) {
	if !actor.Can(user.PermissionWorkSheetCreate) {
		return worksheet.WorkSheet{}, user.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return worksheet.WorkSheet{}, err
	}

	owner, err := s.userRepo.GetByEmail(ctx, actor.Email)
	if err != nil {
		return worksheet.WorkSheet{}, err
	}

	return s.workSheetRepo.Create(ctx, worksheet.WorkSheet{
		EmployeeEmail: owner.Email,
		EmployeeName:  owner.Name,
		Task:          worksheet.Task(req.Task),
		Hour:          req.Hour,
		Date:          req.Date,
	})
}

func (s *WorkSheetServiceImpl) ListMine(ctx context.Context, actor user.Actor, email string, page pagination.Params) (worksheet.ListMyWorkSheetResponse, error) {
	email = user.NormalizeEmail(email)
	if !actor.Is(email) && !actor.Can(user.PermissionWorkSheetViewAll) {
		return worksheet.ListMyWorkSheetResponse{}, user.ErrForbidden
	}

	sheets, total, err := s.workSheetRepo.ListByEmployee(ctx, email, page)
	if err != nil {
		return worksheet.ListMyWorkSheetResponse{}, err
	}
	return worksheet.ListMyWorkSheetResponse{MyEntries: sheets, TotalItems: total}, nil
}

func (s *WorkSheetServiceImpl) Update(ctx context.Context, actor user.Actor, req worksheet.UpdateWorkSheetRequest) (worksheet.WorkSheet, error) {
	if err := req.Validate(); err != nil {
		return worksheet.WorkSheet{}, err
	}
	if err := s.requireOwner(ctx, actor, req.ID); err != nil {
		return worksheet.WorkSheet{}, err
	}
	return s.workSheetRepo.Update(ctx, req)
}

func (s *WorkSheetServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if !validator.IsValidUUID(id) {
		return worksheet.ErrWorkSheetNotFound
	}
	if err := s.requireOwner(ctx, actor, id); err != nil {
		return err
	}
	return s.workSheetRepo.Delete(ctx, id)
}

func (s *WorkSheetServiceImpl) requireOwner(ctx context.Context, actor user.Actor, id string) error {
	existing, err := s.workSheetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Is(existing.EmployeeEmail) {
		return worksheet.ErrNotOwner
	}
	return nil
}

// ListAll returns every entry matching filter, unpaginated. Name and search
// are narrowed in the query; month and year need the parsed date.
func (s *WorkSheetServiceImpl) ListAll(ctx context.Context, actor user.Actor, filter worksheet.WorkSheetFilter) ([]worksheet.WorkSheet, error) {
	if !actor.Can(user.PermissionWorkSheetViewAll) {
		return nil, user.ErrForbidden
	}

	sheets, err := s.workSheetRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	matched := make([]worksheet.WorkSheet, 0, len(sheets))
	for _, w := range sheets {
		if filter.Match(w) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}
