package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type workSheetRepository struct {
	db *database.DB
}

func NewWorkSheetRepository(db *database.DB) worksheet.WorkSheetRepository {
	return &workSheetRepository{db: db}
}

const workSheetColumns = `id, employee_email, employee_name, task, hour, date, created_at`

func scanWorkSheet(row pgx.Row) (worksheet.WorkSheet, error) {
	var w worksheet.WorkSheet
	err := row.Scan(&w.ID, &w.EmployeeEmail, &w.EmployeeName, &w.Task, &w.Hour, &w.Date, &w.CreatedAt)
	return w, err
}

func collectWorkSheets(rows pgx.Rows) ([]worksheet.WorkSheet, error) {
	defer rows.Close()

	sheets := make([]worksheet.WorkSheet, 0)
	for rows.Next() {
		w, err := scanWorkSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work sheet: %w", err)
		}
		sheets = append(sheets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work sheets: %w", err)
	}
	return sheets, nil
}

func (r *workSheetRepository) Create(ctx context.Context, sheet worksheet.WorkSheet) (worksheet.WorkSheet, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return worksheet.WorkSheet{}, fmt.Errorf("failed to generate work sheet id: %w", err)
	}

	query := `
		INSERT INTO work_sheets (id, employee_email, employee_name, task, hour, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + workSheetColumns

	created, err := scanWorkSheet(q.QueryRow(ctx, query,
		id.String(), sheet.EmployeeEmail, sheet.EmployeeName, sheet.Task, sheet.Hour, sheet.Date,
	))
	if err != nil {
		return worksheet.WorkSheet{}, fmt.Errorf("failed to create work sheet: %w", err)
	}
	return created, nil
}

func (r *workSheetRepository) GetByID(ctx context.Context, id string) (worksheet.WorkSheet, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorkSheet(q.QueryRow(ctx, `SELECT `+workSheetColumns+` FROM work_sheets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksheet.WorkSheet{}, worksheet.ErrWorkSheetNotFound
		}
		return worksheet.WorkSheet{}, fmt.Errorf("failed to get work sheet: %w", err)
	}
	return w, nil
}

func (r *workSheetRepository) ListByEmployee(ctx context.Context, email string, page pagination.Params) ([]worksheet.WorkSheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_sheets WHERE lower(employee_email) = lower($1)`, email).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work sheets: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT `+workSheetColumns+`
		FROM work_sheets
		WHERE lower(employee_email) = lower($1)
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3
	`, email, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work sheets: %w", err)
	}

	sheets, err := collectWorkSheets(rows)
	if err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

func (r *workSheetRepository) ListAll(ctx context.Context, filter worksheet.WorkSheetFilter) ([]worksheet.WorkSheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSheetColumns + ` FROM work_sheets WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Employee != "" {
		query += fmt.Sprintf(" AND employee_name = $%d", argIdx)
		args = append(args, filter.Employee)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (employee_name ILIKE $%d OR employee_email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list all work sheets: %w", err)
	}
	return collectWorkSheets(rows)
}

func (r *workSheetRepository) Update(ctx context.Context, req worksheet.UpdateWorkSheetRequest) (worksheet.WorkSheet, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Task != nil {
		setClauses = append(setClauses, fmt.Sprintf("task = $%d", argIdx))
		args = append(args, *req.Task)
		argIdx++
	}
	if req.Hour != nil {
		setClauses = append(setClauses, fmt.Sprintf("hour = $%d", argIdx))
		args = append(args, *req.Hour)
		argIdx++
	}
	if req.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", argIdx))
		args = append(args, *req.Date)
		argIdx++
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, req.ID)
	}
	args = append(args, req.ID)

	query := fmt.Sprintf(`UPDATE work_sheets SET %s WHERE id = $%d RETURNING `+workSheetColumns,
		strings.Join(setClauses, ", "), argIdx)

	w, err := scanWorkSheet(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksheet.WorkSheet{}, worksheet.ErrWorkSheetNotFound
		}
		return worksheet.WorkSheet{}, fmt.Errorf("failed to update work sheet: %w", err)
	}
	return w, nil
}

func (r *workSheetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_sheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksheet.ErrWorkSheetNotFound
	}
	return nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
