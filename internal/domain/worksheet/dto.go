package worksheet

import (
	"strconv"
	"strings"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

type CreateWorkSheetRequest struct {
	Task string  `json:"task"`
	Hour float64 `json:"hour"`
	Date string  `json:"date"`
}

func (r *CreateWorkSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Task, ValidTasks()) {
		errs = append(errs, validator.ValidationError{
			Field:   "task",
			Message: "task must be one of Sales, Support, Content, Paper-work, Other",
		})
	}
	if r.Hour <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hour",
			Message: "hour must be greater than 0",
		})
	}
	if _, ok := validator.ParseFlexibleDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD or an ISO 8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkSheetRequest patches an entry. Nil fields are left untouched.
type UpdateWorkSheetRequest struct {
	ID   string   `json:"-"`
	Task *string  `json:"task,omitempty"`
	Hour *float64 `json:"hour,omitempty"`
	Date *string  `json:"date,omitempty"`
}

func (r *UpdateWorkSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid id"})
	}
	if r.Task != nil && !validator.IsInSlice(*r.Task, ValidTasks()) {
		errs = append(errs, validator.ValidationError{Field: "task", Message: "invalid task"})
	}
	if r.Hour != nil && *r.Hour <= 0 {
		errs = append(errs, validator.ValidationError{Field: "hour", Message: "hour must be greater than 0"})
	}
	if r.Date != nil {
		if _, ok := validator.ParseFlexibleDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "invalid date"})
		}
	}
	if r.Task == nil && r.Hour == nil && r.Date == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WorkSheetFilter is the HR view over every entry. Month is 1-12, Year a
// four digit year; zero means no constraint.
type WorkSheetFilter struct {
	Employee string
	Search   string
	Month    int
	Year     int
}

func ParseWorkSheetFilter(employee, search, month, year string) (WorkSheetFilter, error) {
	f := WorkSheetFilter{
		Employee: strings.TrimSpace(employee),
		Search:   strings.TrimSpace(search),
	}
	var errs validator.ValidationErrors

	if month = strings.TrimSpace(month); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
		}
		f.Month = m
	}
	if year = strings.TrimSpace(year); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
		}
		f.Year = y
	}

	if len(errs) > 0 {
		return WorkSheetFilter{}, errs
	}
	return f, nil
}

// Match applies the in-memory part of the filter: the month and year of the
// parsed date, and the search term. Entries whose date cannot be parsed are
// dropped only when a month or year is requested.
func (f WorkSheetFilter) Match(w WorkSheet) bool {
	if f.Employee != "" && w.EmployeeName != f.Employee {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.EmployeeName), term) &&
			!strings.Contains(strings.ToLower(w.EmployeeEmail), term) {
			return false
		}
	}
	if f.Month == 0 && f.Year == 0 {
		return true
	}
	d, ok := w.ParsedDate()
	if !ok {
		return false
	}
	if f.Month != 0 && int(d.Month()) != f.Month {
		return false
	}
	if f.Year != 0 && d.Year() != f.Year {
		return false
	}
	return true
}

type ListMyWorkSheetResponse struct {
	MyEntries  []WorkSheet `json:"myEntries"`
	TotalItems int64       `json:"totalItems"`
}
