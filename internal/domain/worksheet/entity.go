package worksheet

import (
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

type Task string

const (
	TaskSales     Task = "Sales"
	TaskSupport   Task = "Support"
	TaskContent   Task = "Content"
	TaskPaperWork Task = "Paper-work"
	TaskOther     Task = "Other"
)

func ValidTasks() []string {
	return []string{
		string(TaskSales),
		string(TaskSupport),
		string(TaskContent),
		string(TaskPaperWork),
		string(TaskOther),
	}
}

// WorkSheet is one logged work session. Date keeps the value exactly as the
// client submitted it.
type WorkSheet struct {
	ID            string    `json:"id"`
	EmployeeEmail string    `json:"employee_email"`
	EmployeeName  string    `json:"employee_name"`
	Task          Task      `json:"task"`
	Hour          float64   `json:"hour"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"-"`
}

// ParsedDate returns the calendar date of the entry, if it can be read.
func (w WorkSheet) ParsedDate() (time.Time, bool) {
	return validator.ParseFlexibleDate(w.Date)
}
