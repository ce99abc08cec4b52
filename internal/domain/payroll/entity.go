package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func ValidStatuses() []string {
	return []string{string(StatusPending), string(StatusPaid)}
}

// PayRoll is a request by HR to pay one employee a salary for a month.
type PayRoll struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeId"`
	EmployeeEmail string          `json:"employeeEmail"`
	EmployeeName  string          `json:"employeeName"`
	HREmail       string          `json:"hrEmail"`
	HRName        string          `json:"hrName"`
	Salary        decimal.Decimal `json:"salary"`
	Month         string          `json:"month"`
	Year          string          `json:"year"`
	Status        Status          `json:"status"`
	PayRequestAt  time.Time       `json:"payrequest_at"`
}

func (p PayRoll) IsPending() bool {
	return p.Status == StatusPending
}

// AmountMatches reports whether amount equals the salary exactly.
func (p PayRoll) AmountMatches(amount decimal.Decimal) bool {
	return p.Salary.Equal(amount)
}

// Inconsistency is a payroll whose status disagrees with whether a
// transaction references it.
type Inconsistency struct {
	PayRollID      string `json:"payRollId"`
	Status         Status `json:"status"`
	HasTransaction bool   `json:"hasTransaction"`
	TransactionID  string `json:"transactionId,omitempty"`
}
