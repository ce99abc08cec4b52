package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of a completed payment for one payroll.
type Transaction struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        time.Time       `json:"paid_at"`
	PayRollID     string          `json:"payRollId"`
	PaymentMethod string          `json:"paymentMethod"`
	PayForMonth   string          `json:"pay_for_month"`
	PayForYear    string          `json:"pay_for_year"`
	EmployeeEmail string          `json:"employeeEmail"`
	EmployeeName  string          `json:"employeeName"`
}
