package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionExists   = errors.New("transaction already recorded for this payment or payroll")
)
