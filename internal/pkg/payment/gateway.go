package payment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	"github.com/shopspring/decimal"
)

var (
	ErrGateway         = errors.New("payment gateway error")
	ErrPaymentNotFound = errors.New("payment not found at processor")
)

// IntentRequest asks the processor to prepare a payment the client will
// complete. Reference identifies the payroll being paid.
type IntentRequest struct {
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PayerEmail  string
}

// Intent is the processor's handle for a prepared payment. ClientSecret is
// what the client needs to finish the payment; CheckoutURL is set by
// processors that host their own payment page.
type Intent struct {
	ID           string
	ClientSecret string
	CheckoutURL  string
}

// Payment is the processor's own record of a payment, read back before a
// client-reported payment is trusted. Reference is the payroll id the
// payment was created for.
type Payment struct {
	ID        string
	Succeeded bool
	Amount    decimal.Decimal
	Reference string
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
	VerifyPayment(ctx context.Context, id string) (Payment, error)
	Provider() string
}

// NewGateway returns nil when the selected provider has no credentials, which
// callers treat as payments being disabled.
func NewGateway(cfg config.PaymentConfig) Gateway {
	switch cfg.Provider {
	case "xendit":
		if cfg.XenditAPIKey == "" {
			slog.Warn("XENDIT_API_KEY not set, payment intents disabled")
			return nil
		}
		return NewXenditGateway(cfg.XenditAPIKey)
	default:
		if cfg.StripeSecretKey == "" {
			slog.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
			return nil
		}
		return NewStripeGateway(cfg.StripeSecretKey)
	}
}

// MinorUnits converts an amount to the smallest currency unit, e.g. cents.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
