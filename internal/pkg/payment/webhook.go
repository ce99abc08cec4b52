package payment

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WebhookVerifier checks the x-callback-token Xendit sends with callbacks.
type WebhookVerifier struct {
	webhookToken string
}

func NewWebhookVerifier(webhookToken string) *WebhookVerifier {
	return &WebhookVerifier{webhookToken: webhookToken}
}

// VerifyToken rejects every callback when no token is configured.
func (v *WebhookVerifier) VerifyToken(callbackToken string) bool {
	if v == nil || v.webhookToken == "" {
		return false
	}
	got := strings.TrimSpace(callbackToken)
	return subtle.ConstantTimeCompare([]byte(got), []byte(v.webhookToken)) == 1
}

const (
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusSettled = "SETTLED"
	InvoiceStatusExpired = "EXPIRED"
)

// InvoiceWebhookPayload is the part of the Xendit invoice callback the
// payroll flow reads.
type InvoiceWebhookPayload struct {
	ID            string  `json:"id"`
	ExternalID    string  `json:"external_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	PaidAmount    float64 `json:"paid_amount"`
	PaidAt        string  `json:"paid_at"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`
}

func (p InvoiceWebhookPayload) IsPaid() bool {
	return p.Status == InvoiceStatusPaid || p.Status == InvoiceStatusSettled
}

// PaidDecimal prefers paid_amount and falls back to the invoiced amount.
func (p InvoiceWebhookPayload) PaidDecimal() decimal.Decimal {
	if p.PaidAmount > 0 {
		return decimal.NewFromFloat(p.PaidAmount)
	}
	return decimal.NewFromFloat(p.Amount)
}

// PaidTime parses paid_at, falling back to now when absent or malformed.
func (p InvoiceWebhookPayload) PaidTime(now time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, p.PaidAt); err == nil {
		return t
	}
	return now
}
