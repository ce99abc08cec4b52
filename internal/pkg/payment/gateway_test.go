package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/xendit/xendit-go/v7/invoice"
)

func TestMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"1500":    150000,
		"999.99":  99999,
		"0.015":   2,
		"1000.10": 100010,
	}
	for in, want := range cases {
		assert.Equal(t, want, MinorUnits(decimal.RequireFromString(in)), in)
	}
}

func TestNewGateway(t *testing.T) {
	assert.Nil(t, NewGateway(config.PaymentConfig{Provider: "stripe"}))
	assert.Nil(t, NewGateway(config.PaymentConfig{Provider: "xendit"}))

	g := NewGateway(config.PaymentConfig{Provider: "stripe", StripeSecretKey: "sk_test_123"})
	if assert.NotNil(t, g) {
		assert.Equal(t, "stripe", g.Provider())
	}

	g = NewGateway(config.PaymentConfig{Provider: "xendit", XenditAPIKey: "xnd_development_123"})
	if assert.NotNil(t, g) {
		assert.Equal(t, "xendit", g.Provider())
	}
}

func TestWebhookVerifier(t *testing.T) {
	v := NewWebhookVerifier("secret-token")
	assert.True(t, v.VerifyToken("secret-token"))
	assert.True(t, v.VerifyToken(" secret-token "))
	assert.False(t, v.VerifyToken("other"))

	assert.False(t, NewWebhookVerifier("").VerifyToken(""))
}

func TestInvoiceWebhookPayload(t *testing.T) {
	now := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	p := InvoiceWebhookPayload{Status: "PAID", Amount: 1500, PaidAt: "2024-03-01T10:00:00Z"}
	assert.True(t, p.IsPaid())
	assert.True(t, decimal.NewFromInt(1500).Equal(p.PaidDecimal()))
	assert.Equal(t, time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), p.PaidTime(now))

	p = InvoiceWebhookPayload{Status: "EXPIRED", Amount: 1500, PaidAmount: 1499.5}
	assert.False(t, p.IsPaid())
	assert.True(t, decimal.RequireFromString("1499.5").Equal(p.PaidDecimal()))
	assert.Equal(t, now, p.PaidTime(now))
}

// newFakeStripe serves GET /v1/payment_intents/{id} from intents.
func newFakeStripe(t *testing.T, intents map[string]string) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body, ok := intents[r.URL.Path]
		if r.Method != http.MethodGet || !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent"}}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return newStripeGateway("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeVerifyPayment(t *testing.T) {
	g := newFakeStripe(t, map[string]string{
		"/v1/payment_intents/pi_paid": `{"id":"pi_paid","object":"payment_intent","status":"succeeded","amount":100050,"currency":"usd","metadata":{"payRollId":"pr-1"}}`,
		"/v1/payment_intents/pi_open": `{"id":"pi_open","object":"payment_intent","status":"requires_payment_method","amount":100050,"currency":"usd","metadata":{"payRollId":"pr-1"}}`,
	})
	ctx := context.Background()

	paid, err := g.VerifyPayment(ctx, "pi_paid")
	require.NoError(t, err)
	assert.True(t, paid.Succeeded)
	assert.Equal(t, "pr-1", paid.Reference)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(paid.Amount))

	open, err := g.VerifyPayment(ctx, "pi_open")
	require.NoError(t, err)
	assert.False(t, open.Succeeded)

	_, err = g.VerifyPayment(ctx, "pi_made_up")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPaymentFromInvoice(t *testing.T) {
	inv := invoice.NewInvoiceWithDefaults()
	inv.SetId("inv_1")
	inv.SetExternalId("pr-1")
	inv.SetAmount(1500)

	for status, want := range map[invoice.InvoiceStatus]bool{
		invoice.INVOICESTATUS_PAID:    true,
		invoice.INVOICESTATUS_SETTLED: true,
		invoice.INVOICESTATUS_PENDING: false,
		invoice.INVOICESTATUS_EXPIRED: false,
	} {
		inv.SetStatus(status)
		p := paymentFromInvoice(inv)
		assert.Equal(t, want, p.Succeeded, string(status))
		assert.Equal(t, "pr-1", p.Reference)
		assert.True(t, decimal.NewFromInt(1500).Equal(p.Amount))
	}
}
