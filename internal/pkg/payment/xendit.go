package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/invoice"
)

// XenditGateway prepares payments as hosted Xendit invoices. The invoice
// external id is the payroll id so the paid callback can be matched back.
type XenditGateway struct {
	invoiceAPI invoice.InvoiceApi
}

func NewXenditGateway(apiKey string) *XenditGateway {
	sdk := xenditSDK.NewClient(apiKey)
	return &XenditGateway{invoiceAPI: sdk.InvoiceApi}
}

func (g *XenditGateway) Provider() string {
	return "xendit"
}

func (g *XenditGateway) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	// Convert decimal to float64 for SDK
	amount, _ := req.Amount.Float64()

	sdkReq := *invoice.NewCreateInvoiceRequest(req.Reference, amount)
	sdkReq.SetCurrency(currency)
	if req.PayerEmail != "" {
		sdkReq.SetPayerEmail(req.PayerEmail)
	}
	if req.Description != "" {
		sdkReq.SetDescription(req.Description)
	}

	inv, _, sdkErr := g.invoiceAPI.CreateInvoice(ctx).CreateInvoiceRequest(sdkReq).Execute()
	if sdkErr != nil {
		return Intent{}, fmt.Errorf("%w: xendit: %s", ErrGateway, sdkErr.Error())
	}

	return Intent{
		ID:          inv.GetId(),
		CheckoutURL: inv.GetInvoiceUrl(),
	}, nil
}

// VerifyPayment reads the invoice back from Xendit. PAID and SETTLED both
// count as succeeded.
func (g *XenditGateway) VerifyPayment(ctx context.Context, id string) (Payment, error) {
	inv, _, sdkErr := g.invoiceAPI.GetInvoiceById(ctx, id).Execute()
	if sdkErr != nil {
		if sdkErr.Status() == strconv.Itoa(http.StatusNotFound) {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, fmt.Errorf("%w: xendit: %s", ErrGateway, sdkErr.Error())
	}
	return paymentFromInvoice(inv), nil
}

func paymentFromInvoice(inv *invoice.Invoice) Payment {
	status := inv.GetStatus()
	return Payment{
		ID:        inv.GetId(),
		Succeeded: status == invoice.INVOICESTATUS_PAID || status == invoice.INVOICESTATUS_SETTLED,
		Amount:    decimal.NewFromFloat(inv.GetAmount()),
		Reference: inv.GetExternalId(),
	}
}
