package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/payment"
)

// webhookActor confirms payments reported by the processor itself.
var webhookActor = user.Actor{Email: "webhook@xendit", Role: user.RoleAdmin}

type WebhookHandler interface {
	HandleXendit(w http.ResponseWriter, r *http.Request)
}

type webhookHandlerImpl struct {
	payRollService  payroll.PayRollService
	webhookVerifier *payment.WebhookVerifier
}

func NewWebhookHandler(payRollService payroll.PayRollService, webhookVerifier *payment.WebhookVerifier) WebhookHandler {
	return &webhookHandlerImpl{
		payRollService:  payRollService,
		webhookVerifier: webhookVerifier,
	}
}

// HandleXendit processes Xendit invoice callbacks
// POST /webhooks/xendit - Public (callback token verified)
func (h *webhookHandlerImpl) HandleXendit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body", nil)
		return
	}

	callbackToken := r.Header.Get("X-Callback-Token")
	if callbackToken == "" {
		response.Unauthorized(w, "missing callback token")
		return
	}
	if !h.webhookVerifier.VerifyToken(callbackToken) {
		response.Unauthorized(w, "invalid callback token")
		return
	}

	var payload payment.InvoiceWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(w, "invalid webhook payload", nil)
		return
	}

	if !payload.IsPaid() {
		slog.Info("xendit invoice ignored", "invoice_id", payload.ID, "status", payload.Status)
		response.Success(w, map[string]string{"status": "ignored"})
		return
	}

	paidAt := payload.PaidTime(time.Now())
	method := payload.PaymentMethod
	if method == "" {
		method = "xendit"
	}
	_, err = h.payRollService.ConfirmPayment(r.Context(), webhookActor, payroll.ConfirmPaymentRequest{
		PayRollID:     payload.ExternalID,
		TransactionID: payload.ID,
		Amount:        payload.PaidDecimal(),
		PaymentMethod: method,
		PaidAt:        &paidAt,
	})
	switch {
	case err == nil:
	case errors.Is(err, transaction.ErrTransactionExists), errors.Is(err, payroll.ErrPayRollNotPending):
		// Xendit retries callbacks; the first delivery already settled it.
		slog.Info("xendit invoice already recorded", "invoice_id", payload.ID, "payroll_id", payload.ExternalID)
	default:
		slog.Error("xendit invoice confirmation failed", "invoice_id", payload.ID, "payroll_id", payload.ExternalID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "received"})
}
