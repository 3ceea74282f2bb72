package usecase

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/security"
)

// WebhookNotification is the decoded gateway callback body. GrossAmount
// stays a string because the signature is computed over the exact wire
// representation.
type WebhookNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
	SignatureKey      string `json:"signature_key"`
}

// ReconcileWebhook authenticates a gateway notification, appends it to the
// audit log, and applies the mapped status to the referenced order.
type ReconcileWebhook struct {
	verifier *security.SignatureVerifier
	orders   OrderRepo
	payments PaymentNotificationRepo
	events   OrderEvents      // optional
	cache    OrderStatusCache // optional
}

func NewReconcileWebhook(v *security.SignatureVerifier, orders OrderRepo, payments PaymentNotificationRepo) *ReconcileWebhook {
	return &ReconcileWebhook{verifier: v, orders: orders, payments: payments}
}

// WithEvents attaches the best-effort status event publisher.
func (uc *ReconcileWebhook) WithEvents(ev OrderEvents) *ReconcileWebhook {
	uc.events = ev
	return uc
}

// WithStatusCache attaches the best-effort status cache.
func (uc *ReconcileWebhook) WithStatusCache(c OrderStatusCache) *ReconcileWebhook {
	uc.cache = c
	return uc
}

// mapGatewayStatus translates the gateway's transaction status into an
// order status. Unrecognized values are acknowledged but not applied.
func mapGatewayStatus(s string) (domain.Status, bool) {
	switch s {
	case "settlement", "capture", "success":
		return domain.StatusPaid, true
	case "expire":
		return domain.StatusExpired, true
	case "cancel":
		return domain.StatusCancelled, true
	}
	return "", false
}

// Execute processes one delivery. rawPayload is the body exactly as
// received; it is persisted whole for audit.
//
// Authentication happens before anything is written. After a successful
// insert the call is acknowledged even when the status is unrecognized or
// the order does not exist, so the gateway stops retrying.
func (uc *ReconcileWebhook) Execute(ctx context.Context, n WebhookNotification, rawPayload []byte) error {
	if !uc.verifier.Verify(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		return ErrSignatureMismatch
	}

	gross, _ := strconv.ParseInt(n.GrossAmount, 10, 64)
	rec := &domain.PaymentNotification{
		OrderID:       n.OrderID,
		TransactionID: n.TransactionID,
		PaymentType:   n.PaymentType,
		GatewayStatus: n.TransactionStatus,
		GrossAmount:   gross,
		RawPayload:    string(rawPayload),
	}
	if err := uc.payments.Insert(ctx, rec); err != nil {
		return err
	}

	log := logging.FromCtx(ctx).With("order_id", n.OrderID, "transaction_status", n.TransactionStatus)

	status, ok := mapGatewayStatus(n.TransactionStatus)
	if !ok {
		log.Info("webhook acknowledged without status change")
		return nil
	}

	if err := uc.orders.UpdateStatus(ctx, n.OrderID, status); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			// Unknown order: still acknowledge, the gateway must not retry.
			log.Warn("webhook for unknown order", "status", status)
			return nil
		}
		return err
	}
	log.Info("order status applied from webhook", "status", status)

	uc.fanOut(ctx, log, n.OrderID, status)
	return nil
}

func (uc *ReconcileWebhook) fanOut(ctx context.Context, log *slog.Logger, orderID string, status domain.Status) {
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, orderID, string(status)); err != nil {
			log.Warn("status cache refresh failed", "error", err)
		}
	}
	if uc.events != nil {
		err := uc.events.StatusChanged(ctx, OrderStatusChangedMsg{
			OrderID: orderID,
			Status:  string(status),
			Source:  "webhook",
		})
		if err != nil {
			log.Warn("status event publish failed", "error", err)
		}
	}
}
