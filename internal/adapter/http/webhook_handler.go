package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// WebhookHandler terminates the payment gateway's asynchronous
// notifications. Responses are machine-readable only: the gateway keys
// its retry behavior off the status code.
type WebhookHandler struct {
	reconcile *usecase.ReconcileWebhook
}

func NewWebhookHandler(rc *usecase.ReconcileWebhook) *WebhookHandler {
	return &WebhookHandler{reconcile: rc}
}

// Notify handler: POST /v1/payments/notify
func (h *WebhookHandler) Notify(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "unreadable body"})
		return
	}
	defer c.Request.Body.Close()

	var n usecase.WebhookNotification
	if err := json.Unmarshal(raw, &n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid notification body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.reconcile.Execute(ctx, n, raw); err != nil {
		if errors.Is(err, usecase.ErrSignatureMismatch) {
			logging.From(c).Warn("webhook signature mismatch", "order_id", n.OrderID)
			webhookResults.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "invalid signature"})
			return
		}
		// Persistence failed after authentication: let the gateway retry.
		logging.From(c).Error("webhook processing failed", "order_id", n.OrderID, "error", err)
		webhookResults.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	webhookResults.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
