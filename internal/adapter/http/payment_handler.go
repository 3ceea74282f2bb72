package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// PaymentHandler covers the manual proof-of-payment flow.
type PaymentHandler struct {
	manual *usecase.ManualPayment
}

func NewPaymentHandler(manual *usecase.ManualPayment) *PaymentHandler {
	return &PaymentHandler{manual: manual}
}

type manualPaymentReq struct {
	Cart     []cartItemReq `json:"cart" binding:"required"`
	Customer customerReq   `json:"customer" binding:"required"`
	Proof    string        `json:"proof"` // URL of the already-uploaded proof image
}

// Manual handler: POST /v1/payments/manual
func (h *PaymentHandler) Manual(c *gin.Context) {
	var req manualPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.manual.Execute(ctx, usecase.ManualPaymentInput{
		Items:    toLineItems(req.Cart),
		Customer: toCustomer(req.Customer),
		ProofURL: req.Proof,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": out.OrderID,
		"status":  out.Status,
		"total":   out.Total,
	})
}
