package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

type AdminHandler struct {
	update *usecase.UpdateStatus
	query  usecase.OrderRepo
}

func NewAdminHandler(update *usecase.UpdateStatus, query usecase.OrderRepo) *AdminHandler {
	return &AdminHandler{update: update, query: query}
}

type updateStatusReq struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// UpdateStatus handler: POST /v1/admin/orders/status. Deliberately
// permissive: any status can be forced onto any order.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and status are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	o, err := h.update.Execute(ctx, usecase.UpdateStatusInput{
		OrderID: req.OrderID,
		Status:  domain.Status(req.Status),
		Actor:   c.GetString("clientID"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(o))
}

// ListOrders handler: GET /v1/admin/orders. Recent orders for the
// back-office list view.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.query.ListRecent(ctx, 100)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}
