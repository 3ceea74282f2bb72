package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.CreateCheckout
	initiate *usecase.InitiateTransaction
	query    usecase.OrderRepo
	cache    usecase.OrderStatusCache
}

func NewOrderHandler(checkout *usecase.CreateCheckout, initiate *usecase.InitiateTransaction, query usecase.OrderRepo, cache usecase.OrderStatusCache) *OrderHandler {
	return &OrderHandler{checkout: checkout, initiate: initiate, query: query, cache: cache}
}

type cartItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price" binding:"required,gte=0"`
	Qty       int64  `json:"qty"`
	Color     string `json:"color"`
}

type customerReq struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Courier string `json:"courier"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

type createCheckoutReq struct {
	Cart        []cartItemReq `json:"cart" binding:"required"`
	Customer    customerReq   `json:"customer" binding:"required"`
	ShippingFee int64         `json:"shippingFee" binding:"gte=0"`
}

func toLineItems(cart []cartItemReq) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(cart))
	for _, it := range cart {
		items = append(items, domain.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Qty,
			Color:     it.Color,
		})
	}
	return items
}

func toCustomer(cu customerReq) domain.Customer {
	return domain.Customer{
		Name:    cu.Name,
		Phone:   cu.Phone,
		Courier: cu.Courier,
		Address: cu.Address,
		Note:    cu.Note,
	}
}

// CreateCheckout handler: POST /v1/orders
func (h *OrderHandler) CreateCheckout(c *gin.Context) {
	var req createCheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.CreateCheckoutInput{
		Items:       toLineItems(req.Cart),
		Customer:    toCustomer(req.Customer),
		ShippingFee: req.ShippingFee,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId": out.OrderID,
		"status":  out.Status,
		"total":   out.Total,
	})
}

// Pay handler: POST /v1/orders/:id/pay. Obtains a gateway token/redirect
// for an existing PENDING order. Never mutates the order.
func (h *OrderHandler) Pay(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	resp, err := h.initiate.Execute(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	o, err := h.query.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(o))
}

// GetOrderStatus serves the payment page's polling loop from the status
// cache, falling back to the store on a miss.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.cache != nil {
		if status, ok, err := h.cache.GetStatus(ctx, id); err == nil && ok {
			c.JSON(http.StatusOK, gin.H{"orderId": id, "status": status})
			return
		}
	}

	o, err := h.query.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": o.ID, "status": o.Status})
}

func orderJSON(o *domain.Order) gin.H {
	return gin.H{
		"orderId":     o.ID,
		"items":       o.Items,
		"customer":    o.Customer,
		"subtotal":    o.Subtotal,
		"shippingFee": o.ShippingFee,
		"total":       o.Total,
		"status":      o.Status,
		"proofUrl":    o.ProofURL,
		"createdAt":   o.CreatedAt,
		"updatedAt":   o.UpdatedAt,
	}
}
