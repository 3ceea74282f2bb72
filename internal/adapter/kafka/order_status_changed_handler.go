package kafka

import (
	"context"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// OrderStatusChangedHandler keeps the storefront's status cache in sync
// with applied status changes, so the payment page polls redis instead of
// the database.
type OrderStatusChangedHandler struct {
	Cache usecase.OrderStatusCache
}

func NewOrderStatusChangedHandler(cache usecase.OrderStatusCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	return h.Cache.SetStatus(ctx, ev.OrderID, ev.Status)
}
