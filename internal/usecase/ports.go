package usecase

import (
	"context"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus overwrites the status of the order with the given
	// external id. Returns ErrNotFound when no row matches.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
}

type PaymentNotificationRepo interface {
	// Insert appends a notification record. Never deduplicates.
	Insert(ctx context.Context, n *domain.PaymentNotification) error
}

// PaymentGateway is the outbound port to the external payment provider.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req GatewayTransactionRequest) (GatewayTransactionResponse, error)
}

type GatewayTransactionRequest struct {
	OrderID     string
	GrossAmount int64
	Customer    domain.Customer
	Items       []domain.LineItem
}

type GatewayTransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// NotificationPublisher enqueues best-effort customer/operator messages.
// Publish failures are the caller's to log, never to propagate.
type NotificationPublisher interface {
	Publish(ctx context.Context, msg NotificationMsg) error
}

// OrderEvents emits order-status change events for downstream consumers
// (status cache refresh, back-office audit trail).
type OrderEvents interface {
	StatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}

type OrderStatusCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}
