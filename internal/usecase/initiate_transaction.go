package usecase

import (
	"context"
	"database/sql"
	"errors"
)

// InitiateTransaction builds a gateway payment request from an existing
// order and passes the returned token/redirect pair through unchanged.
// It never writes: the order stays PENDING until a webhook arrives.
type InitiateTransaction struct {
	repo    OrderRepo
	gateway PaymentGateway
}

func NewInitiateTransaction(repo OrderRepo, gw PaymentGateway) *InitiateTransaction {
	return &InitiateTransaction{repo: repo, gateway: gw}
}

func (uc *InitiateTransaction) Execute(ctx context.Context, orderID string) (GatewayTransactionResponse, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return GatewayTransactionResponse{}, ErrNotFound
		}
		return GatewayTransactionResponse{}, err
	}

	// The charged amount must equal the line-item sum plus shipping,
	// otherwise the item breakdown sent to the gateway would not add up.
	if o.ItemsTotal()+o.ShippingFee != o.Total {
		return GatewayTransactionResponse{}, ValidationError("order total does not match line items")
	}

	resp, err := uc.gateway.CreateTransaction(ctx, GatewayTransactionRequest{
		OrderID:     o.ID,
		GrossAmount: o.Total,
		Customer:    o.Customer,
		Items:       o.Items,
	})
	if err != nil {
		return GatewayTransactionResponse{}, err
	}
	return resp, nil
}
