package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

// newOrderID builds the externally-visible order identifier. The time
// prefix keeps ids human-sortable; the uuid fragment makes collisions a
// non-issue under concurrent checkouts.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%.8s", now.UnixMilli(), uuid.NewString())
}

type CreateCheckoutInput struct {
	Items       []domain.LineItem
	Customer    domain.Customer
	ShippingFee int64
}

type CreateCheckoutOutput struct {
	OrderID string
	Status  domain.Status
	Total   int64
}

// CreateCheckout creates a PENDING order for the gateway payment path.
// Totals are computed server-side from the line-item snapshots.
type CreateCheckout struct {
	repo OrderRepo
}

func NewCreateCheckout(repo OrderRepo) *CreateCheckout {
	return &CreateCheckout{repo: repo}
}

func (uc *CreateCheckout) Execute(ctx context.Context, in CreateCheckoutInput) (CreateCheckoutOutput, error) {
	if len(in.Items) == 0 {
		return CreateCheckoutOutput{}, ValidationError("empty cart")
	}
	if in.ShippingFee < 0 {
		return CreateCheckoutOutput{}, ValidationError("negative shipping fee")
	}

	o := &domain.Order{
		ID:          newOrderID(time.Now()),
		Items:       in.Items,
		Customer:    in.Customer,
		ShippingFee: in.ShippingFee,
		Status:      domain.StatusPending,
	}
	o.Subtotal = o.ItemsTotal()
	o.Total = o.Subtotal + o.ShippingFee
	if err := o.Validate(); err != nil {
		return CreateCheckoutOutput{}, ValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return CreateCheckoutOutput{}, err
	}
	return CreateCheckoutOutput{OrderID: o.ID, Status: o.Status, Total: o.Total}, nil
}
