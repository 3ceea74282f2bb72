package usecase

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
)

type UpdateStatusInput struct {
	OrderID string
	Status  domain.Status
	Actor   string // authenticated operator, for the audit trail
}

// UpdateStatus is the admin override path: any status to any status,
// no transition table. Used to move WAITING_APPROVAL to PAID after manual
// review and for corrections.
type UpdateStatus struct {
	repo   OrderRepo
	events OrderEvents      // optional
	cache  OrderStatusCache // optional
}

func NewUpdateStatus(repo OrderRepo) *UpdateStatus {
	return &UpdateStatus{repo: repo}
}

func (uc *UpdateStatus) WithEvents(ev OrderEvents) *UpdateStatus {
	uc.events = ev
	return uc
}

func (uc *UpdateStatus) WithStatusCache(c OrderStatusCache) *UpdateStatus {
	uc.cache = c
	return uc
}

func (uc *UpdateStatus) Execute(ctx context.Context, in UpdateStatusInput) (*domain.Order, error) {
	if in.OrderID == "" || in.Status == "" {
		return nil, ValidationError("orderId and status are required")
	}
	if !domain.ValidStatus(in.Status) {
		return nil, ValidationError("unknown status " + string(in.Status))
	}

	before, err := uc.repo.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, in.OrderID, in.Status); err != nil {
		return nil, err
	}

	log := logging.FromCtx(ctx)
	log.Info("order status overridden by operator",
		"order_id", in.OrderID, "actor", in.Actor,
		"from", before.Status, "to", in.Status)

	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, in.OrderID, string(in.Status)); err != nil {
			log.Warn("status cache refresh failed", "order_id", in.OrderID, "error", err)
		}
	}
	if uc.events != nil {
		err := uc.events.StatusChanged(ctx, OrderStatusChangedMsg{
			OrderID: in.OrderID,
			Status:  string(in.Status),
			Source:  "admin",
			Actor:   in.Actor,
		})
		if err != nil {
			log.Warn("status event publish failed", "order_id", in.OrderID, "error", err)
		}
	}

	before.Status = in.Status
	return before, nil
}
