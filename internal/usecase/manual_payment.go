package usecase

import (
	"context"
	"fmt"
	"time"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
)

type ManualPaymentInput struct {
	Items    []domain.LineItem
	Customer domain.Customer
	ProofURL string
}

type ManualPaymentOutput struct {
	OrderID string
	Status  domain.Status
	Total   int64
}

// ManualPayment accepts a cart plus an already-uploaded proof-of-payment
// URL and creates the order directly in WAITING_APPROVAL. Customer and
// operator notifications are queued best-effort; the order is created even
// when the queue is down.
type ManualPayment struct {
	repo         OrderRepo
	notifier     NotificationPublisher
	operatorMail string
}

func NewManualPayment(repo OrderRepo, notifier NotificationPublisher, operatorMail string) *ManualPayment {
	return &ManualPayment{repo: repo, notifier: notifier, operatorMail: operatorMail}
}

func (uc *ManualPayment) Execute(ctx context.Context, in ManualPaymentInput) (ManualPaymentOutput, error) {
	if len(in.Items) == 0 {
		return ManualPaymentOutput{}, ValidationError("empty cart")
	}
	if in.ProofURL == "" {
		return ManualPaymentOutput{}, ValidationError("missing proof")
	}

	o := &domain.Order{
		ID:       newOrderID(time.Now()),
		Items:    in.Items,
		Customer: in.Customer,
		Status:   domain.StatusWaitingApproval,
		ProofURL: in.ProofURL,
	}
	o.Subtotal = o.ItemsTotal()
	o.Total = o.Subtotal

	if err := uc.repo.Create(ctx, o); err != nil {
		return ManualPaymentOutput{}, err
	}

	uc.notify(ctx, o)
	return ManualPaymentOutput{OrderID: o.ID, Status: o.Status, Total: o.Total}, nil
}

func (uc *ManualPayment) notify(ctx context.Context, o *domain.Order) {
	if uc.notifier == nil {
		return
	}
	log := logging.FromCtx(ctx).With("order_id", o.ID)

	err := uc.notifier.Publish(ctx, NotificationMsg{
		Kind:    NotifyCustomerWhatsApp,
		OrderID: o.ID,
		To:      o.Customer.Phone,
		Body: fmt.Sprintf(
			"Halo %s! Pesanan %s senilai Rp%d sudah kami terima dan sedang menunggu verifikasi pembayaran.",
			o.Customer.Name, o.ID, o.Total),
	})
	if err != nil {
		log.Warn("customer notification queue failed", "error", err)
	}

	err = uc.notifier.Publish(ctx, NotificationMsg{
		Kind:     NotifyOperatorEmail,
		OrderID:  o.ID,
		To:       uc.operatorMail,
		Subject:  fmt.Sprintf("Pembayaran manual %s menunggu verifikasi", o.ID),
		Body:     operatorMailBody(o),
		ProofURL: o.ProofURL,
	})
	if err != nil {
		log.Warn("operator notification queue failed", "error", err)
	}
}

func operatorMailBody(o *domain.Order) string {
	body := fmt.Sprintf("Order %s\nCustomer: %s (%s)\nAlamat: %s\nKurir: %s\n\nItems:\n",
		o.ID, o.Customer.Name, o.Customer.Phone, o.Customer.Address, o.Customer.Courier)
	for _, li := range o.Items {
		body += fmt.Sprintf("- %s x%d @ Rp%d (%s)\n", li.Name, li.Quantity, li.UnitPrice, li.Color)
	}
	body += fmt.Sprintf("\nTotal: Rp%d\n", o.Total)
	return body
}
