package queue

import (
	"context"
	"fmt"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// WhatsAppSender delivers a text message to a phone number.
type WhatsAppSender interface {
	SendText(ctx context.Context, phone, text string) error
}

// EmailSender delivers a single email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationHandler drains the notification queue: customer WhatsApp
// messages and operator emails. Delivery failures are logged and the job
// dropped rather than requeued forever; these messages are best-effort by
// contract.
type NotificationHandler struct {
	wa   WhatsAppSender
	mail EmailSender
}

func NewNotificationHandler(wa WhatsAppSender, mail EmailSender) *NotificationHandler {
	return &NotificationHandler{wa: wa, mail: mail}
}

// Handle is intended for queue.JSONHandler[usecase.NotificationMsg].
func (h *NotificationHandler) Handle(ctx context.Context, msg usecase.NotificationMsg) error {
	log := logging.FromCtx(ctx).With("order_id", msg.OrderID, "kind", msg.Kind)

	var err error
	switch msg.Kind {
	case usecase.NotifyCustomerWhatsApp:
		err = h.wa.SendText(ctx, msg.To, msg.Body)
	case usecase.NotifyOperatorEmail:
		body := msg.Body
		if msg.ProofURL != "" {
			body += fmt.Sprintf("\nLihat bukti: %s\n", msg.ProofURL)
		}
		err = h.mail.Send(ctx, msg.To, msg.Subject, body)
	default:
		log.Warn("unknown notification kind")
		return nil
	}

	if err != nil {
		log.Warn("notification delivery failed", "error", err)
	}
	return nil
}
