package repo

import (
	"context"
	"database/sql"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// MySQLPaymentNotificationRepo is the append-only webhook audit log.
type MySQLPaymentNotificationRepo struct{ db *sql.DB }

func NewMySQLPaymentNotificationRepo(db *sql.DB) *MySQLPaymentNotificationRepo {
	return &MySQLPaymentNotificationRepo{db: db}
}

func (r *MySQLPaymentNotificationRepo) Insert(ctx context.Context, n *domain.PaymentNotification) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO payment_notifications
  (order_id,transaction_id,payment_type,gateway_status,gross_amount,raw_payload,created_at)
VALUES (?,?,?,?,?,?,NOW())`,
		n.OrderID, n.TransactionID, n.PaymentType, n.GatewayStatus, n.GrossAmount, n.RawPayload,
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		n.ID = id
	}
	return nil
}

var _ usecase.PaymentNotificationRepo = (*MySQLPaymentNotificationRepo)(nil)
