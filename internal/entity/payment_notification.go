package domain

import "time"

// PaymentNotification is one received gateway callback, kept as an
// append-only audit record. Duplicates from gateway retries are stored
// again on purpose.
type PaymentNotification struct {
	ID            int64
	OrderID       string // external order id, not enforced as a foreign key
	TransactionID string
	PaymentType   string
	GatewayStatus string
	GrossAmount   int64
	RawPayload    string // full notification body as received
	CreatedAt     time.Time
}
