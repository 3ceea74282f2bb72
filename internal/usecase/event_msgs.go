package usecase

// Published to Kafka whenever an order status is applied (webhook or admin).
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Source  string `json:"source"` // "webhook" | "admin"
	Actor   string `json:"actor,omitempty"`
}

const (
	NotifyCustomerWhatsApp = "customer_whatsapp"
	NotifyOperatorEmail    = "operator_email"
)

// Queued on RabbitMQ for best-effort delivery by the notification workers.
type NotificationMsg struct {
	Kind     string `json:"kind"` // NotifyCustomerWhatsApp | NotifyOperatorEmail
	OrderID  string `json:"orderId"`
	To       string `json:"to"`
	Subject  string `json:"subject,omitempty"`
	Body     string `json:"body"`
	ProofURL string `json:"proofUrl,omitempty"`
}
