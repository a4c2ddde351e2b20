package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderPaid          = "OrderPaid"
	EventOrderPaymentFailed = "OrderPaymentFailed"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // gateway order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	CustomerEmail    string `json:"customer_email"`
}

type OrderPaidPayload struct {
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	AmountMinorUnits int64     `json:"amount_minor_units"`
	PaidAt           time.Time `json:"paid_at"`
}

type OrderPaymentFailedPayload struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Reason         string `json:"reason"` // e.g., SIGNATURE_MISMATCH
}
