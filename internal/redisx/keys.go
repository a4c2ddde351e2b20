package redisx

import "time"

const (
	// Cache order status: order_status:{gateway_order_id} -> {"orderId":..,"status":..}
	KeyOrderStatus = "order_status:%s"

	// Duplicate verify callbacks: idem:order:verify:{gateway_payment_id} -> gateway_order_id
	KeyIdemVerify = "idem:order:verify:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLIdempotency = 24 * time.Hour
	TTLDedup       = 48 * time.Hour
)
