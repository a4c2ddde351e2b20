package orders

const (
	TopicOrderCreated       = "order.created"
	TopicOrderPaid          = "order.paid"
	TopicOrderPaymentFailed = "order.payment.failed"
)

// Partition key = gateway order id, so every event for one order keeps order.
func PartitionKey(gatewayOrderID string) []byte { return []byte(gatewayOrderID) }
