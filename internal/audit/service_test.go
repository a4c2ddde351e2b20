package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/MohanPrasathSece/Lumi-Co-Backend/internal/kafka"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
)

type fakeStore struct {
	records []Record
	err     error
}

func (s *fakeStore) Record(ctx context.Context, rec Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func envelopeMessage(t *testing.T, eventType, gatewayOrderID string, payload any) kafkago.Message {
	t.Helper()
	env := orders.Envelope{
		EventID:       "7b8a9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d",
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Producer:      "lumi-order-api",
		CorrelationID: gatewayOrderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	return kafkago.Message{
		Key:   orders.PartitionKey(gatewayOrderID),
		Value: kafkax.MustMarshal(env),
	}
}

func TestHandleEventRecordsEnvelope(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store, ServiceName: "auditor-test"}

	m := envelopeMessage(t, orders.EventOrderPaid, "order_ABC123", orders.OrderPaidPayload{
		GatewayOrderID:   "order_ABC123",
		GatewayPaymentID: "pay_XYZ789",
		AmountMinorUnits: 200000,
		PaidAt:           time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, svc.HandleEvent(context.Background(), m))

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "7b8a9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d", rec.EventID)
	assert.Equal(t, orders.EventOrderPaid, rec.EventType)
	assert.Equal(t, "order_ABC123", rec.GatewayOrderID)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), rec.OccurredAt)

	payload, err := kafkax.UnwrapPayload[orders.OrderPaidPayload](rec.Payload)
	require.NoError(t, err)
	assert.Equal(t, "pay_XYZ789", payload.GatewayPaymentID)
}

func TestHandleEventSkipsForeignMessages(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store, ServiceName: "auditor-test"}

	m := kafkago.Message{Value: []byte(`{"something":"else"}`)}
	require.NoError(t, svc.HandleEvent(context.Background(), m))
	assert.Empty(t, store.records)
}

func TestHandleEventRejectsGarbage(t *testing.T) {
	svc := &Service{Store: &fakeStore{}, ServiceName: "auditor-test"}
	err := svc.HandleEvent(context.Background(), kafkago.Message{Value: []byte("not json")})
	require.Error(t, err)
}

func TestHandleEventPropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: assert.AnError}
	svc := &Service{Store: store, ServiceName: "auditor-test"}

	m := envelopeMessage(t, orders.EventOrderCreated, "order_ABC123", orders.OrderCreatedPayload{
		GatewayOrderID: "order_ABC123",
	})
	assert.Error(t, svc.HandleEvent(context.Background(), m))
}

func TestUnwrapPayloadError(t *testing.T) {
	_, err := kafkax.UnwrapPayload[orders.OrderPaidPayload](json.RawMessage("not json"))
	assert.Error(t, err)
}
