// Package audit records every published order event into the order_events
// table, giving ops a queryable trail of what the gateway and the API did.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/redisx"
)

type Record struct {
	EventID        string
	EventType      string
	GatewayOrderID string
	Payload        json.RawMessage
	OccurredAt     time.Time
}

type Store interface {
	Record(ctx context.Context, rec Record) error
}

type Service struct {
	Store       Store
	Redis       *redis.Client
	ServiceName string
}

// HandleEvent is installed as the consumer handler for every order topic.
// Kafka delivers at-least-once, so it dedups on event id before writing; the
// store's insert is idempotent as a second line of defense.
func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventID == "" {
		return nil // not an envelope we produced, skip
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	return s.Store.Record(ctx, Record{
		EventID:        env.EventID,
		EventType:      env.EventType,
		GatewayOrderID: env.CorrelationID,
		Payload:        env.Payload,
		OccurredAt:     env.OccurredAt,
	})
}
