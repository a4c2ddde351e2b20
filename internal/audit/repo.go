package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventLog struct{ DB *pgxpool.Pool }

// Record inserts the event once; replays hit the primary key and are dropped.
func (l *EventLog) Record(ctx context.Context, rec Record) error {
	_, err := l.DB.Exec(ctx, `
		INSERT INTO order_events(event_id, event_type, gateway_order_id, payload, occurred_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (event_id) DO NOTHING`,
		rec.EventID, rec.EventType, rec.GatewayOrderID, []byte(rec.Payload), rec.OccurredAt,
	)
	return err
}
