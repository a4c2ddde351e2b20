package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id, gateway_order_id,
	COALESCE(gateway_payment_id, ''), COALESCE(gateway_signature, ''),
	amount, amount_minor_units, currency, status,
	customer_name, customer_email, customer_phone,
	ship_line1, COALESCE(ship_line2, ''), ship_city, ship_state, ship_postal_code, ship_country,
	items, COALESCE(notes, ''), paid_at, created_at, updated_at`

// Insert persists a fresh pending order. The gateway call has already
// succeeded at this point, so a failure here leaves no remote/local mismatch
// that the caller could observe as a half-created order.
func (r *Repo) Insert(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO orders(id, gateway_order_id, amount, amount_minor_units, currency, status,
		                   customer_name, customer_email, customer_phone,
		                   ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
		                   items, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		o.ID, o.GatewayOrderID, o.Amount, o.AmountMinorUnits, o.Currency, string(o.Status),
		o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.ShippingAddress.Line1, o.ShippingAddress.Line2, o.ShippingAddress.City,
		o.ShippingAddress.State, o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		items, o.Notes,
	)
	return err
}

func (r *Repo) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE gateway_order_id=$1`, gatewayOrderID)

	var o Order
	var status string
	var items []byte
	err := row.Scan(&o.ID, &o.GatewayOrderID,
		&o.GatewayPaymentID, &o.GatewaySignature,
		&o.Amount, &o.AmountMinorUnits, &o.Currency, &status,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.ShippingAddress.Line1, &o.ShippingAddress.Line2, &o.ShippingAddress.City,
		&o.ShippingAddress.State, &o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&items, &o.Notes, &o.PaidAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Msg: "Order not found."}
	}
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkPaid is a compare-and-set: only a still-pending order transitions, so
// duplicate or racing callbacks cannot rewrite a terminal state. Returns false
// when the guard did not match.
func (r *Repo) MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string, paidAt time.Time) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET status=$2, gateway_payment_id=$3, gateway_signature=$4, paid_at=$5, updated_at=now()
		WHERE gateway_order_id=$1 AND status=$6`,
		gatewayOrderID, string(StatusPaid), paymentID, signature, paidAt, string(StatusPending),
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// MarkFailed uses the same pending-only guard as MarkPaid.
func (r *Repo) MarkFailed(ctx context.Context, gatewayOrderID string) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=now()
		WHERE gateway_order_id=$1 AND status=$3`,
		gatewayOrderID, string(StatusFailed), string(StatusPending),
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}
