// Package gateway wraps the Razorpay API: remote order creation and the
// HMAC signature check on payment callbacks.
package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type CreateOrderRequest struct {
	AmountMinorUnits int64
	Currency         string
	Receipt          string
	Notes            map[string]string
}

// Order is the subset of the gateway's order object this service stores.
// ID and Currency are authoritative and persisted verbatim.
type Order struct {
	ID       string
	Currency string
}

type Client struct {
	api    *razorpay.Client
	keyID  string
	secret string
}

// New returns nil when credentials are absent; callers treat a nil client as
// "gateway not configured" and reject requests instead of crashing.
func New(keyID, secret string) *Client {
	if keyID == "" || secret == "" {
		return nil
	}
	return &Client{
		api:    razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

// KeyID is the public key the storefront needs to open the payment UI.
// The secret never leaves this package.
func (c *Client) KeyID() string { return c.keyID }

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	// The SDK does not take a context; honor cancellation up front.
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.AmountMinorUnits,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return Order{}, fmt.Errorf("gateway order response missing id")
	}
	currency, ok := body["currency"].(string)
	if !ok || currency == "" {
		currency = req.Currency
	}
	return Order{ID: id, Currency: currency}, nil
}

func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.secret, orderID, paymentID, signature)
}
