package orders

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// UnmarshalJSON coerces missing or malformed numeric fields to zero instead of
// rejecting the whole payload; the amount check catches zero totals later.
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Price    json.RawMessage `json:"price"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	it.Name = raw.Name
	it.Price = coerceNumber(raw.Price)
	it.Quantity = coerceNumber(raw.Quantity)
	return nil
}

func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}

type Order struct {
	ID               string
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Amount           decimal.Decimal
	AmountMinorUnits int64
	Currency         string
	Status           Status
	Customer         Customer
	ShippingAddress  ShippingAddress
	Items            []Item
	Notes            string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
