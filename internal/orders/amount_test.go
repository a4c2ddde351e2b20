package orders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmounts(t *testing.T) {
	tests := []struct {
		name       string
		items      []Item
		wantAmount string
		wantMinor  int64
		wantErr    string
	}{
		{
			name:       "single line",
			items:      []Item{{Name: "Ring", Price: 1000, Quantity: 2}},
			wantAmount: "2000",
			wantMinor:  200000,
		},
		{
			name: "multiple lines",
			items: []Item{
				{Name: "Ring", Price: 499.5, Quantity: 1},
				{Name: "Chain", Price: 250.25, Quantity: 2},
			},
			wantAmount: "1000",
			wantMinor:  100000,
		},
		{
			name:       "fractional paise rounds",
			items:      []Item{{Name: "Stud", Price: 0.333, Quantity: 1}},
			wantAmount: "0.333",
			wantMinor:  33,
		},
		{
			name:    "zero total rejected",
			items:   []Item{{Name: "Freebie", Price: 0, Quantity: 5}},
			wantErr: "Order amount must be greater than zero.",
		},
		{
			name:    "negative total rejected",
			items:   []Item{{Name: "Refund", Price: -100, Quantity: 1}},
			wantErr: "Order amount must be greater than zero.",
		},
		{
			name:    "zero quantity rejected",
			items:   []Item{{Name: "Ring", Price: 1000, Quantity: 0}},
			wantErr: "Order amount must be greater than zero.",
		},
		{
			name:    "total past int64 paise rejected",
			items:   []Item{{Name: "Vault", Price: 1e18, Quantity: 1000}},
			wantErr: "Order amount is too large.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, minor, err := ComputeAmounts(tt.items)
			if tt.wantErr != "" {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantErr, ve.Msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, amount.String())
			assert.Equal(t, tt.wantMinor, minor)
		})
	}
}

func TestItemUnmarshalCoercesNumbers(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantP    float64
		wantQ    float64
		wantName string
	}{
		{"plain numbers", `{"name":"Ring","price":1000,"quantity":2}`, 1000, 2, "Ring"},
		{"numeric strings", `{"name":"Ring","price":"750.5","quantity":"3"}`, 750.5, 3, "Ring"},
		{"missing numbers", `{"name":"Ring"}`, 0, 0, "Ring"},
		{"null numbers", `{"name":"Ring","price":null,"quantity":null}`, 0, 0, "Ring"},
		{"garbage strings", `{"name":"Ring","price":"abc","quantity":"x"}`, 0, 0, "Ring"},
		{"wrong types", `{"name":"Ring","price":{"a":1},"quantity":[2]}`, 0, 0, "Ring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			require.NoError(t, json.Unmarshal([]byte(tt.body), &it))
			assert.Equal(t, tt.wantName, it.Name)
			assert.Equal(t, tt.wantP, it.Price)
			assert.Equal(t, tt.wantQ, it.Quantity)
		})
	}
}
