package orders

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeAmounts sums price*quantity over items and derives the gateway's
// smallest-unit representation (paise). Totals that round to zero or below
// never reach the gateway or the database.
func ComputeAmounts(items []Item) (amount decimal.Decimal, minorUnits int64, err error) {
	amount = decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromFloat(it.Quantity))
		amount = amount.Add(line)
	}
	paise := amount.Mul(hundred).Round(0)
	// IntPart truncates silently past int64, so reject those totals up front.
	if !paise.BigInt().IsInt64() {
		return decimal.Zero, 0, &ValidationError{Msg: "Order amount is too large."}
	}
	minorUnits = paise.IntPart()
	if minorUnits <= 0 {
		return decimal.Zero, 0, &ValidationError{Msg: "Order amount must be greater than zero."}
	}
	return amount, minorUnits, nil
}
