package domain

import "github.com/shopspring/decimal"

var (
	taxRate               = decimal.RequireFromString("0.08")
	freeShippingThreshold = decimal.RequireFromString("50")
	flatShippingFee       = decimal.RequireFromString("5.99")
)

// PricedLine is the pricing engine's input: one cart line with the unit
// price in effect at pricing time.
type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
}

// Price computes subtotal, tax, shipping fee and total over the lines.
// Tax is 8% of the subtotal, rounded half-up to cents on the final result
// only. Orders of $50 or more ship free; everything else pays a flat $5.99.
func Price(lines []PricedLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		ShippingFee: shipping,
		Total:       subtotal.Add(tax).Add(shipping),
	}
}
