package pricing

import "github.com/shopspring/decimal"

// Defaults for the storefront's flat-rate policy. Overridable via config.
var (
	DefaultFreeShippingThreshold = decimal.NewFromInt(1000)
	DefaultShippingFee           = decimal.NewFromInt(15)
	DefaultTaxRate               = decimal.RequireFromString("0.21")
)

// Policy carries the pricing constants applied to every quote.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPolicy returns the flat-rate defaults.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		ShippingFee:           DefaultShippingFee,
		TaxRate:               DefaultTaxRate,
	}
}

// Line is the minimal cart line view the calculators need.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Summary is the derived cart breakdown. It is never persisted; callers
// recompute it from the live line set on every read.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	GiftBag  decimal.Decimal `json:"gift_bag"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// ShippingCost is zero at or above the free-shipping threshold, otherwise the
// flat fee. No distance or weight model.
func ShippingCost(subtotal, threshold, fee decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(threshold) {
		return decimal.Zero
	}
	return fee
}

// Tax applies the configured flat rate to the subtotal.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate)
}

// Summarize composes the full breakdown. The total is not clamped: an
// oversized discount yields a negative total, which callers must reject
// before quoting.
func Summarize(lines []Line, discount, giftBag decimal.Decimal, policy Policy) Summary {
	subtotal := Subtotal(lines)
	shipping := ShippingCost(subtotal, policy.FreeShippingThreshold, policy.ShippingFee)
	tax := Tax(subtotal, policy.TaxRate)
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		GiftBag:  giftBag,
		Total:    subtotal.Add(shipping).Add(tax).Add(giftBag).Sub(discount),
	}
}
