package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{UnitPrice: dec("19.99"), Quantity: 2},
		{UnitPrice: dec("120"), Quantity: 1},
		{UnitPrice: dec("0.01"), Quantity: 3},
	}

	if got := Subtotal(lines); !got.Equal(dec("160.01")) {
		t.Fatalf("unexpected subtotal %s", got)
	}
}

func TestSubtotalEmpty(t *testing.T) {
	t.Parallel()

	if got := Subtotal(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("empty cart should total zero, got %s", got)
	}
}

func TestShippingCostStepFunction(t *testing.T) {
	t.Parallel()

	threshold := DefaultFreeShippingThreshold
	fee := DefaultShippingFee

	cases := []struct {
		subtotal string
		want     string
	}{
		{"0", "15"},
		{"999.99", "15"},
		{"1000", "0"},
		{"1000.01", "0"},
		{"5000", "0"},
	}
	for _, tc := range cases {
		if got := ShippingCost(dec(tc.subtotal), threshold, fee); !got.Equal(dec(tc.want)) {
			t.Fatalf("subtotal %s: expected shipping %s, got %s", tc.subtotal, tc.want, got)
		}
	}
}

func TestTax(t *testing.T) {
	t.Parallel()

	if got := Tax(dec("100"), DefaultTaxRate); !got.Equal(dec("21")) {
		t.Fatalf("expected tax 21, got %s", got)
	}
	if got := Tax(decimal.Zero, DefaultTaxRate); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero tax, got %s", got)
	}
}

func TestSummarizeIdentity(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{UnitPrice: dec("250"), Quantity: 2},
		{UnitPrice: dec("99.50"), Quantity: 1},
	}
	discount := dec("59.95")
	giftBag := dec("10")

	s := Summarize(lines, discount, giftBag, DefaultPolicy())

	// The identity must hold exactly for decimal inputs.
	want := s.Subtotal.Add(s.Shipping).Add(s.Tax).Add(s.GiftBag).Sub(s.Discount)
	if !s.Total.Equal(want) {
		t.Fatalf("total identity broken: total=%s want=%s", s.Total, want)
	}
	if !s.Subtotal.Equal(dec("599.50")) {
		t.Fatalf("unexpected subtotal %s", s.Subtotal)
	}
	if !s.Shipping.Equal(dec("15")) {
		t.Fatalf("expected flat shipping below threshold, got %s", s.Shipping)
	}
}

func TestSummarizeFreeShippingAboveThreshold(t *testing.T) {
	t.Parallel()

	lines := []Line{{UnitPrice: dec("600"), Quantity: 2}}

	s := Summarize(lines, decimal.Zero, decimal.Zero, DefaultPolicy())
	if !s.Shipping.Equal(decimal.Zero) {
		t.Fatalf("expected free shipping at subtotal %s, got %s", s.Subtotal, s.Shipping)
	}
}

func TestSummarizeDoesNotClampNegativeTotal(t *testing.T) {
	t.Parallel()

	lines := []Line{{UnitPrice: dec("10"), Quantity: 1}}
	oversized := dec("100")

	s := Summarize(lines, oversized, decimal.Zero, DefaultPolicy())
	if !s.Total.IsNegative() {
		t.Fatalf("oversized discount should produce a negative total, got %s", s.Total)
	}
}
