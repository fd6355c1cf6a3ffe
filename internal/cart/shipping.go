package cart

import (
	"strings"

	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/pricing"
	"github.com/shopspring/decimal"
)

// The shipping widget is a two-state machine: idle (calculated=false) and
// calculated. Any postal code edit drops back to idle so a stale cost is
// never trusted. The expanded flag is UI visibility only and moves
// independently of the calculation state.

// SetShippingPostalCode stores the postal code and invalidates any prior
// calculation.
func SetShippingPostalCode(c *models.Cart, code string) {
	c.ShippingPostalCode = strings.TrimSpace(code)
	c.ShippingCalculated = false
}

// CalculateShipping computes the cost for the stored postal code using the
// flat-rate policy and marks the state calculated. It fails without touching
// state when no postal code has been entered.
func CalculateShipping(c *models.Cart, subtotal decimal.Decimal, policy pricing.Policy) error {
	if c.ShippingPostalCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "postal code is required")
	}
	c.ShippingCost = pricing.ShippingCost(subtotal, policy.FreeShippingThreshold, policy.ShippingFee)
	c.ShippingCalculated = true
	return nil
}

// ResetShipping forces the widget back to idle with a zero cost.
func ResetShipping(c *models.Cart) {
	c.ShippingPostalCode = ""
	c.ShippingCalculated = false
	c.ShippingCost = decimal.Zero
}

// ToggleShippingOpen flips the widget visibility.
func ToggleShippingOpen(c *models.Cart) {
	c.ShippingExpanded = !c.ShippingExpanded
}

// CalculatedShippingCost returns the stored cost only while the state is
// calculated; an invalidated cost reads as zero.
func CalculatedShippingCost(c *models.Cart) decimal.Decimal {
	if !c.ShippingCalculated {
		return decimal.Zero
	}
	return c.ShippingCost
}
