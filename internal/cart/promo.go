package cart

import (
	"strings"

	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// PromoValidator reports whether a promo code is redeemable. The storefront
// ships with a static allow-list; a promotions catalog with expiry or usage
// caps can be swapped in behind the same predicate.
type PromoValidator func(code string) bool

// NewAllowListValidator builds a case-insensitive validator over a fixed set
// of codes.
func NewAllowListValidator(codes []string) PromoValidator {
	allowed := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		allowed[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	return func(code string) bool {
		_, ok := allowed[strings.ToUpper(strings.TrimSpace(code))]
		return ok
	}
}

// ApplyPromo validates the code and, on match, stores the canonical code with
// a discount of subtotal * rate. On no match the cart is left untouched.
func ApplyPromo(c *models.Cart, code string, subtotal, rate decimal.Decimal, valid PromoValidator) error {
	if valid == nil || !valid(code) {
		return pkgerrors.New(pkgerrors.CodeValidation, "promo code is not valid")
	}
	c.PromoCode = strings.ToUpper(strings.TrimSpace(code))
	c.PromoDiscount = subtotal.Mul(rate).Round(2)
	c.PromoApplied = true
	return nil
}

// RemovePromo clears the code and discount. The expanded flag survives the
// transition: closing the widget is a separate user action.
func RemovePromo(c *models.Cart) {
	c.PromoCode = ""
	c.PromoDiscount = decimal.Zero
	c.PromoApplied = false
}

// TogglePromoOpen flips the widget visibility.
func TogglePromoOpen(c *models.Cart) {
	c.PromoExpanded = !c.PromoExpanded
}

// AppliedDiscount returns the stored discount only while a promo is applied.
func AppliedDiscount(c *models.Cart) decimal.Decimal {
	if !c.PromoApplied {
		return decimal.Zero
	}
	return c.PromoDiscount
}
