package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	"github.com/maisonluxe/storefront-backend/pkg/pricing"
)

// CartDTO is the cart transport shape: the stored widget state plus the
// quote recomputed for this response.
type CartDTO struct {
	ID      uuid.UUID  `json:"id"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
	Lines   []LineDTO  `json:"lines"`
	GiftBag bool       `json:"gift_bag"`

	Promo    PromoStateDTO    `json:"promo"`
	Shipping ShippingStateDTO `json:"shipping"`

	Summary pricing.Summary `json:"summary"`
}

// LineDTO is a single cart entry.
type LineDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PromoStateDTO mirrors the promo widget state machine.
type PromoStateDTO struct {
	Code     string          `json:"code"`
	Applied  bool            `json:"applied"`
	Discount decimal.Decimal `json:"discount"`
	Expanded bool            `json:"expanded"`
}

// ShippingStateDTO mirrors the shipping widget state machine.
type ShippingStateDTO struct {
	PostalCode string          `json:"postal_code"`
	Calculated bool            `json:"calculated"`
	Cost       decimal.Decimal `json:"cost"`
	Expanded   bool            `json:"expanded"`
}

func fromModel(c *models.Cart, summary pricing.Summary) *CartDTO {
	lines := make([]LineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, LineDTO{
			ProductID: l.ProductID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	return &CartDTO{
		ID:      c.ID,
		UserID:  c.UserID,
		Lines:   lines,
		GiftBag: c.GiftBag,
		Promo: PromoStateDTO{
			Code:     c.PromoCode,
			Applied:  c.PromoApplied,
			Discount: AppliedDiscount(c),
			Expanded: c.PromoExpanded,
		},
		Shipping: ShippingStateDTO{
			PostalCode: c.ShippingPostalCode,
			Calculated: c.ShippingCalculated,
			Cost:       CalculatedShippingCost(c),
			Expanded:   c.ShippingExpanded,
		},
		Summary: summary,
	}
}
