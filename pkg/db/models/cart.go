package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a shopper's live cart plus the promo and shipping widget state.
// Totals are never stored: every quote recomputes them from the lines.
type Cart struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID *uuid.UUID `gorm:"column:user_id;type:uuid;index"`

	PromoCode     string          `gorm:"column:promo_code;not null;default:''"`
	PromoApplied  bool            `gorm:"column:promo_applied;not null;default:false"`
	PromoDiscount decimal.Decimal `gorm:"column:promo_discount;type:numeric(12,2);not null;default:0"`
	PromoExpanded bool            `gorm:"column:promo_expanded;not null;default:false"`

	ShippingPostalCode string          `gorm:"column:shipping_postal_code;not null;default:''"`
	ShippingCalculated bool            `gorm:"column:shipping_calculated;not null;default:false"`
	ShippingCost       decimal.Decimal `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	ShippingExpanded   bool            `gorm:"column:shipping_expanded;not null;default:false"`

	GiftBag bool `gorm:"column:gift_bag;not null;default:false"`

	Lines []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CartLine is a single product entry in a cart. Quantity is always >= 1;
// dropping to zero removes the line instead.
type CartLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
