package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartRepository interface {
	Create(ctx context.Context, userID *uuid.UUID) (*models.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Update(ctx context.Context, cart *models.Cart) error
	FindLine(ctx context.Context, cartID, productID uuid.UUID) (*models.CartLine, error)
	SaveLine(ctx context.Context, line *models.CartLine) error
	DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes all cart operations. Every mutating call returns the fresh
// cart view with a fully recomputed quote.
type Service interface {
	GetOrCreateForUser(ctx context.Context, userID *uuid.UUID) (*CartDTO, error)
	Get(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)

	AddLine(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*CartDTO, error)
	UpdateLineQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveLine(ctx context.Context, cartID, productID uuid.UUID) (*CartDTO, error)
	SetGiftBag(ctx context.Context, cartID uuid.UUID, enabled bool) (*CartDTO, error)

	SetPostalCode(ctx context.Context, cartID uuid.UUID, code string) (*CartDTO, error)
	CalculateShipping(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)
	ResetShipping(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)
	ToggleShippingOpen(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)

	ApplyPromo(ctx context.Context, cartID uuid.UUID, code string) (*CartDTO, error)
	RemovePromo(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)
	TogglePromoOpen(ctx context.Context, cartID uuid.UUID) (*CartDTO, error)
}

type service struct {
	repo      cartRepository
	products  productLoader
	policy    pricing.Policy
	promoRate decimal.Decimal
	giftFee   decimal.Decimal
	validate  PromoValidator
}

// NewService builds a cart service from the pricing configuration.
func NewService(repo cartRepository, products productLoader, cfg config.PricingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		repo:     repo,
		products: products,
		policy: pricing.Policy{
			FreeShippingThreshold: cfg.FreeShippingThreshold,
			ShippingFee:           cfg.ShippingFee,
			TaxRate:               cfg.TaxRate,
		},
		promoRate: cfg.PromoDiscountRate,
		giftFee:   cfg.GiftBagFee,
		validate:  NewAllowListValidator(cfg.PromoCodes),
	}, nil
}

func (s *service) GetOrCreateForUser(ctx context.Context, userID *uuid.UUID) (*CartDTO, error) {
	if userID != nil {
		cart, err := s.repo.FindActiveByUser(ctx, *userID)
		if err == nil {
			return s.quote(cart)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
	}

	cart, err := s.repo.Create(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return s.quote(cart)
}

func (s *service) Get(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.quote(cart)
}

func (s *service) AddLine(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is no longer available")
	}

	line, err := s.repo.FindLine(ctx, cart.ID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}
	if line == nil {
		line = &models.CartLine{
			CartID:    cart.ID,
			ProductID: productID,
			UnitPrice: product.Price,
			Quantity:  quantity,
		}
	} else {
		line.Quantity += quantity
	}
	if err := s.repo.SaveLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}

	return s.reload(ctx, cart.ID)
}

// UpdateLineQuantity sets the absolute quantity. Zero removes the line so the
// quantity >= 1 invariant never holds a dead row.
func (s *service) UpdateLineQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveLine(ctx, cartID, productID)
	}

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line, err := s.repo.FindLine(ctx, cart.ID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	line.Quantity = quantity
	if err := s.repo.SaveLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}

	return s.reload(ctx, cart.ID)
}

func (s *service) RemoveLine(ctx context.Context, cartID, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteLine(ctx, cart.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	return s.reload(ctx, cart.ID)
}

func (s *service) SetGiftBag(ctx context.Context, cartID uuid.UUID, enabled bool) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		c.GiftBag = enabled
		return nil
	})
}

func (s *service) SetPostalCode(ctx context.Context, cartID uuid.UUID, code string) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		SetShippingPostalCode(c, code)
		return nil
	})
}

func (s *service) CalculateShipping(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		return CalculateShipping(c, subtotalOf(c), s.policy)
	})
}

func (s *service) ResetShipping(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		ResetShipping(c)
		return nil
	})
}

func (s *service) ToggleShippingOpen(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		ToggleShippingOpen(c)
		return nil
	})
}

func (s *service) ApplyPromo(ctx context.Context, cartID uuid.UUID, code string) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		return ApplyPromo(c, code, subtotalOf(c), s.promoRate, s.validate)
	})
}

func (s *service) RemovePromo(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		RemovePromo(c)
		return nil
	})
}

func (s *service) TogglePromoOpen(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		TogglePromoOpen(c)
		return nil
	})
}

func (s *service) load(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return cart, nil
}

func (s *service) reload(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.quote(cart)
}

func (s *service) mutate(ctx context.Context, cartID uuid.UUID, fn func(*models.Cart) error) (*CartDTO, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return s.quote(cart)
}

// quote recomputes the full summary from the live line set on every call.
// Nothing is memoized: removing a promo or editing a line can never serve a
// stale figure.
func (s *service) quote(cart *models.Cart) (*CartDTO, error) {
	subtotal := subtotalOf(cart)

	discount := AppliedDiscount(cart)
	if discount.GreaterThan(subtotal) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount exceeds cart subtotal, remove the promo code and re-apply")
	}

	giftBag := decimal.Zero
	if cart.GiftBag {
		giftBag = s.giftFee
	}

	// Above the free-shipping threshold the quote always shows zero. Below
	// it, a calculated cost is used as-is; an idle widget quotes the flat
	// fee as the standing estimate.
	lines := pricingLines(cart)
	summary := pricing.Summarize(lines, discount, giftBag, s.policy)
	if subtotal.LessThan(s.policy.FreeShippingThreshold) && cart.ShippingCalculated {
		shipping := CalculatedShippingCost(cart)
		summary.Shipping = shipping
		summary.Total = summary.Subtotal.Add(shipping).Add(summary.Tax).Add(summary.GiftBag).Sub(summary.Discount)
	}

	return fromModel(cart, summary), nil
}

func pricingLines(cart *models.Cart) []pricing.Line {
	lines := make([]pricing.Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return lines
}

func subtotalOf(cart *models.Cart) decimal.Decimal {
	return pricing.Subtotal(pricingLines(cart))
}
