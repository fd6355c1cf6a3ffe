package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonluxe/storefront-backend/pkg/db/models"
)

// ProductDTO is the catalog transport shape.
type ProductDTO struct {
	ID              uuid.UUID       `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Tags            []string        `json:"tags"`
	FeaturedImage   *string         `json:"featured_image,omitempty"`
	GiftBagEligible bool            `json:"gift_bag_eligible"`
	CreatedAt       time.Time       `json:"created_at"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	return &ProductDTO{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		Tags:            append([]string(nil), p.Tags...),
		FeaturedImage:   p.FeaturedImage,
		GiftBagEligible: p.GiftBagEligible,
		CreatedAt:       p.CreatedAt,
	}
}
