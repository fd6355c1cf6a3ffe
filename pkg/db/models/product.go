package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a storefront catalog entry.
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string          `gorm:"type:text;not null;uniqueIndex"`
	Title           string          `gorm:"type:text;not null"`
	Description     string          `gorm:"type:text;not null;default:''"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tags            pq.StringArray  `gorm:"type:text[]"`
	FeaturedImage   *string         `gorm:"column:featured_image"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	GiftBagEligible bool            `gorm:"column:gift_bag_eligible;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
