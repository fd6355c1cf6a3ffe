package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	"github.com/maisonluxe/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows catalog queries. Zero values apply no filtering.
type ListFilter struct {
	Tag string
	pagination.Params
}

// Repository exposes product catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns active products ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)

	if filter.Tag != "" {
		q = q.Where("? = ANY(tags)", filter.Tag)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := q.Order("created_at DESC").
		Limit(pagination.NormalizeLimit(filter.Limit)).
		Offset(filter.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetBySlug loads a single active product by its URL slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByID loads a product regardless of active state. Cart line validation
// uses it so an already-carted product that was deactivated still resolves.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
