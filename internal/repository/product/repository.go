package product

import (
	"context"

	"storefront/internal/domain"
)

// CreateInput carries the fields an admin supplies for a new product.
type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	SerialCode  string
	Stock       int
	ImageURL    string
}

// UpdateInput carries optional fields for a partial product update.
// Nil pointers leave the stored value untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *string
	Stock       *int
	ImageURL    *string
	Available   *bool
}

// Repository is the persistence boundary for the product catalog.
type Repository interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error)
	// SoftDelete hides the product from the catalog without removing the
	// row, so historical order items keep their reference.
	SoftDelete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, category string) (int, error)
	// UpsertBySerial inserts or refreshes a product keyed by serial code;
	// used by the bulk importer.
	UpsertBySerial(ctx context.Context, p domain.Product) (*domain.Product, error)
}
