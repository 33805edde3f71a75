package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const serialRetries = 3

type productsRepo interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in productrepo.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in productrepo.UpdateInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, category string) (int, error)
}

// Service owns catalog logic: public listing plus admin CRUD.
type Service struct {
	repo productsRepo
}

// New builds the catalog service.
func New(repo productsRepo) *Service {
	return &Service{repo: repo}
}

// CreateInput is the admin-facing shape; the serial code is generated here.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateInput mirrors the repository's partial-update shape.
type UpdateInput = productrepo.UpdateInput

// List returns the storefront catalog; unavailable products are included
// only for admins.
func (s *Service) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	return s.repo.List(ctx, includeUnavailable)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, assigns a per-category serial code, and
// inserts the product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}

	// Concurrent creates in one category can race to the same sequence
	// number; on a serial-code conflict, recount and try again.
	var lastErr error
	for attempt := 0; attempt < serialRetries; attempt++ {
		count, err := s.repo.CountByCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		p, err := s.repo.Create(ctx, productrepo.CreateInput{
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			PriceCents:  in.PriceCents,
			Category:    category,
			SerialCode:  SerialCode(category, count+1+attempt),
			Stock:       in.Stock,
			ImageURL:    strings.TrimSpace(in.ImageURL),
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			lastErr = err
			continue
		}
		return p, err
	}
	return nil, lastErr
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, in)
}

// Delete hides the product from the catalog. The row stays so order
// history keeps resolving product names.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// SerialCode derives a human-readable catalog code from the category and
// a 1-based sequence number, e.g. "ELEC-004".
func SerialCode(category string, seq int) string {
	prefix := strings.ToUpper(strings.TrimSpace(category))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	if prefix == "" {
		prefix = "GEN"
	}
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
