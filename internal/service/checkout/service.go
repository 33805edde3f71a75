package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type ordersRepo interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
}

type usersRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type productsRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service converts a client-submitted cart into a durable order. All
// validation happens before the transaction opens, so every failure path
// leaves the datastore untouched.
type Service struct {
	orders   ordersRepo
	users    usersRepo
	products productsRepo
	logger   *log.Logger
}

// New builds the checkout service.
func New(orders ordersRepo, users usersRepo, products productsRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, users: users, products: products, logger: logger}
}

// ItemInput is one cart line as submitted by the client.
type ItemInput struct {
	ProductID  int64 `json:"id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price"`
}

// Result is returned on successful checkout.
type Result struct {
	OrderID         int64     `json:"orderId"`
	TotalPriceCents int64     `json:"totalPrice"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Checkout validates the cart against the caller's identity and the
// catalog, computes the authoritative total, and persists the order plus
// its line items atomically. Any client-supplied total is ignored.
func (s *Service) Checkout(ctx context.Context, identity domain.Identity, items []ItemInput) (*Result, error) {
	if identity.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for i, item := range items {
		switch {
		case item.ProductID <= 0:
			return nil, &domain.InvalidItemError{Index: i, Reason: "missing product id"}
		case item.Quantity <= 0:
			return nil, &domain.InvalidItemError{Index: i, Reason: "quantity must be positive"}
		case item.PriceCents < 0:
			return nil, &domain.InvalidItemError{Index: i, Reason: "negative price"}
		}
	}

	u, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// The submitted unit price must match the catalog; the snapshot price
	// therefore always reflects a real catalog price at purchase time.
	var total int64
	lines := make([]orderrepo.ItemInput, 0, len(items))
	for i, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.InvalidItemError{Index: i, Reason: "unknown product"}
			}
			return nil, err
		}
		// Soft-deleted products keep their row for order history but must
		// not be purchasable.
		if !p.Available {
			return nil, &domain.InvalidItemError{Index: i, Reason: "product unavailable"}
		}
		if p.PriceCents != item.PriceCents {
			return nil, &domain.InvalidItemError{Index: i, Reason: "price mismatch"}
		}
		total += int64(item.Quantity) * item.PriceCents
		lines = append(lines, orderrepo.ItemInput{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.PriceCents,
		})
	}

	created, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:          u.ID,
		TotalPriceCents: total,
		Items:           lines,
	})
	if err != nil {
		s.logger.Printf("checkout: create order user=%s items=%d error=%v", identity.Email, len(items), err)
		return nil, err
	}

	s.logger.Printf("checkout: order id=%d user=%s total_cents=%d items=%d", created.ID, identity.Email, total, len(items))
	return &Result{
		OrderID:         created.ID,
		TotalPriceCents: created.TotalPriceCents,
		CreatedAt:       created.CreatedAt,
	}, nil
}
