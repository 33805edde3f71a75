package order

import (
	"context"

	"storefront/internal/domain"
)

// ItemInput is one cart line accepted into an order.
type ItemInput struct {
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
}

// CreateInput carries everything the checkout service resolved for the
// order insert. TotalPriceCents is the server-computed total.
type CreateInput struct {
	UserID          int64
	TotalPriceCents int64
	Items           []ItemInput
}

// Repository is the persistence boundary for orders and their line items.
type Repository interface {
	// Create inserts the order header and all line items in one
	// transaction; either the whole order becomes visible or nothing does.
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	// ListByUser returns the user's orders newest-first, each annotated
	// with its line-item count.
	ListByUser(ctx context.Context, userID int64) ([]domain.OrderSummary, error)
	// GetDetail returns the header joined with the owner and full line set.
	GetDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	// ListAll returns every order with its customer name, newest-first.
	ListAll(ctx context.Context) ([]domain.AdminOrder, error)
	// Advance moves the order's payment status one step along the
	// Pending -> Shipped -> Delivered progression.
	Advance(ctx context.Context, orderID int64) (domain.PaymentStatus, error)
}
