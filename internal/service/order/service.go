package order

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

type ordersRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.OrderSummary, error)
	GetDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	ListAll(ctx context.Context) ([]domain.AdminOrder, error)
	Advance(ctx context.Context, orderID int64) (domain.PaymentStatus, error)
}

type usersRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Service is the read side of orders plus the admin status progression.
type Service struct {
	orders ordersRepo
	users  usersRepo
}

// New builds the order query service.
func New(orders ordersRepo, users usersRepo) *Service {
	return &Service{orders: orders, users: users}
}

// ListForUser resolves the identity to a user row and returns that user's
// order history, newest-first.
func (s *Service) ListForUser(ctx context.Context, identity domain.Identity) ([]domain.OrderSummary, error) {
	if identity.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.orders.ListByUser(ctx, u.ID)
}

// Detail returns the full order for its owner or an admin. Orders owned by
// someone else are reported as not found rather than forbidden.
func (s *Service) Detail(ctx context.Context, identity domain.Identity, orderID int64) (*domain.OrderDetail, error) {
	if identity.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	d, err := s.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && d.UserID != identity.UserID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListAll returns the admin dashboard listing.
func (s *Service) ListAll(ctx context.Context) ([]domain.AdminOrder, error) {
	return s.orders.ListAll(ctx)
}

// Advance moves an order one step along the fulfillment progression.
func (s *Service) Advance(ctx context.Context, orderID int64) (domain.PaymentStatus, error) {
	return s.orders.Advance(ctx, orderID)
}
