package user

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the persistence boundary for user accounts.
type Repository interface {
	// Create inserts a credential-registered user. Returns
	// domain.ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	// EnsureByEmail inserts the user on first federated sign-in and returns
	// the existing row on subsequent ones.
	EnsureByEmail(ctx context.Context, name, email string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
