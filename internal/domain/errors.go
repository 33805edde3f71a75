package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (e.g. duplicate email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates the request carries no resolvable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmptyCart indicates a checkout was submitted without any items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUserNotFound indicates the authenticated identity has no user row.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden indicates the identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition indicates a payment status cannot advance further.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput indicates a request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidItemError points at the offending cart item by index.
type InvalidItemError struct {
	Index  int
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid cart item at index %d: %s", e.Index, e.Reason)
}
