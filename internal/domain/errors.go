package domain

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed create or update input.
	// Wrapped with a field message, e.g. fmt.Errorf("%w: title is required", ErrValidation).
	ErrValidation = errors.New("invalid input")

	// ErrOutOfStock indicates a product with no stock left.
	ErrOutOfStock = errors.New("out of stock")

	// ErrEmptyCart indicates checkout was attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnauthenticated indicates an operation that needs a signed-in user.
	ErrUnauthenticated = errors.New("not signed in")
)
