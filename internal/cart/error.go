package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity  = errors.New("invalid cart quantity")
	ErrInvalidProductID = errors.New("product is required")
	ErrInvalidInput     = errors.New("invalid cart request body")

	// -- Resource State --
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartItemAlreadyExist = errors.New("cart item already exists")
	ErrInsufficientStock    = errors.New("insufficient stock")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
