package domain

import "errors"

// Domain errors as sentinel values
var (
	// ErrInvalidSubmission wraps every validation failure of an admin
	// submission. Nothing has been translated or written when it is returned.
	ErrInvalidSubmission = errors.New("invalid product submission")

	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptySKU        = errors.New("product sku cannot be empty")
	ErrNegativePrice   = errors.New("product price cannot be negative")
	ErrNegativeStock   = errors.New("product stock cannot be negative")
	ErrInvalidStatus   = errors.New("product status must be ACTIVE or INACTIVE")
	ErrDuplicateSKU    = errors.New("product sku already exists")

	// ErrDuplicateProductID means a generated id collided with a stored one.
	ErrDuplicateProductID = errors.New("product id already exists")

	// Translation errors
	ErrEmptyName           = errors.New("product name cannot be empty")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrIncompleteBundleSet = errors.New("translation bundle set does not cover every supported language")
)
