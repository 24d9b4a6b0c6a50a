package watchlist

import "errors"

var (
	// Validation errors
	ErrEmptySymbol  = errors.New("symbol is required")
	ErrEmptyCompany = errors.New("company is required")

	// ErrDuplicate is returned when (user_id, symbol) already exists.
	// The database unique index is the authoritative guard; repository
	// implementations map its violation to this error.
	ErrDuplicate = errors.New("symbol already in watchlist")
)
