package watchlist

import "context"

// Repository defines the interface for watchlist data access. All
// operations are scoped to a single user; rows of other users are
// never visible through it.
type Repository interface {
	// ListByUser returns the user's entries ordered by added_at ascending
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// ListSymbolsByUser returns the user's symbols, no ordering guarantee
	ListSymbolsByUser(ctx context.Context, userID string) ([]string, error)

	// Exists reports whether (userID, symbol) is present
	Exists(ctx context.Context, userID, symbol string) (bool, error)

	// Insert adds an item; returns ErrDuplicate if (userID, symbol) exists
	Insert(ctx context.Context, item Item) error

	// DeleteByUserSymbol removes the matching row; absent rows are not an error
	DeleteByUserSymbol(ctx context.Context, userID, symbol string) error
}
