package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/watchlist"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// WatchlistRepository implements watchlist.Repository using
// PostgreSQL. Every operation goes through the connector, so the
// first one to run establishes the cached pool.
type WatchlistRepository struct {
	conn *Connector
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(conn *Connector) *WatchlistRepository {
	return &WatchlistRepository{conn: conn}
}

// ListByUser returns the user's entries ordered by added_at ascending
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]watchlist.Entry, error) {
	pool, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT symbol, company, added_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at ASC
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	entries := []watchlist.Entry{}
	for rows.Next() {
		var e watchlist.Entry
		if err := rows.Scan(&e.Symbol, &e.Company, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListSymbolsByUser returns the user's symbols, no ordering guarantee
func (r *WatchlistRepository) ListSymbolsByUser(ctx context.Context, userID string) ([]string, error) {
	pool, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT symbol FROM watchlist WHERE user_id = $1`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	return symbols, rows.Err()
}

// Exists reports whether (userID, symbol) is present
func (r *WatchlistRepository) Exists(ctx context.Context, userID, symbol string) (bool, error) {
	pool, err := r.conn.Connect(ctx)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND symbol = $2)`

	var exists bool
	if err := pool.QueryRow(ctx, query, userID, symbol).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check watchlist entry: %w", err)
	}
	return exists, nil
}

// Insert adds an item. The unique index on (user_id, symbol) is the
// authoritative duplicate guard; its violation maps to ErrDuplicate.
func (r *WatchlistRepository) Insert(ctx context.Context, item watchlist.Item) error {
	pool, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO watchlist (id, user_id, symbol, company, added_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = pool.Exec(ctx, query, item.ID, item.UserID, item.Symbol, item.Company, item.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return watchlist.ErrDuplicate
		}
		return fmt.Errorf("failed to insert watchlist item: %w", err)
	}
	return nil
}

// DeleteByUserSymbol removes the matching row. Deleting an absent row
// is not an error.
func (r *WatchlistRepository) DeleteByUserSymbol(ctx context.Context, userID, symbol string) error {
	pool, err := r.conn.Connect(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM watchlist WHERE user_id = $1 AND symbol = $2`

	if _, err := pool.Exec(ctx, query, userID, symbol); err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	return nil
}
