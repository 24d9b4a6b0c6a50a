package watchlist

import (
	"strings"
	"time"
)

// Item represents a watchlist entry.
// Maps to the watchlist table; (user_id, symbol) is unique per user.
type Item struct {
	ID      string    `json:"id" db:"id"`
	UserID  string    `json:"user_id" db:"user_id"`
	Symbol  string    `json:"symbol" db:"symbol"`
	Company string    `json:"company" db:"company"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}

// Entry is the caller-facing projection of an item.
type Entry struct {
	Symbol  string    `json:"symbol"`
	Company string    `json:"company"`
	AddedAt time.Time `json:"added_at"`
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NormalizeCompany trims a company display name.
func NormalizeCompany(company string) string {
	return strings.TrimSpace(company)
}

// Validate checks required fields after normalization.
func (i *Item) Validate() error {
	if i.Symbol == "" {
		return ErrEmptySymbol
	}
	if i.Company == "" {
		return ErrEmptyCompany
	}
	return nil
}
