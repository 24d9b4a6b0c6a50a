// Package watchlist holds the session-guarded watchlist operations.
// Every operation resolves the caller's session first and degrades to
// an empty or unsuccessful result instead of surfacing faults; the
// underlying error is logged here and nowhere else.
package watchlist

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/watchlist"
)

// Result is the outcome of a mutation.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SessionResolver resolves the caller's session from request headers.
// *auth.Engine satisfies it.
type SessionResolver interface {
	GetSession(ctx context.Context, headers http.Header) (*auth.Session, error)
}

// Service guards watchlist operations with the caller's session.
type Service struct {
	sessions SessionResolver
	repo     watchlist.Repository
}

// NewService creates a Service.
func NewService(sessions SessionResolver, repo watchlist.Repository) *Service {
	return &Service{sessions: sessions, repo: repo}
}

// ListSymbolsByEmail returns the current user's symbols, but only when
// the supplied email matches the session's email. Any mismatch,
// missing session, or fault yields an empty slice.
func (s *Service) ListSymbolsByEmail(ctx context.Context, headers http.Header, email string) []string {
	if email == "" {
		return []string{}
	}

	sess := s.resolve(ctx, headers)
	if sess == nil || sess.User.Email != email {
		return []string{}
	}

	symbols, err := s.repo.ListSymbolsByUser(ctx, sess.User.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.User.ID).Msg("Failed to list watchlist symbols")
		return []string{}
	}
	return symbols
}

// Add puts a symbol on the current user's watchlist.
func (s *Service) Add(ctx context.Context, headers http.Header, symbol, company string) Result {
	sess := s.resolve(ctx, headers)
	if sess == nil {
		return Result{Success: false, Error: "Not authenticated"}
	}

	item := watchlist.Item{
		ID:      uuid.New().String(),
		UserID:  sess.User.ID,
		Symbol:  watchlist.NormalizeSymbol(symbol),
		Company: watchlist.NormalizeCompany(company),
		AddedAt: time.Now(),
	}

	if err := item.Validate(); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	// Fast path for the friendly message; the unique index below is
	// the authoritative guard under concurrent adds.
	exists, err := s.repo.Exists(ctx, item.UserID, item.Symbol)
	if err != nil {
		log.Error().Err(err).Str("user_id", item.UserID).Msg("Failed to check watchlist entry")
		return Result{Success: false, Error: "Failed to add to watchlist"}
	}
	if exists {
		return Result{Success: false, Error: "Already in watchlist"}
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if errors.Is(err, watchlist.ErrDuplicate) {
			return Result{Success: false, Error: "Already in watchlist"}
		}
		log.Error().Err(err).Str("user_id", item.UserID).Str("symbol", item.Symbol).Msg("Failed to add to watchlist")
		return Result{Success: false, Error: "Failed to add to watchlist"}
	}

	return Result{Success: true}
}

// Remove takes a symbol off the current user's watchlist. Removing a
// symbol that is not present still succeeds.
func (s *Service) Remove(ctx context.Context, headers http.Header, symbol string) Result {
	sess := s.resolve(ctx, headers)
	if sess == nil {
		return Result{Success: false, Error: "Not authenticated"}
	}

	normalized := watchlist.NormalizeSymbol(symbol)
	if err := s.repo.DeleteByUserSymbol(ctx, sess.User.ID, normalized); err != nil {
		log.Error().Err(err).Str("user_id", sess.User.ID).Str("symbol", normalized).Msg("Failed to remove from watchlist")
		return Result{Success: false, Error: "Failed to remove from watchlist"}
	}

	return Result{Success: true}
}

// ListItems returns the current user's entries ordered by added_at
// ascending; empty on missing session or fault.
func (s *Service) ListItems(ctx context.Context, headers http.Header) []watchlist.Entry {
	sess := s.resolve(ctx, headers)
	if sess == nil {
		return []watchlist.Entry{}
	}

	entries, err := s.repo.ListByUser(ctx, sess.User.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.User.ID).Msg("Failed to list watchlist items")
		return []watchlist.Entry{}
	}
	return entries
}

// resolve treats any session-resolution fault as "no session".
func (s *Service) resolve(ctx context.Context, headers http.Header) *auth.Session {
	sess, err := s.sessions.GetSession(ctx, headers)
	if err != nil {
		log.Error().Err(err).Msg("Session resolution failed")
		return nil
	}
	if sess == nil || sess.User.ID == "" {
		return nil
	}
	return sess
}
