package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
)

// AuthStore implements auth.Store using PostgreSQL
type AuthStore struct {
	pool *Pool
}

// NewAuthStore creates a new AuthStore
func NewAuthStore(pool *Pool) *AuthStore {
	return &AuthStore{pool: pool}
}

// CreateUser inserts a user; duplicate emails map to ErrEmailTaken
func (s *AuthStore) CreateUser(ctx context.Context, u auth.User) error {
	query := `
		INSERT INTO "user" (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UserByEmail returns the user or auth.ErrUserNotFound
func (s *AuthStore) UserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM "user"
		WHERE email = $1
	`

	var u auth.User
	err := s.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// CreateSession inserts a session row
func (s *AuthStore) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	query := `
		INSERT INTO "session" (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.pool.Exec(ctx, query, token, userID, expiresAt, time.Now()); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// SessionByToken returns the session joined with its user
func (s *AuthStore) SessionByToken(ctx context.Context, token string) (*auth.Session, error) {
	query := `
		SELECT s.expires_at, u.id, u.email, u.name, u.created_at
		FROM "session" s
		JOIN "user" u ON u.id = s.user_id
		WHERE s.token = $1
	`

	var sess auth.Session
	err := s.pool.QueryRow(ctx, query, token).Scan(
		&sess.ExpiresAt,
		&sess.User.ID, &sess.User.Email, &sess.User.Name, &sess.User.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes a session; absent rows are not an error
func (s *AuthStore) DeleteSession(ctx context.Context, token string) error {
	query := `DELETE FROM "session" WHERE token = $1`

	if _, err := s.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry. Backs the
// cleanup-sessions CLI subcommand, not the request path.
func (s *AuthStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM "session" WHERE expires_at < now()`

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
