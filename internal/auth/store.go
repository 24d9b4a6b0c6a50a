package auth

import (
	"context"
	"time"
)

// User is an account row in the auth-owned "user" table.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is a resolved, valid session. The embedded user identity is
// what guarded operations scope their queries by.
type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Store defines the persistence interface for users and sessions.
type Store interface {
	// CreateUser inserts a user; returns ErrEmailTaken on duplicate email
	CreateUser(ctx context.Context, u User) error

	// UserByEmail returns the user or ErrUserNotFound
	UserByEmail(ctx context.Context, email string) (*User, error)

	// CreateSession inserts a session row for the user
	CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error

	// SessionByToken returns the session joined with its user, or
	// ErrSessionNotFound
	SessionByToken(ctx context.Context, token string) (*Session, error)

	// DeleteSession removes a session; absent rows are not an error
	DeleteSession(ctx context.Context, token string) error
}
