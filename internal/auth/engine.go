// Package auth implements email+password authentication with
// database-backed sessions. Session tokens travel as HMAC-signed
// cookie values so a stolen database dump cannot be replayed without
// the signing secret.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "stockapp.session_token"

// Config holds engine options.
type Config struct {
	Secret  string // HMAC key for session token signing
	BaseURL string // public base URL, used for cookie attributes

	MinPasswordLength int
	MaxPasswordLength int

	DisableSignUp            bool
	RequireEmailVerification bool
	AutoSignIn               bool // issue a session right after sign-up

	SessionTTL time.Duration
}

// DefaultConfig returns the engine options used by the app: sign-up
// open, no mandatory email verification, password length within
// [8,128], automatic sign-in after registration.
func DefaultConfig(secret, baseURL string, sessionTTL time.Duration) Config {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return Config{
		Secret:                   secret,
		BaseURL:                  baseURL,
		MinPasswordLength:        8,
		MaxPasswordLength:        128,
		DisableSignUp:            false,
		RequireEmailVerification: false,
		AutoSignIn:               true,
		SessionTTL:               sessionTTL,
	}
}

// Engine is the authentication engine.
type Engine struct {
	cfg   Config
	store Store
}

// NewEngine creates an Engine backed by the given store.
func NewEngine(cfg Config, store Store) *Engine {
	return &Engine{cfg: cfg, store: store}
}

// Config returns the engine options.
func (e *Engine) Config() Config {
	return e.cfg
}

// SignUp registers a new user. With AutoSignIn enabled it also issues
// a session; otherwise the returned session is nil.
func (e *Engine) SignUp(ctx context.Context, email, name, password string) (*Session, error) {
	if e.cfg.DisableSignUp {
		return nil, ErrSignUpDisabled
	}

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := e.checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := e.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID).Msg("User registered")

	if !e.cfg.AutoSignIn {
		return nil, nil
	}

	return e.issueSession(ctx, u)
}

// SignIn verifies credentials and issues a session.
func (e *Engine) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := e.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return e.issueSession(ctx, *u)
}

// SignOut deletes the session behind a signed token value. Invalid or
// unknown tokens are ignored.
func (e *Engine) SignOut(ctx context.Context, signedToken string) error {
	token, ok := e.verifyToken(signedToken)
	if !ok {
		return nil
	}
	return e.store.DeleteSession(ctx, token)
}

// GetSession resolves the session referenced by the request headers.
// It returns (nil, nil) when no valid session exists: missing cookie,
// bad signature, unknown or expired token. An error is returned only
// for storage faults.
func (e *Engine) GetSession(ctx context.Context, headers http.Header) (*Session, error) {
	signedToken := tokenFromHeaders(headers)
	if signedToken == "" {
		return nil, nil
	}

	token, ok := e.verifyToken(signedToken)
	if !ok {
		return nil, nil
	}

	sess, err := e.store.SessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		if err := e.store.DeleteSession(ctx, token); err != nil {
			log.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return nil, nil
	}

	sess.Token = signedToken
	return sess, nil
}

func (e *Engine) issueSession(ctx context.Context, u User) (*Session, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	expiresAt := time.Now().Add(e.cfg.SessionTTL)
	if err := e.store.CreateSession(ctx, token, u.ID, expiresAt); err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return &Session{
		Token:     e.signToken(token),
		ExpiresAt: expiresAt,
		User:      u,
	}, nil
}

func (e *Engine) checkPassword(password string) error {
	if len(password) < e.cfg.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > e.cfg.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// signToken produces "token.signature" with an HMAC-SHA256 signature
// keyed by the engine secret.
func (e *Engine) signToken(token string) string {
	mac := hmac.New(sha256.New, []byte(e.cfg.Secret))
	mac.Write([]byte(token))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return token + "." + sig
}

// verifyToken checks the signature and returns the bare token.
func (e *Engine) verifyToken(signedToken string) (string, bool) {
	token, sig, found := strings.Cut(signedToken, ".")
	if !found || token == "" {
		return "", false
	}

	mac := hmac.New(sha256.New, []byte(e.cfg.Secret))
	mac.Write([]byte(token))
	want := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return token, true
}

// tokenFromHeaders extracts the signed token from the session cookie,
// falling back to an Authorization bearer token for API clients.
func tokenFromHeaders(headers http.Header) string {
	req := http.Request{Header: headers}
	if cookie, err := req.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authz := headers.Get("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
