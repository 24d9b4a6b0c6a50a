package postgres

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
)

// minURLLength is the shortest DATABASE_URL accepted after trimming.
const minURLLength = 10

var acceptedSchemes = []string{"postgres://", "postgresql://", "postgresql+neon://"}

// Pool wraps pgxpool.Pool
type Pool struct {
	*pgxpool.Pool
}

// Close closes the connection pool
func (p *Pool) Close() {
	log.Info().Msg("Closing PostgreSQL connection pool...")
	p.Pool.Close()
}

// Connector lazily builds and caches a single connection pool. The
// mutex is held for the whole connection attempt, so concurrent first
// callers share one construction and at most one pool is ever built.
type Connector struct {
	cfg *config.Config

	mu   sync.Mutex
	pool *Pool
}

// NewConnector creates a Connector. No connection is attempted until
// the first Connect call.
func NewConnector(cfg *config.Config) *Connector {
	return &Connector{cfg: cfg}
}

// Connect returns the cached pool, building it on first use. The URL
// is validated before any network activity; a malformed URL yields a
// *database.ConfigError and never dials. A failed attempt clears the
// cache so the next call retries, and returns a
// *database.ConnectionError wrapping the cause.
func (c *Connector) Connect(ctx context.Context) (*Pool, error) {
	url, err := ValidateDatabaseURL(c.cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		return c.pool, nil
	}

	log.Info().Msg("Connecting to PostgreSQL...")

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, &database.ConnectionError{Database: "postgresql", Err: err}
	}

	poolConfig.MaxConns = c.cfg.Database.MaxConns
	poolConfig.MinConns = c.cfg.Database.MinConns
	poolConfig.MaxConnLifetime = c.cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = c.cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, &database.ConnectionError{Database: "postgresql", Err: err}
	}

	// Trivial round trip to confirm reachability
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var one int
	if err := pool.QueryRow(pingCtx, "SELECT 1").Scan(&one); err != nil {
		pool.Close()
		return nil, &database.ConnectionError{Database: "postgresql", Err: err}
	}

	log.Info().Msg("✅ PostgreSQL connected successfully")

	c.pool = &Pool{Pool: pool}
	return c.pool, nil
}

// ValidateDatabaseURL checks the DATABASE_URL shape and returns the
// URL to hand to pgx. The postgresql+neon:// scheme marks Neon's
// serverless transport in other stacks; pgx speaks plain postgresql,
// so it is rewritten before parsing.
func ValidateDatabaseURL(raw string) (string, error) {
	if raw == "" {
		return "", &database.ConfigError{
			Setting: "DATABASE_URL",
			Reason:  "must be set within the .env file. Please add a valid PostgreSQL connection string (from Neon or other provider)",
		}
	}

	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minURLLength {
		return "", &database.ConfigError{
			Setting: "DATABASE_URL",
			Reason:  "appears to be empty or too short. Please check your .env file",
		}
	}

	for _, scheme := range acceptedSchemes {
		if strings.HasPrefix(trimmed, scheme) {
			if scheme == "postgresql+neon://" {
				return "postgresql://" + strings.TrimPrefix(trimmed, scheme), nil
			}
			return trimmed, nil
		}
	}

	return "", &database.ConfigError{
		Setting: "DATABASE_URL",
		Reason:  `invalid format. It must start with "postgres://", "postgresql://", or "postgresql+neon://"`,
	}
}
