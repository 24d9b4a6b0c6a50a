package auth

import (
	"context"
	"net/http"
	"sync"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
)

// StoreOpener builds the auth store, typically by connecting to
// PostgreSQL. Injected so the provider stays free of driver imports.
type StoreOpener func(ctx context.Context) (Store, error)

// Provider memoizes a single Engine. The mutex is held across
// construction, so concurrent first callers share one engine and at
// most one store connection is opened. A failed construction is not
// cached; the next call retries.
type Provider struct {
	cfg  config.AuthConfig
	open StoreOpener

	mu     sync.Mutex
	engine *Engine
}

// NewProvider creates a Provider. The engine is not built until the
// first Engine call.
func NewProvider(cfg config.AuthConfig, open StoreOpener) *Provider {
	return &Provider{cfg: cfg, open: open}
}

// Engine returns the memoized engine, building it on first use.
func (p *Provider) Engine(ctx context.Context) (*Engine, error) {
	if p.cfg.Secret == "" {
		return nil, &database.ConfigError{
			Setting: "AUTH_SECRET",
			Reason:  "must be set within the .env file. Please add a secret key for session signing",
		}
	}
	if p.cfg.BaseURL == "" {
		return nil, &database.ConfigError{
			Setting: "AUTH_URL",
			Reason:  "must be set within the .env file. Please add the application base URL",
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine != nil {
		return p.engine, nil
	}

	store, err := p.open(ctx)
	if err != nil {
		return nil, err
	}

	p.engine = NewEngine(DefaultConfig(p.cfg.Secret, p.cfg.BaseURL, p.cfg.SessionTTL), store)
	return p.engine, nil
}

// GetSession resolves a session through the memoized engine, building
// it on first use. This lets callers depend on the provider directly
// for per-request session lookups.
func (p *Provider) GetSession(ctx context.Context, headers http.Header) (*Session, error) {
	engine, err := p.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.GetSession(ctx, headers)
}
