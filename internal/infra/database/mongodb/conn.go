// Package mongodb keeps the document-database connection path. The
// watchlist feature is fully relational; this connector is retained
// for compatibility and is exercised by the operational tooling.
package mongodb

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
)

const minURILength = 10

// Connector lazily builds and caches a single client. Holding the
// mutex across the attempt deduplicates concurrent connects; a failed
// attempt leaves the cache empty so the next call retries.
type Connector struct {
	cfg *config.Config

	mu     sync.Mutex
	client *mongo.Client
}

// NewConnector creates a Connector. No connection is attempted until
// the first Connect call.
func NewConnector(cfg *config.Config) *Connector {
	return &Connector{cfg: cfg}
}

// Connect returns the cached client, building it on first use. The URI
// is validated before any network activity. Server selection is
// bounded by the configured timeout so an outage fails fast instead of
// hanging on the driver default.
func (c *Connector) Connect(ctx context.Context) (*mongo.Client, error) {
	uri, err := ValidateMongoURI(c.cfg.Mongo.URI)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	log.Info().Msg("Connecting to MongoDB...")

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(c.cfg.Mongo.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, &database.ConnectionError{Database: "mongodb", Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.cfg.Mongo.ServerSelectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &database.ConnectionError{Database: "mongodb", Err: err}
	}

	log.Info().Msg("✅ MongoDB connected successfully")

	c.client = client
	return c.client, nil
}

// Disconnect closes the cached client, if any.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}

	log.Info().Msg("Closing MongoDB connection...")
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}

// ValidateMongoURI checks the MONGODB_URI shape.
func ValidateMongoURI(raw string) (string, error) {
	if raw == "" {
		return "", &database.ConfigError{
			Setting: "MONGODB_URI",
			Reason:  "must be set within the .env file. Please add a valid MongoDB connection string",
		}
	}

	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minURILength {
		return "", &database.ConfigError{
			Setting: "MONGODB_URI",
			Reason:  "appears to be empty or too short. Please check your .env file",
		}
	}

	if !strings.HasPrefix(trimmed, "mongodb://") && !strings.HasPrefix(trimmed, "mongodb+srv://") {
		return "", &database.ConfigError{
			Setting: "MONGODB_URI",
			Reason:  `invalid format. It must start with "mongodb://" or "mongodb+srv://"`,
		}
	}

	return trimmed, nil
}
