// Package database holds the error types shared by the PostgreSQL and
// MongoDB connectors.
package database

import "fmt"

// ConfigError reports a missing or malformed connection setting. It is
// returned before any network activity takes place.
type ConfigError struct {
	Setting string // environment variable name, e.g. DATABASE_URL
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Setting, e.Reason)
}

// ConnectionError reports a failed connection attempt or handshake.
// The connector resets its cache before returning it, so a later call
// may retry.
type ConnectionError struct {
	Database string // "postgresql" or "mongodb"
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v. Please check your connection string in the .env file", e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
