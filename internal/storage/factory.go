package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daycheck/internal/storage/postgres"
	"github.com/julianstephens/daycheck/internal/storage/sqlite"
	"github.com/julianstephens/daycheck/internal/utils"
)

// Backend names the storage technology behind a config value
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendJSON     Backend = "json"
)

// DetectBackend picks the backend for a --config value: PostgreSQL for
// connection URLs, a JSON document for .json paths, SQLite otherwise.
func DetectBackend(config string) Backend {
	switch {
	case postgres.IsConnString(config):
		return BackendPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string carries a password
func HasEmbeddedCredentials(connStr string) bool {
	return errors.Is(postgres.ValidateConnString(connStr), postgres.ErrEmbeddedCredentials)
}

// OpenSecret builds a PostgreSQL provider from a connection string held in
// the keyring or the environment, where an embedded password is allowed.
func OpenSecret(connStr string) (Provider, error) {
	if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, err
	}
	return postgres.New(connStr), nil
}

// Open builds the provider for config without touching the backend
func Open(config string) (Provider, error) {
	switch DetectBackend(config) {
	case BackendPostgres:
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	case BackendJSON:
		path, err := utils.ExpandHome(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage path: %w", err)
		}
		return NewJSONStore(path), nil
	default:
		path, err := utils.ExpandHome(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage path: %w", err)
		}
		return sqlite.NewStore(path), nil
	}
}
