// ABOUTME: Durable key-value storage for the recipe book's JSON values.
// ABOUTME: Backends are chosen by DSN scheme: badger, sqlite, postgres, redis, or memory.

package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Keys under which the application persists its values.
const (
	KeyRecipes      = "pizza-recipes"
	KeyNotes        = "pizza-notes"
	KeyGitHubConfig = "github-config"
	KeyDarkMode     = "dark-mode"
	KeyLastBackup   = "last-backup"
)

var (
	ErrNotFound   = errors.New("key not found")
	ErrNotLoaded  = errors.New("value written before load")
	ErrInvalidDSN = errors.New("invalid store dsn")
)

// Backend stores opaque byte values by string key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend named by dsn. An empty dsn opens the default
// badger directory. A bare path without a scheme is treated as a badger directory.
func Open(dsn string) (Backend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return OpenBadger(DefaultDir())
	}
	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}
	switch scheme := strings.ToLower(parsed.Scheme); scheme {
	case "", "badger", "file":
		path, err := dsnPath(parsed, dsn)
		if err != nil {
			return nil, err
		}
		return OpenBadger(path)
	case "memory", "mem":
		return OpenMemory()
	case "sqlite":
		path, err := dsnPath(parsed, dsn)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(path)
	case "postgres", "postgresql":
		return OpenPostgres(dsn)
	case "redis", "rediss":
		return OpenRedis(dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidDSN, scheme)
	}
}

func dsnPath(parsed *url.URL, raw string) (string, error) {
	if parsed.Scheme == "" {
		return raw, nil
	}
	path := parsed.Host + parsed.Path
	if path == "" {
		path = parsed.Opaque
	}
	if path == "" {
		return "", fmt.Errorf("%w: missing path in %q", ErrInvalidDSN, raw)
	}
	return path, nil
}

// DefaultDir returns the XDG data directory used when no store is configured.
func DefaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "recipebook", "store")
}
