// Package inventory provides the product repository and the bounded
// candidate retriever over it. The repository is constructed explicitly and
// passed to its consumers; there is no package-level state.
package inventory

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// Store defines the persistence interface for the product inventory.
type Store interface {
	// Products. SearchProducts returns up to limit title matches per store,
	// ordered by store then id, so every store with stock is represented in
	// the result.
	UpsertProducts(ctx context.Context, products []model.Product) (int, error)
	SearchProducts(ctx context.Context, key string, limit int) ([]model.Product, error)
	CountByStore(ctx context.Context) (map[string]int, error)
	DeleteStale(ctx context.Context, before time.Time) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("inventory: unknown store driver %q", cfg.Driver)
	}
}
