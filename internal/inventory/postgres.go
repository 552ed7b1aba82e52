package inventory

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/greenbasket/grocer-cli/internal/model"
)

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgxPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	store_id        TEXT NOT NULL,
	title           TEXT NOT NULL,
	brand           TEXT NOT NULL DEFAULT '',
	price           DOUBLE PRECISION NOT NULL,
	size            TEXT NOT NULL DEFAULT '',
	organic         BOOLEAN NOT NULL DEFAULT false,
	packaging       TEXT NOT NULL DEFAULT '',
	unit_price      DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit_price_unit TEXT NOT NULL DEFAULT '',
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_store_id ON products(store_id);
CREATE INDEX IF NOT EXISTS idx_products_title ON products(title);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertProducts(ctx context.Context, products []model.Product) (int, error) {
	count := 0
	for _, p := range products {
		updatedAt := p.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		_, err := s.pool.Exec(ctx, `
INSERT INTO products (id, store_id, title, brand, price, size, organic, packaging, unit_price, unit_price_unit, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	store_id = EXCLUDED.store_id,
	title = EXCLUDED.title,
	brand = EXCLUDED.brand,
	price = EXCLUDED.price,
	size = EXCLUDED.size,
	organic = EXCLUDED.organic,
	packaging = EXCLUDED.packaging,
	unit_price = EXCLUDED.unit_price,
	unit_price_unit = EXCLUDED.unit_price_unit,
	updated_at = EXCLUDED.updated_at`,
			p.ID, p.StoreID, p.Title, p.Brand, p.Price, p.Size,
			p.Organic, p.Packaging, p.UnitPrice, p.UnitPriceUnit, updatedAt,
		)
		if err != nil {
			return count, eris.Wrapf(err, "postgres: upsert product %s", p.ID)
		}
		count++
	}
	return count, nil
}

func (s *PostgresStore) SearchProducts(ctx context.Context, key string, limit int) ([]model.Product, error) {
	// Per-store limit, same as the sqlite driver.
	rows, err := s.pool.Query(ctx,
		`SELECT id, store_id, title, brand, price, size, organic, packaging, unit_price, unit_price_unit, updated_at
		 FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY store_id ORDER BY id) AS rn
			FROM products WHERE title ILIKE '%' || $1 || '%'
		 ) ranked
		 WHERE rn <= $2
		 ORDER BY store_id, id`,
		key, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: search products %q", key)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Title, &p.Brand, &p.Price, &p.Size,
			&p.Organic, &p.Packaging, &p.UnitPrice, &p.UnitPriceUnit, &p.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate products")
	}
	return products, nil
}

func (s *PostgresStore) CountByStore(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT store_id, COUNT(*) FROM products GROUP BY store_id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count by store")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var storeID string
		var n int64
		if err := rows.Scan(&storeID, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[storeID] = int(n)
	}
	return counts, eris.Wrap(rows.Err(), "postgres: iterate counts")
}

func (s *PostgresStore) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE updated_at < $1`, before.UTC())
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete stale")
	}
	return int(tag.RowsAffected()), nil
}
