package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/greenbasket/grocer-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	store_id        TEXT NOT NULL,
	title           TEXT NOT NULL,
	brand           TEXT NOT NULL DEFAULT '',
	price           REAL NOT NULL,
	size            TEXT NOT NULL DEFAULT '',
	organic         INTEGER NOT NULL DEFAULT 0,
	packaging       TEXT NOT NULL DEFAULT '',
	unit_price      REAL NOT NULL DEFAULT 0,
	unit_price_unit TEXT NOT NULL DEFAULT '',
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_products_store_id ON products(store_id);
CREATE INDEX IF NOT EXISTS idx_products_title ON products(title);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertProducts(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (id, store_id, title, brand, price, size, organic, packaging, unit_price, unit_price_unit, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	store_id = excluded.store_id,
	title = excluded.title,
	brand = excluded.brand,
	price = excluded.price,
	size = excluded.size,
	organic = excluded.organic,
	packaging = excluded.packaging,
	unit_price = excluded.unit_price,
	unit_price_unit = excluded.unit_price_unit,
	updated_at = excluded.updated_at`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	count := 0
	for _, p := range products {
		updatedAt := p.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.StoreID, p.Title, p.Brand, p.Price, p.Size,
			boolToInt(p.Organic), p.Packaging, p.UnitPrice, p.UnitPriceUnit, updatedAt,
		); err != nil {
			return count, eris.Wrapf(err, "sqlite: upsert product %s", p.ID)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, eris.Wrap(err, "sqlite: commit upsert")
	}
	return count, nil
}

func (s *SQLiteStore) SearchProducts(ctx context.Context, key string, limit int) ([]model.Product, error) {
	// The limit applies per store so a deep store cannot crowd the others out
	// of the pool. Ordering by store then id keeps retrieval deterministic
	// across runs.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, store_id, title, brand, price, size, organic, packaging, unit_price, unit_price_unit, updated_at
		 FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY store_id ORDER BY id) AS rn
			FROM products WHERE title LIKE '%' || ? || '%' COLLATE NOCASE
		 ) ranked
		 WHERE rn <= ?
		 ORDER BY store_id, id`,
		key, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: search products %q", key)
	}
	defer rows.Close() //nolint:errcheck

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var organic int
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Title, &p.Brand, &p.Price, &p.Size,
			&organic, &p.Packaging, &p.UnitPrice, &p.UnitPriceUnit, &p.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan product")
		}
		p.Organic = organic != 0
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate products")
	}
	return products, nil
}

func (s *SQLiteStore) CountByStore(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT store_id, COUNT(*) FROM products GROUP BY store_id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count by store")
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[string]int)
	for rows.Next() {
		var storeID string
		var n int
		if err := rows.Scan(&storeID, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan count")
		}
		counts[storeID] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: iterate counts")
}

func (s *SQLiteStore) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE updated_at < ?`, before.UTC())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete stale")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
