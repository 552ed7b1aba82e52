package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/grocer-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_Migrate(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS products").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertProducts(t *testing.T) {
	st, mock := newMockStore(t)

	now := time.Now().UTC()
	products := []model.Product{
		{ID: "gf-001", StoreID: "greenfields", Title: "Fresh Ginger Root", Price: 1.99, Size: "6 oz", UpdatedAt: now},
		{ID: "sb-001", StoreID: "spice-bazaar", Title: "Ginger Powder 4 oz", Price: 3.49, Size: "4 oz", Organic: true, UpdatedAt: now},
	}

	for _, p := range products {
		mock.ExpectExec("INSERT INTO products").
			WithArgs(p.ID, p.StoreID, p.Title, p.Brand, p.Price, p.Size,
				p.Organic, p.Packaging, p.UnitPrice, p.UnitPriceUnit, p.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	n, err := st.UpsertProducts(context.Background(), products)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SearchProducts(t *testing.T) {
	st, mock := newMockStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "store_id", "title", "brand", "price", "size",
		"organic", "packaging", "unit_price", "unit_price_unit", "updated_at",
	}).
		AddRow("gf-001", "greenfields", "Fresh Ginger Root", "", 1.99, "6 oz", false, "loose", 0.33, "oz", now).
		AddRow("sb-001", "spice-bazaar", "Ginger Powder 4 oz", "Bazaar Basics", 3.49, "4 oz", false, "bag", 0.87, "oz", now)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE title ILIKE").
		WithArgs("ginger", 6).
		WillReturnRows(rows)

	products, err := st.SearchProducts(context.Background(), "ginger", 6)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "gf-001", products[0].ID)
	assert.Equal(t, "Bazaar Basics", products[1].Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CountByStore(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT store_id, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"store_id", "count"}).
			AddRow("greenfields", int64(12)).
			AddRow("spice-bazaar", int64(4)))

	counts, err := st.CountByStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"greenfields": 12, "spice-bazaar": 4}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteStale(t *testing.T) {
	st, mock := newMockStore(t)

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	mock.ExpectExec("DELETE FROM products WHERE updated_at").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := st.DeleteStale(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
