package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/grocer-cli/internal/model"
)

// fakeStore serves canned rows and records the requested limit.
type fakeStore struct {
	products  []model.Product
	err       error
	lastLimit int
}

func (f *fakeStore) SearchProducts(_ context.Context, _ string, limit int) ([]model.Product, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.products) > limit {
		return f.products[:limit], nil
	}
	return f.products, nil
}

func (f *fakeStore) UpsertProducts(context.Context, []model.Product) (int, error) { return 0, nil }
func (f *fakeStore) CountByStore(context.Context) (map[string]int, error)         { return nil, nil }
func (f *fakeStore) DeleteStale(context.Context, time.Time) (int, error)          { return 0, nil }
func (f *fakeStore) Migrate(context.Context) error                                { return nil }
func (f *fakeStore) Close() error                                                 { return nil }

func TestRetrieve_EnrichesCandidates(t *testing.T) {
	st := &fakeStore{products: []model.Product{
		{ID: "gf-001", StoreID: "greenfields", Title: "Fresh Ginger Root", Price: 1.98, Size: "6 oz"},
		{ID: "sb-001", StoreID: "spice-bazaar", Title: "Ginger Powder", Price: 3.50, Size: "4 oz", UnitPrice: 0.875, UnitPriceUnit: "oz"},
	}}
	r := NewRetriever(st, 6)

	candidates := r.Retrieve(context.Background(), "ginger", model.FormFresh)
	require.Len(t, candidates, 2)
	assert.Equal(t, 6, st.lastLimit)

	// Derived from price/size when no declared per-ounce unit price.
	assert.InDelta(t, 0.33, candidates[0].UnitPriceOz, 0.001)
	assert.Equal(t, 0, candidates[0].FormScore)

	// Declared per-ounce unit price wins.
	assert.InDelta(t, 0.875, candidates[1].UnitPriceOz, 0.001)
}

func TestRetrieve_UnparseableSizeLeavesUnitPriceZero(t *testing.T) {
	st := &fakeStore{products: []model.Product{
		{ID: "gf-009", StoreID: "greenfields", Title: "Ginger Bunch", Price: 2.49, Size: "1 bunch"},
	}}
	r := NewRetriever(st, 6)

	candidates := r.Retrieve(context.Background(), "ginger", "")
	require.Len(t, candidates, 1)
	assert.Zero(t, candidates[0].UnitPriceOz)
}

func TestRetrieve_FailureAndEmptyYieldNoCandidates(t *testing.T) {
	r := NewRetriever(&fakeStore{err: eris.New("boom")}, 6)
	assert.Empty(t, r.Retrieve(context.Background(), "ginger", ""))

	r = NewRetriever(&fakeStore{}, 6)
	assert.Empty(t, r.Retrieve(context.Background(), "ginger", ""))
}

func TestNewRetriever_DefaultCap(t *testing.T) {
	st := &fakeStore{}
	r := NewRetriever(st, 0)
	r.Retrieve(context.Background(), "ginger", "")
	assert.Equal(t, 6, st.lastLimit)
}
