package planner

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/inventory"
	"github.com/greenbasket/grocer-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func testConfig() *config.Config {
	return &config.Config{
		Retrieval: config.RetrievalConfig{MaxCandidates: 6},
		StorePlan: config.StorePlanConfig{
			SpecialtyMinItems:   3,
			PrivateLabelShare:   0.7,
			PremiumProteinBonus: 3,
			PrivateLabelPenalty: 2,
		},
		Scoring: testScoringConfig(),
		Brands: map[string]string{
			"greenfields everyday": "greenfields",
			"harvest select":       "harvest-market",
			"bazaar basics":        "spice-bazaar",
		},
		Stores: config.DefaultStores(),
	}
}

func seededPlanner(t *testing.T) *Planner {
	t.Helper()

	st, err := inventory.NewSQLite(filepath.Join(t.TempDir(), "plan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))

	_, err = st.UpsertProducts(ctx, []model.Product{
		{ID: "gf-ging-1", StoreID: "greenfields", Title: "Fresh Ginger Root", Price: 1.99, Size: "6 oz"},
		{ID: "gf-ging-2", StoreID: "greenfields", Title: "Ginger Powder 4 oz", Price: 3.49, Size: "4 oz"},
		{ID: "sb-ging-1", StoreID: "spice-bazaar", Title: "Ginger Powder", Price: 2.99, Size: "4 oz"},

		{ID: "gf-str-1", StoreID: "greenfields", Title: "Organic Strawberries", Price: 5.99, Size: "16 oz", Organic: true},
		{ID: "gf-str-2", StoreID: "greenfields", Title: "Strawberries Clamshell", Price: 3.99, Size: "16 oz"},

		{ID: "gf-rice-1", StoreID: "greenfields", Title: "Basmati Rice 10 lb", Price: 24.99, Size: "10 lb"},
		{ID: "gf-rice-2", StoreID: "greenfields", Title: "Basmati Rice 10 lb Premium", Price: 999, Size: "10 lb"},
		{ID: "gf-rice-3", StoreID: "greenfields", Title: "Basmati Rice 2 lb", Price: 3.99, Size: "2 lb"},
	})
	require.NoError(t, err)

	cfg := testConfig()
	return New(cfg, inventory.NewRetriever(st, cfg.Retrieval.MaxCandidates), catalog.NewClassifier())
}

func TestPlan_EndToEnd(t *testing.T) {
	p := seededPlanner(t)

	plan, err := p.Plan(context.Background(), PlanRequest{
		Ingredients: []string{"fresh ginger", "strawberries", "basmati rice"},
	})
	require.NoError(t, err)

	// One cart item per requested ingredient.
	require.Len(t, plan.Items, 3)
	assert.Equal(t, []string{"ginger", "strawberries", "basmati rice"}, plan.Ingredients)

	// Everything fits in one primary store.
	assert.Equal(t, []string{"greenfields"}, plan.StorePlan.Stores)

	byName := make(map[string]model.CartItem)
	for _, item := range plan.Items {
		byName[item.IngredientName] = item
	}

	// Fresh ginger wins; both powders were eliminated.
	ginger := byName["ginger"]
	require.NotNil(t, ginger.EthicalDefault)
	assert.Equal(t, "gf-ging-1", ginger.EthicalDefault.Candidate.ID)
	assert.Equal(t, "ginger (fresh)", ginger.Label)

	// Dirty-dozen produce: organic wins, the conventional pick is offered as
	// the cheaper alternative.
	straw := byName["strawberries"]
	require.NotNil(t, straw.EthicalDefault)
	assert.Equal(t, "gf-str-1", straw.EthicalDefault.Candidate.ID)
	require.NotNil(t, straw.Cheaper)
	assert.Equal(t, "gf-str-2", straw.Cheaper.Candidate.ID)
	assert.NotEmpty(t, straw.Reason)

	// The $999 bag never survives to scoring.
	rice := byName["basmati rice"]
	require.NotNil(t, rice.EthicalDefault)
	assert.Equal(t, "gf-rice-3", rice.EthicalDefault.Candidate.ID)

	assert.InDelta(t, 11.97, plan.Totals.RecommendedTotal, 0.001)
	assert.InDelta(t, 9.97, plan.Totals.CheaperTotal, 0.001)
	assert.InDelta(t, 2.00, plan.Totals.PotentialSavings, 0.001)
	assert.InDelta(t, 11.97, plan.Totals.StoreSubtotals["greenfields"], 0.001)
}

func TestPlan_Deterministic(t *testing.T) {
	p := seededPlanner(t)
	req := PlanRequest{
		Prompt:      "stir fry tonight",
		Ingredients: []string{"fresh ginger", "strawberries", "basmati rice"},
	}

	first, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Plan(context.Background(), req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestPlan_UnavailableIngredientStillGetsAnItem(t *testing.T) {
	p := seededPlanner(t)

	plan, err := p.Plan(context.Background(), PlanRequest{
		Ingredients: []string{"fresh ginger", "dragon fruit"},
	})
	require.NoError(t, err)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, []string{"dragon fruit"}, plan.StorePlan.Unavailable)

	var unavailable model.CartItem
	for _, item := range plan.Items {
		if item.IngredientName == "dragon fruit" {
			unavailable = item
		}
	}
	assert.Equal(t, model.ItemUnavailable, unavailable.Status)
	assert.Nil(t, unavailable.EthicalDefault)
	assert.NotEmpty(t, unavailable.Reason)
}

func TestPlan_EmptyRequest(t *testing.T) {
	p := seededPlanner(t)
	_, err := p.Plan(context.Background(), PlanRequest{})
	assert.Error(t, err)

	_, err = p.Plan(context.Background(), PlanRequest{Ingredients: []string{"   "}})
	assert.Error(t, err)
}

func TestPlan_TraceOnRequest(t *testing.T) {
	p := seededPlanner(t)

	plan, err := p.Plan(context.Background(), PlanRequest{
		Ingredients:  []string{"fresh ginger"},
		IncludeTrace: true,
	})
	require.NoError(t, err)

	require.Len(t, plan.Items, 1)
	trace := plan.Items[0].Trace
	require.NotNil(t, trace)

	// Two greenfields rows retrieved, one survived; the spice-bazaar powder
	// was rejected for its store.
	assert.NotEmpty(t, trace.Pools)
	assert.Equal(t, 1, trace.Eliminations[model.ReasonWrongStoreSource])
	assert.Equal(t, 1, trace.Eliminations[model.ReasonFormExcludedKeyword])

	// No trace by default.
	plan, err = p.Plan(context.Background(), PlanRequest{Ingredients: []string{"fresh ginger"}})
	require.NoError(t, err)
	assert.Nil(t, plan.Items[0].Trace)
}

func TestPlan_FormOverride(t *testing.T) {
	p := seededPlanner(t)

	plan, err := p.Plan(context.Background(), PlanRequest{
		Ingredients: []string{"ginger"},
		Forms:       map[string]string{"ginger": "powder"},
	})
	require.NoError(t, err)

	require.Len(t, plan.Items, 1)
	item := plan.Items[0]
	require.NotNil(t, item.EthicalDefault)
	assert.Equal(t, "gf-ging-2", item.EthicalDefault.Candidate.ID)
	assert.Equal(t, "ginger (powder)", item.Label)
}
