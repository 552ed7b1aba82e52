package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/grocer-cli/internal/model"
)

func TestBuildTrace(t *testing.T) {
	pools := map[string][]model.ProductCandidate{
		"ginger": {
			{ID: "gf-1", StoreID: "greenfields"},
			{ID: "gf-2", StoreID: "greenfields"},
			{ID: "sb-1", StoreID: "spice-bazaar"},
		},
	}
	eliminated := []model.EliminatedCandidate{
		{Candidate: model.ProductCandidate{ID: "sb-1", Title: "Ginger Powder", StoreID: "spice-bazaar"}, Reason: model.ReasonWrongStoreSource},
	}
	sel := Selection{
		Winner: &model.ScoredCandidate{
			Candidate: model.ProductCandidate{ID: "gf-1", Title: "Fresh Ginger", StoreID: "greenfields"},
			Total:     82,
			Breakdown: model.ScoreBreakdown{model.ComponentEWG: 8, model.ComponentFormFit: 14, model.ComponentDelivery: -10},
		},
		RunnerUp: &model.ScoredCandidate{
			Candidate: model.ProductCandidate{ID: "gf-2", Title: "Ginger", StoreID: "greenfields"},
			Total:     64,
			Breakdown: model.ScoreBreakdown{model.ComponentEWG: 0, model.ComponentFormFit: 6, model.ComponentUnitValue: 8},
		},
	}
	sel.Ranked = []model.ScoredCandidate{*sel.Winner, *sel.RunnerUp}

	trace := BuildTrace(pools, eliminated, sel)

	require.Len(t, trace.Pools, 2)
	assert.Equal(t, model.StorePoolSummary{StoreID: "greenfields", Retrieved: 2, Considered: 2}, trace.Pools[0])
	assert.Equal(t, model.StorePoolSummary{StoreID: "spice-bazaar", Retrieved: 1, Considered: 0}, trace.Pools[1])

	assert.Equal(t, 82, trace.WinnerScore)
	assert.Equal(t, 64, trace.RunnerUpScore)
	assert.Equal(t, 18, trace.Margin)

	require.Len(t, trace.Candidates, 3)
	assert.Equal(t, model.TraceWon, trace.Candidates[0].Status)
	assert.Equal(t, model.TraceRunnerUp, trace.Candidates[1].Status)
	assert.Equal(t, model.TraceEliminated, trace.Candidates[2].Status)
	assert.Equal(t, model.ReasonWrongStoreSource, trace.Candidates[2].Reason)

	// Largest positive deltas, capped at two: ewg (+8), form_fit (+8).
	require.Len(t, trace.TopDrivers, 2)
	assert.Equal(t, model.ScoreDriver{Component: model.ComponentEWG, Delta: 8}, trace.TopDrivers[0])
	assert.Equal(t, model.ScoreDriver{Component: model.ComponentFormFit, Delta: 8}, trace.TopDrivers[1])

	// Components that counted against the winner.
	assert.Equal(t, []string{model.ComponentDelivery}, trace.Tradeoffs)

	assert.Equal(t, map[model.EliminationReason]int{model.ReasonWrongStoreSource: 1}, trace.Eliminations)
}

func TestBuildTrace_EmptySelection(t *testing.T) {
	pools := map[string][]model.ProductCandidate{
		"saffron": {{ID: "sb-1", StoreID: "spice-bazaar"}},
	}
	eliminated := []model.EliminatedCandidate{
		{Candidate: model.ProductCandidate{ID: "sb-1", StoreID: "spice-bazaar"}, Reason: model.ReasonFormExcludedKeyword},
	}

	trace := BuildTrace(pools, eliminated, Selection{})

	assert.Zero(t, trace.WinnerScore)
	assert.Empty(t, trace.TopDrivers)
	require.Len(t, trace.Candidates, 1)
	assert.Equal(t, model.TraceEliminated, trace.Candidates[0].Status)
}
