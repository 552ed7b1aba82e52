package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/grocer-cli/internal/model"
)

func samplePlan() *model.CartPlan {
	return &model.CartPlan{
		Ingredients: []string{"ginger", "saffron"},
		StorePlan: model.StorePlan{
			Stores:      []string{"greenfields"},
			Unavailable: []string{"saffron"},
		},
		Items: []model.CartItem{
			{
				IngredientName: "ginger",
				Label:          "ginger (fresh)",
				StoreID:        "greenfields",
				Status:         model.ItemAvailable,
				Reason:         "Best available option at Greenfields Market.",
				EthicalDefault: &model.ScoredCandidate{
					Candidate: model.ProductCandidate{ID: "gf-1", Title: "Fresh Ginger Root", Price: 1.99},
					Total:     72,
				},
				Cheaper: &model.ScoredCandidate{
					Candidate: model.ProductCandidate{ID: "gf-2", Title: "Ginger Value Pack", Price: 1.49},
				},
			},
			{
				IngredientName: "saffron",
				Label:          "saffron",
				Status:         model.ItemUnavailable,
				Reason:         "No store in the plan carries saffron.",
			},
		},
		Totals: model.CartTotals{
			RecommendedTotal: 1.99,
			CheaperTotal:     1.49,
			PotentialSavings: 0.50,
			StoreSubtotals:   map[string]float64{"greenfields": 1.99},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, samplePlan()))

	out := buf.String()
	assert.Contains(t, out, "Fresh Ginger Root")
	assert.Contains(t, out, "$1.99")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Recommended total")
	assert.Contains(t, out, "save $0.50")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, samplePlan()))

	var decoded model.CartPlan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Items, 2)
	assert.InDelta(t, 1.99, decoded.Totals.RecommendedTotal, 0.001)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, samplePlan()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Fresh Ginger Root", rows[1][3])
	assert.Equal(t, "1.49", rows[1][6])
	assert.Equal(t, "unavailable", rows[2][2])
}

func TestRenderPlan_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.xlsx")
	require.NoError(t, renderPlan(samplePlan(), "xlsx", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// xlsx without a file is an error.
	assert.Error(t, renderPlan(samplePlan(), "xlsx", ""))
}

func TestRenderPlan_UnknownFormat(t *testing.T) {
	assert.Error(t, renderPlan(samplePlan(), "yaml", ""))
}

func TestRenderPlan_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, renderPlan(samplePlan(), "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Fresh Ginger Root")
}
