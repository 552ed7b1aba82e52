package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"spinach", CategoryProduce},
		{"bell pepper", CategoryProduce}, // produce rule precedes the spice "pepper" rule
		{"black pepper", CategorySpice},
		{"chicken thighs", CategoryProtein},
		{"basmati rice", CategoryGrain},
		{"whole milk", CategoryDairy},
		{"cumin", CategorySpice},
		{"olive oil", CategoryPantry},
		{"mystery item", CategoryPantry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryOf(tt.name))
		})
	}
}

func TestInferIntent(t *testing.T) {
	assert.Equal(t, IntentCookSoon, InferIntent("dinner tonight for 4"))
	assert.Equal(t, IntentStockUp, InferIntent("restock the pantry"))
	assert.Equal(t, "", InferIntent("some groceries please"))

	// Cook-soon cues win when both appear.
	assert.Equal(t, IntentCookSoon, InferIntent("quick dinner plus bulk rice"))
}

func TestMatchFirst_OrderIsPrecedence(t *testing.T) {
	rules := []KeywordRule{
		{Value: "first", Keywords: []string{"shared"}},
		{Value: "second", Keywords: []string{"shared", "other"}},
	}

	v, ok := MatchFirst(rules, "text with shared keyword")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = MatchFirst(rules, "text with other keyword")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = MatchFirst(rules, "nothing relevant")
	assert.False(t, ok)
}

func TestPackagingPoints(t *testing.T) {
	// Structured field wins over the title.
	assert.Equal(t, -4, PackagingPoints("clamshell", "Loose Organic Strawberries"))
	assert.Equal(t, 6, PackagingPoints("loose", "Strawberries Clamshell"))
	assert.Equal(t, 4, PackagingPoints("glass", ""))
	assert.Equal(t, 0, PackagingPoints("shrinkwrap", ""))

	// Title inference when no structured field.
	assert.Equal(t, -4, PackagingPoints("", "Strawberries 1 lb Clamshell"))
	assert.Equal(t, 2, PackagingPoints("", "Rice 10 lb Bag"))
	assert.Equal(t, 0, PackagingPoints("", "Chicken Thighs"))
}

func TestPackagingPoints_TitleWordBoundaries(t *testing.T) {
	// Keywords inside longer words are not packaging: "bag" in "Cabbage",
	// "can" in "Pecans", "American", or "Candied".
	assert.Equal(t, 0, PackagingPoints("", "Green Cabbage"))
	assert.Equal(t, 0, PackagingPoints("", "Organic Pecans"))
	assert.Equal(t, 0, PackagingPoints("", "American Cheese Slices"))
	assert.Equal(t, 0, PackagingPoints("", "Candied Ginger"))

	// Whole-word occurrences still score.
	assert.Equal(t, 1, PackagingPoints("", "Chickpeas 15 oz Can"))
	assert.Equal(t, 2, PackagingPoints("", "Spinach Bag"))
}
