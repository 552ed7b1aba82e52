package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanityTable_BulkGrain(t *testing.T) {
	table := NewSanityTable(nil)

	// A 10 lb bag of rice at $999 is not plausible.
	ok, evaluated := table.Check(CategoryGrain, 160, 999)
	assert.True(t, evaluated)
	assert.False(t, ok)

	ok, evaluated = table.Check(CategoryGrain, 160, 24.99)
	assert.True(t, evaluated)
	assert.True(t, ok)

	// Suspiciously cheap fails too.
	ok, evaluated = table.Check(CategoryGrain, 160, 2)
	assert.True(t, evaluated)
	assert.False(t, ok)
}

func TestSanityTable_UncoveredPassesThrough(t *testing.T) {
	table := NewSanityTable(nil)

	// No bound covers pantry; the candidate must pass through.
	ok, evaluated := table.Check(CategoryPantry, 16, 999)
	assert.False(t, evaluated)
	assert.True(t, ok)

	// Size below every grain window.
	ok, evaluated = table.Check(CategoryGrain, 8, 999)
	assert.False(t, evaluated)
	assert.True(t, ok)
}

func TestSanityTable_SpiceWindows(t *testing.T) {
	table := NewSanityTable(nil)

	ok, evaluated := table.Check(CategorySpice, 2, 7.99)
	assert.True(t, evaluated)
	assert.True(t, ok)

	ok, evaluated = table.Check(CategorySpice, 2, 40)
	assert.True(t, evaluated)
	assert.False(t, ok)
}

func TestSanityTable_ConfiguredBoundsReplaceDefaults(t *testing.T) {
	table := NewSanityTable([]PriceBound{
		{Category: CategoryPantry, MinSizeOz: 1, MaxSizeOz: 100, MinPrice: 1, MaxPrice: 10},
	})

	ok, evaluated := table.Check(CategoryPantry, 16, 5)
	assert.True(t, evaluated)
	assert.True(t, ok)

	// Default grain bounds are gone.
	_, evaluated = table.Check(CategoryGrain, 160, 999)
	assert.False(t, evaluated)
}
