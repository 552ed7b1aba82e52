package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenbasket/grocer-cli/internal/model"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw      string
		hint     string
		name     string
		form     model.Form
	}{
		{"fresh ginger", "", "ginger", model.FormFresh},
		{"ginger powder", "", "ginger", model.FormPowder},
		{"Ground Cumin", "", "cumin", model.FormGround},
		{"cumin seeds", "", "cumin", model.FormSeeds},
		{"tomato paste", "", "tomato", model.FormPaste},
		{"chicken thighs", "", "chicken thighs", ""},
		{"  Basmati Rice  ", "", "basmati rice", ""},
		{"spinach", "", "spinach", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, form := Canonicalize(tt.raw, tt.hint)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.form, form)
		})
	}
}

func TestCanonicalize_HintAppliesToProduceOnly(t *testing.T) {
	// A salad prompt implies fresh produce.
	name, form := Canonicalize("spinach", "a big salad for tonight")
	assert.Equal(t, "spinach", name)
	assert.Equal(t, model.FormFresh, form)

	// But not fresh rice.
	_, form = Canonicalize("rice", "a big salad for tonight")
	assert.Equal(t, model.Form(""), form)

	// An explicit qualifier beats the hint.
	_, form = Canonicalize("dried tomato", "salad")
	assert.Equal(t, model.FormDried, form)
}

func TestCanonicalize_Empty(t *testing.T) {
	name, form := Canonicalize("   ", "")
	assert.Empty(t, name)
	assert.Empty(t, form)
}

func TestCanonicalize_SingleTokenNeverStripped(t *testing.T) {
	// "whole" alone is an ingredient mention, not a qualifier.
	name, form := Canonicalize("whole", "")
	assert.Equal(t, "whole", name)
	assert.Equal(t, model.Form(""), form)
}
