package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenbasket/grocer-cli/internal/model"
)

func TestCheckForm_FreshExcludesProcessed(t *testing.T) {
	tests := []struct {
		title    string
		excluded bool
	}{
		{"Organic Fresh Ginger Root", false},
		{"Ginger Powder 4 oz", true},
		{"Ground Ginger", true},
		{"Ginger Paste Tube", true},
		{"Dried Ginger Slices", true},
		{"Frozen Ginger Cubes", false}, // acceptable substitution, not excluded
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			reason, drop := CheckForm(model.FormFresh, tt.title)
			assert.Equal(t, tt.excluded, drop)
			if drop {
				assert.Equal(t, model.ReasonFormExcludedKeyword, reason)
			}
		})
	}
}

func TestCheckForm_UnknownFormPasses(t *testing.T) {
	_, drop := CheckForm("", "anything")
	assert.False(t, drop)

	_, drop = CheckForm(model.Form("shredded"), "anything")
	assert.False(t, drop)
}

func TestFormScore(t *testing.T) {
	tests := []struct {
		name     string
		form     model.Form
		title    string
		expected int
	}{
		{"fresh perfect", model.FormFresh, "Fresh Ginger Root", FormPerfect},
		{"fresh frozen acceptable", model.FormFresh, "Frozen Ginger Cubes", FormAcceptable},
		{"fresh jarred minor", model.FormFresh, "Jarred Ginger", FormMinor},
		{"fresh neutral", model.FormFresh, "Ginger 6 oz", FormNeutral},
		{"powder perfect", model.FormPowder, "Turmeric Powder", FormPerfect},
		{"seeds whole perfect", model.FormSeeds, "Whole Cumin", FormPerfect},
		{"no required form", "", "Anything", FormNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormScore(tt.form, tt.title))
		})
	}
}

func TestContainsWord_Boundaries(t *testing.T) {
	// "can" must not match inside "candied".
	assert.Equal(t, FormNeutral, FormScore(model.FormCanned, "Candied Yams"))
	assert.Equal(t, FormPerfect, FormScore(model.FormCanned, "Tomatoes, 15 oz Can"))

	assert.True(t, containsWord("ginger powder 4 oz", "powder"))
	assert.False(t, containsWord("gingerbread mix", "ginger"))
}
