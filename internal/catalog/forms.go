package catalog

import (
	"strings"

	"github.com/greenbasket/grocer-cli/internal/model"
)

// Form-match quality levels, smaller is better. These feed the form_fit
// score component and the selector's tie-break ordering.
const (
	FormPerfect    = 0
	FormAcceptable = 1
	FormNeutral    = 2
	FormMinor      = 3
)

// formRule holds the include/exclude keyword sets for one required form.
// Exclude keywords make a candidate incompatible (filtered, never scored).
// Require keywords, when present, demand at least one match.
type formRule struct {
	Perfect    []string
	Acceptable []string
	Minor      []string
	Exclude    []string
	Require    []string
}

var formRules = map[model.Form]formRule{
	model.FormFresh: {
		Perfect:    []string{"fresh", "root", "bunch"},
		Acceptable: []string{"frozen"},
		Minor:      []string{"jarred", "minced"},
		Exclude:    []string{"powder", "powdered", "paste", "dried", "ground", "flakes", "pickled", "candied", "juice", "seasoning"},
	},
	model.FormPowder: {
		Perfect: []string{"powder", "powdered", "ground"},
		Exclude: []string{"fresh", "whole", "root", "seeds"},
	},
	model.FormGround: {
		Perfect: []string{"ground", "powder", "powdered"},
		Exclude: []string{"whole", "seeds", "fresh", "root"},
	},
	model.FormSeeds: {
		Perfect: []string{"seeds", "seed", "whole"},
		Exclude: []string{"ground", "powder", "powdered", "paste"},
	},
	model.FormPaste: {
		Perfect:    []string{"paste", "puree"},
		Acceptable: []string{"concentrate"},
		Exclude:    []string{"powder", "powdered", "dried", "whole"},
	},
	model.FormDried: {
		Perfect:    []string{"dried", "dry"},
		Acceptable: []string{"dehydrated"},
		Exclude:    []string{"fresh", "frozen"},
	},
	model.FormWhole: {
		Perfect: []string{"whole"},
		Exclude: []string{"ground", "powder", "powdered", "minced"},
	},
	model.FormCanned: {
		Perfect:    []string{"canned", "can", "tin"},
		Acceptable: []string{"jarred", "jar"},
		Exclude:    []string{"fresh", "frozen"},
	},
	model.FormFrozen: {
		Perfect:    []string{"frozen"},
		Acceptable: []string{"fresh"},
		Exclude:    []string{"canned", "dried", "powder"},
	},
}

// CheckForm applies the include/exclude rules for a required form to a
// candidate title. Returns the elimination reason and true when the title is
// incompatible. An empty form, or a form with no rule, always passes.
func CheckForm(form model.Form, title string) (model.EliminationReason, bool) {
	rule, ok := formRules[form]
	if !ok {
		return "", false
	}
	t := strings.ToLower(title)
	for _, kw := range rule.Exclude {
		if containsWord(t, kw) {
			return model.ReasonFormExcludedKeyword, true
		}
	}
	if len(rule.Require) > 0 {
		for _, kw := range rule.Require {
			if containsWord(t, kw) {
				return "", false
			}
		}
		return model.ReasonFormMissingKeyword, true
	}
	return "", false
}

// FormScore rates how well a candidate title matches the required form:
// 0 perfect, 1 acceptable substitution, 2 neutral, 3 minor mismatch.
// Incompatible titles are the filter's job; FormScore never disqualifies.
func FormScore(form model.Form, title string) int {
	rule, ok := formRules[form]
	if !ok {
		return FormNeutral
	}
	t := strings.ToLower(title)
	for _, kw := range rule.Perfect {
		if containsWord(t, kw) {
			return FormPerfect
		}
	}
	for _, kw := range rule.Acceptable {
		if containsWord(t, kw) {
			return FormAcceptable
		}
	}
	for _, kw := range rule.Minor {
		if containsWord(t, kw) {
			return FormMinor
		}
	}
	return FormNeutral
}

// containsWord reports whether kw appears in text on a word boundary, so
// "can" does not match "candied" or "american".
func containsWord(text, kw string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
