// Package planner implements the deterministic cart-planning pipeline:
// canonicalization, store assignment, candidate filtering, component scoring,
// selection, and decision-trace assembly.
package planner

import (
	"strings"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// hintRules maps recipe-type hints to a default form for produce when the
// mention itself carries no qualifier.
var hintRules = []catalog.KeywordRule{
	{Value: string(model.FormFresh), Keywords: []string{"salad", "stir fry", "stir-fry", "fresh"}},
}

// Canonicalize normalizes a raw ingredient mention into a canonical retrieval
// name and an optional required form. Form qualifiers are recognized as a
// leading or trailing token ("fresh ginger", "ginger powder"). Unknown
// mentions pass through unchanged with no form; this never fails.
func Canonicalize(raw, hint string) (string, model.Form) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", ""
	}

	tokens := strings.Fields(name)
	var form model.Form

	if len(tokens) > 1 {
		if f := model.ParseForm(tokens[0]); f != "" {
			form = f
			tokens = tokens[1:]
		} else if f := model.ParseForm(tokens[len(tokens)-1]); f != "" {
			form = f
			tokens = tokens[:len(tokens)-1]
		}
	}
	name = strings.Join(tokens, " ")

	if form == "" && hint != "" && catalog.CategoryOf(name) == catalog.CategoryProduce {
		if v, ok := catalog.MatchFirst(hintRules, hint); ok {
			form = model.Form(v)
		}
	}

	return name, form
}
