package model

import "strings"

// Form is the physical form an ingredient is required in.
type Form string

const (
	FormFresh  Form = "fresh"
	FormDried  Form = "dried"
	FormPowder Form = "powder"
	FormGround Form = "ground"
	FormSeeds  Form = "seeds"
	FormPaste  Form = "paste"
	FormWhole  Form = "whole"
	FormCanned Form = "canned"
	FormFrozen Form = "frozen"
)

// IngredientRequest is one requested ingredient, created once per planning
// request and immutable afterward.
type IngredientRequest struct {
	Raw      string `json:"raw"`
	Name     string `json:"name"`
	Form     Form   `json:"form,omitempty"`
	Quantity string `json:"quantity,omitempty"`
}

// Label returns the display label: canonical name plus the required form,
// e.g. "ginger (fresh)".
func (r IngredientRequest) Label() string {
	if r.Form == "" {
		return r.Name
	}
	return r.Name + " (" + string(r.Form) + ")"
}

// ParseForm returns the Form for a known qualifier token, or "" if the token
// is not a recognized form.
func ParseForm(token string) Form {
	switch Form(strings.ToLower(strings.TrimSpace(token))) {
	case FormFresh:
		return FormFresh
	case FormDried:
		return FormDried
	case FormPowder, "powdered":
		return FormPowder
	case FormGround:
		return FormGround
	case FormSeeds, "seed":
		return FormSeeds
	case FormPaste:
		return FormPaste
	case FormWhole:
		return FormWhole
	case FormCanned:
		return FormCanned
	case FormFrozen:
		return FormFrozen
	}
	return ""
}
