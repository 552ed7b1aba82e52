package planner

import (
	"strings"

	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// Filter narrows an ingredient's candidates to those consistent with its
// assigned store and the hard-safety rules. Stages run in a strict, fixed
// order; every elimination carries exactly one reason code. Each stage is
// skip-on-uncertainty: when a rule cannot be evaluated the candidate passes
// through rather than being eliminated.
type Filter struct {
	brands map[string]string
	sanity *catalog.SanityTable
}

// NewFilter creates a Filter over the private-label brand map and the
// configured price-sanity table.
func NewFilter(brands map[string]string, sanity *catalog.SanityTable) *Filter {
	return &Filter{brands: brands, sanity: sanity}
}

// filterStage evaluates one candidate and returns an elimination reason, or
// false to pass the candidate through.
type filterStage func(ing model.IngredientRequest, assignedStore string, c model.ProductCandidate) (model.EliminationReason, bool)

// stages returns the pipeline in its fixed evaluation order.
func (f *Filter) stages() []filterStage {
	return []filterStage{
		f.storeSource,
		f.brandBackstop,
		f.priceSanity,
		f.unitPriceConsistency,
		f.formConstraint,
	}
}

// Apply runs every stage over the pool. Bookkeeping is cumulative and
// order-preserving: eliminated candidates appear in pool order annotated with
// the first stage that rejected them.
func (f *Filter) Apply(ing model.IngredientRequest, assignedStore string, pool []model.ProductCandidate) ([]model.ProductCandidate, []model.EliminatedCandidate) {
	survivors := make([]model.ProductCandidate, 0, len(pool))
	var eliminated []model.EliminatedCandidate

	stages := f.stages()
	for _, c := range pool {
		out := true
		for _, stage := range stages {
			if reason, drop := stage(ing, assignedStore, c); drop {
				eliminated = append(eliminated, model.EliminatedCandidate{Candidate: c, Reason: reason})
				out = false
				break
			}
		}
		if out {
			survivors = append(survivors, c)
		}
	}

	if len(survivors) == 0 && len(pool) > 0 {
		zap.L().Debug("filter: no survivors",
			zap.String("ingredient", ing.Name),
			zap.String("store_id", assignedStore),
			zap.Int("eliminated", len(eliminated)),
		)
	}
	return survivors, eliminated
}

// storeSource requires the candidate's source store to equal the ingredient's
// assigned store.
func (f *Filter) storeSource(_ model.IngredientRequest, assignedStore string, c model.ProductCandidate) (model.EliminationReason, bool) {
	if c.StoreID != assignedStore {
		return model.ReasonWrongStoreSource, true
	}
	return "", false
}

// brandBackstop rejects a private-label brand attributed to a store other
// than its own.
func (f *Filter) brandBackstop(_ model.IngredientRequest, _ string, c model.ProductCandidate) (model.EliminationReason, bool) {
	if c.Brand == "" {
		return "", false
	}
	home, ok := f.brands[strings.ToLower(c.Brand)]
	if ok && home != c.StoreID {
		return model.ReasonWrongStorePrivateLabel, true
	}
	return "", false
}

// priceSanity checks the price against the category/size plausible range.
// Unrecognized size or category combinations pass through.
func (f *Filter) priceSanity(ing model.IngredientRequest, _ string, c model.ProductCandidate) (model.EliminationReason, bool) {
	parsed, ok := catalog.ParseSize(c.Size)
	if !ok {
		return "", false
	}
	category := catalog.CategoryOf(ing.Name)
	if ok, evaluated := f.sanity.Check(category, parsed.Ounces, c.Price); evaluated && !ok {
		return model.ReasonPriceOutlierSanity, true
	}
	return "", false
}

// unitPriceConsistency requires the declared unit-price unit to match the
// unit implied by the size unit. Candidates with no declared unit, or with an
// unparseable size, pass through.
func (f *Filter) unitPriceConsistency(_ model.IngredientRequest, _ string, c model.ProductCandidate) (model.EliminationReason, bool) {
	if c.UnitPriceUnit == "" {
		return "", false
	}
	parsed, ok := catalog.ParseSize(c.Size)
	if !ok {
		return "", false
	}
	expected := catalog.ExpectedUnitPriceUnit(parsed.Family)
	if expected != "" && c.UnitPriceUnit != expected {
		return model.ReasonUnitPriceInconsistent, true
	}
	return "", false
}

// formConstraint applies the include/exclude keyword rules for the
// ingredient's required form.
func (f *Filter) formConstraint(ing model.IngredientRequest, _ string, c model.ProductCandidate) (model.EliminationReason, bool) {
	if ing.Form == "" {
		return "", false
	}
	return catalog.CheckForm(ing.Form, c.Title)
}
