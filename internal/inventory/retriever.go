package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// Retriever performs bounded candidate retrieval against the repository and
// derives the per-candidate fields the pipeline needs (unit price in ounces,
// form score). It does no filtering and no scoring.
type Retriever struct {
	store Store
	max   int
}

// NewRetriever creates a Retriever capped at maxCandidates per store per
// lookup.
func NewRetriever(store Store, maxCandidates int) *Retriever {
	if maxCandidates <= 0 {
		maxCandidates = 6
	}
	return &Retriever{store: store, max: maxCandidates}
}

// Retrieve returns candidates for a normalized retrieval key. An empty result
// or a repository failure yields an empty list with a diagnostic log, never
// an error: the pipeline has no error path for missing inventory.
func (r *Retriever) Retrieve(ctx context.Context, key string, form model.Form) []model.ProductCandidate {
	products, err := r.store.SearchProducts(ctx, key, r.max)
	if err != nil {
		zap.L().Warn("retriever: search failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	if len(products) == 0 {
		zap.L().Debug("retriever: no candidates",
			zap.String("key", key),
		)
		return nil
	}

	candidates := make([]model.ProductCandidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, enrich(p, form))
	}
	return candidates
}

// enrich derives unit price and form score for one product row.
func enrich(p model.Product, form model.Form) model.ProductCandidate {
	c := model.ProductCandidate{
		ID:            p.ID,
		Title:         p.Title,
		Brand:         p.Brand,
		Price:         p.Price,
		Size:          p.Size,
		Organic:       p.Organic,
		StoreID:       p.StoreID,
		Packaging:     p.Packaging,
		UnitPriceUnit: p.UnitPriceUnit,
		FormScore:     catalog.FormScore(form, p.Title),
	}

	// Prefer a declared per-ounce unit price; otherwise derive one from the
	// size string. Unparseable sizes leave the unit price at zero.
	if p.UnitPrice > 0 && p.UnitPriceUnit == "oz" {
		c.UnitPriceOz = p.UnitPrice
	} else if parsed, ok := catalog.ParseSize(p.Size); ok && parsed.Ounces > 0 {
		c.UnitPriceOz = p.Price / parsed.Ounces
	}

	return c
}
