package planner

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/inventory"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// PlanRequest is one planning invocation. Ingredients carries the raw
// mentions; Forms optionally overrides the parsed form per canonical name.
type PlanRequest struct {
	Prompt       string            `json:"prompt,omitempty"`
	Ingredients  []string          `json:"ingredients"`
	Forms        map[string]string `json:"forms,omitempty"`
	Servings     int               `json:"servings,omitempty"`
	IncludeTrace bool              `json:"include_trace,omitempty"`
}

// Planner runs the full pipeline for one request: canonicalize, retrieve,
// plan stores, then filter, score, select, and explain per ingredient. All
// stages are deterministic; replanning an identical request yields a
// byte-identical CartPlan.
type Planner struct {
	cfg       *config.Config
	retriever *inventory.Retriever
	ewg       *catalog.Classifier
	stores    *StorePlanner
	filter    *Filter
	scorer    *Scorer
}

// New wires a Planner from config, the inventory retriever, and the EWG
// classifier.
func New(cfg *config.Config, retriever *inventory.Retriever, ewg *catalog.Classifier) *Planner {
	return &Planner{
		cfg:       cfg,
		retriever: retriever,
		ewg:       ewg,
		stores:    NewStorePlanner(cfg.StorePlan, cfg.Stores, cfg.Brands),
		filter:    NewFilter(cfg.Brands, catalog.NewSanityTable(cfg.Sanity)),
		scorer:    NewScorer(cfg.Scoring, ewg),
	}
}

// Plan executes the pipeline. It fails only on an empty ingredient list;
// unavailable ingredients surface as unavailable cart items, never as errors.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*model.CartPlan, error) {
	ingredients := p.canonicalize(req)
	if len(ingredients) == 0 {
		return nil, eris.New("planner: no ingredients to plan")
	}

	pools := make(map[string][]model.ProductCandidate, len(ingredients))
	for _, ing := range ingredients {
		pools[ing.Name] = p.retriever.Retrieve(ctx, ing.Name, ing.Form)
	}

	storePlan := p.stores.Plan(ingredients, pools)
	intent := catalog.InferIntent(req.Prompt)

	plan := &model.CartPlan{
		Prompt:    req.Prompt,
		Servings:  req.Servings,
		StorePlan: storePlan,
		Totals:    model.CartTotals{StoreSubtotals: make(map[string]float64)},
	}
	for _, ing := range ingredients {
		plan.Ingredients = append(plan.Ingredients, ing.Name)
	}

	for _, ing := range ingredients {
		plan.Items = append(plan.Items, p.planItem(ing, pools, storePlan, intent, req.IncludeTrace))
	}

	p.total(plan)

	zap.L().Info("plan complete",
		zap.Int("ingredients", len(ingredients)),
		zap.Strings("stores", storePlan.Stores),
		zap.Int("unavailable", len(storePlan.Unavailable)),
	)
	return plan, nil
}

// canonicalize turns the raw mentions into deduplicated IngredientRequests,
// preserving first-mention order.
func (p *Planner) canonicalize(req PlanRequest) []model.IngredientRequest {
	seen := make(map[string]bool)
	var out []model.IngredientRequest
	for _, raw := range req.Ingredients {
		name, form := Canonicalize(raw, req.Prompt)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if override := req.Forms[name]; override != "" {
			if f := model.ParseForm(override); f != "" {
				form = f
			}
		}
		out = append(out, model.IngredientRequest{Raw: raw, Name: name, Form: form})
	}
	return out
}

// planItem runs filter, score, select, and reason generation for one
// ingredient. Exactly one CartItem comes back regardless of outcome.
func (p *Planner) planItem(ing model.IngredientRequest, pools map[string][]model.ProductCandidate, storePlan model.StorePlan, intent string, includeTrace bool) model.CartItem {
	item := model.CartItem{
		IngredientName: ing.Name,
		Label:          ing.Label(),
	}

	assigned := storePlan.AssignmentFor(ing.Name)
	if assigned == "" {
		item.Status = model.ItemUnavailable
		item.Reason = "No store in the plan carries " + ing.Name + "."
		if includeTrace {
			item.Trace = BuildTrace(map[string][]model.ProductCandidate{ing.Name: pools[ing.Name]}, nil, Selection{})
		}
		return item
	}
	item.StoreID = assigned

	pool := pools[ing.Name]
	survivors, eliminated := p.filter.Apply(ing, assigned, pool)
	if len(survivors) == 0 {
		item.Status = model.ItemUnavailable
		item.Reason = "Every candidate for " + ing.Name + " was eliminated by safety checks."
		if includeTrace {
			item.Trace = BuildTrace(map[string][]model.ProductCandidate{ing.Name: pool}, eliminated, Selection{})
		}
		return item
	}

	store, _ := p.cfg.StoreByID(assigned)
	scored := p.scorer.ScoreAll(ing, survivors, store, intent)
	sel := Select(scored, p.cfg.Scoring.CheaperRatio)

	class := p.ewg.Classify(ing.Name)
	storeName := store.Name
	if storeName == "" {
		storeName = assigned
	}
	reason, detail := GenerateReason(p.cfg.Scoring, ing, class, sel, storeName)

	item.Status = model.ItemAvailable
	item.EthicalDefault = sel.Winner
	item.Cheaper = sel.Cheaper
	item.Reason = reason
	item.ReasonDetail = detail
	if includeTrace {
		item.Trace = BuildTrace(map[string][]model.ProductCandidate{ing.Name: pool}, eliminated, sel)
	}
	return item
}

// total fills the cart totals from the finished items. The cheaper total
// substitutes the cheaper alternative wherever one exists.
func (p *Planner) total(plan *model.CartPlan) {
	for _, item := range plan.Items {
		if item.EthicalDefault == nil {
			continue
		}
		price := item.EthicalDefault.Candidate.Price
		plan.Totals.RecommendedTotal += price
		plan.Totals.StoreSubtotals[item.StoreID] += price

		if item.Cheaper != nil {
			plan.Totals.CheaperTotal += item.Cheaper.Candidate.Price
		} else {
			plan.Totals.CheaperTotal += price
		}
	}
	plan.Totals.RecommendedTotal = roundCents(plan.Totals.RecommendedTotal)
	plan.Totals.CheaperTotal = roundCents(plan.Totals.CheaperTotal)
	plan.Totals.PotentialSavings = roundCents(plan.Totals.RecommendedTotal - plan.Totals.CheaperTotal)
	for id, v := range plan.Totals.StoreSubtotals {
		plan.Totals.StoreSubtotals[id] = roundCents(v)
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
