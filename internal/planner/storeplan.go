package planner

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// StorePlanner chooses which stores to use and assigns every ingredient to
// exactly one store. Selection happens once per planning request, before any
// per-candidate filtering, and is never revisited.
type StorePlanner struct {
	cfg    config.StorePlanConfig
	stores []config.StoreInfo
	brands map[string]string
}

// NewStorePlanner creates a StorePlanner over the configured store roster and
// private-label brand map.
func NewStorePlanner(cfg config.StorePlanConfig, stores []config.StoreInfo, brands map[string]string) *StorePlanner {
	return &StorePlanner{cfg: cfg, stores: stores, brands: brands}
}

// Plan computes the StorePlan for one request given each ingredient's
// enriched candidate pool.
func (p *StorePlanner) Plan(ingredients []model.IngredientRequest, pools map[string][]model.ProductCandidate) model.StorePlan {
	coverage := p.coverage(pools)

	var unavailable []string
	for _, ing := range ingredients {
		if len(pools[ing.Name]) == 0 {
			unavailable = append(unavailable, ing.Name)
		}
	}

	primary, primaryScore := p.pickPrimary(ingredients, pools, coverage)
	if primary == "" {
		// Nothing is available anywhere.
		return model.StorePlan{Unavailable: unavailable}
	}

	specialtyOnly := p.specialtyOnly(ingredients, coverage)

	plan := model.StorePlan{Unavailable: unavailable}

	if len(specialtyOnly) < p.cfg.SpecialtyMinItems {
		// 1-item rule: never open a second store for one or two specialty
		// items. Everything with any candidate routes to the primary store.
		var assigned []string
		for _, ing := range ingredients {
			if len(pools[ing.Name]) > 0 {
				assigned = append(assigned, ing.Name)
			}
		}
		plan.Stores = []string{primary}
		plan.Assignments = []model.StoreAssignment{{
			StoreID:     primary,
			Ingredients: assigned,
			Rationale:   fmt.Sprintf("best coverage (score %d); fewer than %d specialty-only items", primaryScore, p.cfg.SpecialtyMinItems),
		}}
		zap.L().Debug("store plan: single store",
			zap.String("primary", primary),
			zap.Int("specialty_only", len(specialtyOnly)),
		)
		return plan
	}

	specialty := p.pickSpecialty(specialtyOnly, coverage)

	var primaryItems, specialtyItems []string
	for _, ing := range ingredients {
		if len(pools[ing.Name]) == 0 {
			continue
		}
		if specialtyOnly[ing.Name] {
			specialtyItems = append(specialtyItems, ing.Name)
		} else {
			primaryItems = append(primaryItems, ing.Name)
		}
	}

	plan.Stores = []string{primary, specialty}
	plan.Assignments = []model.StoreAssignment{
		{
			StoreID:     primary,
			Ingredients: primaryItems,
			Rationale:   fmt.Sprintf("best coverage (score %d)", primaryScore),
		},
		{
			StoreID:     specialty,
			Ingredients: specialtyItems,
			Rationale:   fmt.Sprintf("%d items only available at a specialty store", len(specialtyItems)),
		},
	}

	zap.L().Debug("store plan: two stores",
		zap.String("primary", primary),
		zap.String("specialty", specialty),
		zap.Int("specialty_items", len(specialtyItems)),
	)
	return plan
}

// coverage maps each store to the set of ingredient names it has at least
// one candidate for.
func (p *StorePlanner) coverage(pools map[string][]model.ProductCandidate) map[string]map[string]bool {
	cov := make(map[string]map[string]bool)
	for name, pool := range pools {
		for _, c := range pool {
			if cov[c.StoreID] == nil {
				cov[c.StoreID] = make(map[string]bool)
			}
			cov[c.StoreID][name] = true
		}
	}
	return cov
}

// pickPrimary scores each primary-tier store and returns the winner. Ties
// break lexicographically by store ID so replans are reproducible.
func (p *StorePlanner) pickPrimary(ingredients []model.IngredientRequest, pools map[string][]model.ProductCandidate, coverage map[string]map[string]bool) (string, int) {
	best := ""
	bestScore := 0
	for _, info := range p.stores {
		if info.Tier != config.TierPrimary {
			continue
		}
		cov := coverage[info.ID]
		if len(cov) == 0 {
			continue
		}

		score := len(cov)
		score += p.premiumProteinBonus(info.ID, ingredients, pools)
		if p.privateLabelHeavy(info.ID, pools) {
			score -= p.cfg.PrivateLabelPenalty
		}

		if best == "" || score > bestScore || (score == bestScore && info.ID < best) {
			best = info.ID
			bestScore = score
		}
	}
	return best, bestScore
}

// premiumProteinBonus awards the configured bonus when the store carries a
// premium (non-private-label) brand for a fresh protein ingredient.
func (p *StorePlanner) premiumProteinBonus(storeID string, ingredients []model.IngredientRequest, pools map[string][]model.ProductCandidate) int {
	for _, ing := range ingredients {
		if catalog.CategoryOf(ing.Name) != catalog.CategoryProtein {
			continue
		}
		if ing.Form != "" && ing.Form != model.FormFresh {
			continue
		}
		for _, c := range pools[ing.Name] {
			if c.StoreID == storeID && c.Brand != "" && !p.isPrivateLabel(c.Brand) {
				return p.cfg.PremiumProteinBonus
			}
		}
	}
	return 0
}

// privateLabelHeavy reports whether more than the configured share of the
// store's sampled candidates carry a private-label brand.
func (p *StorePlanner) privateLabelHeavy(storeID string, pools map[string][]model.ProductCandidate) bool {
	sampled, privateLabel := 0, 0
	for _, pool := range pools {
		for _, c := range pool {
			if c.StoreID != storeID {
				continue
			}
			sampled++
			if p.isPrivateLabel(c.Brand) {
				privateLabel++
			}
		}
	}
	if sampled == 0 {
		return false
	}
	return float64(privateLabel)/float64(sampled) > p.cfg.PrivateLabelShare
}

func (p *StorePlanner) isPrivateLabel(brand string) bool {
	_, ok := p.brands[strings.ToLower(brand)]
	return ok
}

// specialtyOnly returns the ingredient names available only at
// specialty-tier stores.
func (p *StorePlanner) specialtyOnly(ingredients []model.IngredientRequest, coverage map[string]map[string]bool) map[string]bool {
	tier := make(map[string]string, len(p.stores))
	for _, info := range p.stores {
		tier[info.ID] = info.Tier
	}

	only := make(map[string]bool)
	for _, ing := range ingredients {
		atSpecialty, atPrimary := false, false
		for storeID, cov := range coverage {
			if !cov[ing.Name] {
				continue
			}
			if tier[storeID] == config.TierSpecialty {
				atSpecialty = true
			} else {
				atPrimary = true
			}
		}
		if atSpecialty && !atPrimary {
			only[ing.Name] = true
		}
	}
	return only
}

// pickSpecialty returns the specialty store covering the most specialty-only
// items; ties break lexicographically.
func (p *StorePlanner) pickSpecialty(specialtyOnly map[string]bool, coverage map[string]map[string]bool) string {
	type scored struct {
		id string
		n  int
	}
	var options []scored
	for _, info := range p.stores {
		if info.Tier != config.TierSpecialty {
			continue
		}
		n := 0
		for name := range specialtyOnly {
			if coverage[info.ID][name] {
				n++
			}
		}
		if n > 0 {
			options = append(options, scored{id: info.ID, n: n})
		}
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].n != options[j].n {
			return options[i].n > options[j].n
		}
		return options[i].id < options[j].id
	})
	if len(options) == 0 {
		return ""
	}
	return options[0].id
}
