package planner

import (
	"sort"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// Scorer computes the 0-100 component score for surviving candidates.
// Deterministic and side-effect-free: identical inputs always produce
// identical breakdowns.
type Scorer struct {
	cfg config.ScoringConfig
	ewg *catalog.Classifier
}

// NewScorer creates a Scorer from scoring config and the EWG classifier.
func NewScorer(cfg config.ScoringConfig, ewg *catalog.Classifier) *Scorer {
	return &Scorer{cfg: cfg, ewg: ewg}
}

// unitStats holds the per-ingredient unit-price distribution used by the
// unit_value and outlier components. Computed once per ingredient before any
// sorting.
type unitStats struct {
	comparable int
	quartile   float64
	median     float64
}

func computeUnitStats(survivors []model.ProductCandidate) unitStats {
	var prices []float64
	for _, c := range survivors {
		if c.UnitPriceOz > 0 {
			prices = append(prices, c.UnitPriceOz)
		}
	}
	if len(prices) < 2 {
		return unitStats{comparable: len(prices)}
	}
	sort.Float64s(prices)
	return unitStats{
		comparable: len(prices),
		quartile:   prices[(len(prices)-1)/4],
		median:     prices[(len(prices)-1)/2],
	}
}

// ScoreAll scores every survivor for one ingredient. The outlier flag is
// attached to the candidate copy inside each ScoredCandidate; the input slice
// is not mutated.
func (s *Scorer) ScoreAll(ing model.IngredientRequest, survivors []model.ProductCandidate, store config.StoreInfo, intent string) []model.ScoredCandidate {
	stats := computeUnitStats(survivors)
	class := s.ewg.Classify(ing.Name)

	scored := make([]model.ScoredCandidate, 0, len(survivors))
	for _, c := range survivors {
		if stats.comparable >= 2 && c.UnitPriceOz > s.cfg.OutlierMultiple*stats.median {
			c.OutlierPenalty = true
		}
		scored = append(scored, s.score(c, class, store, intent, stats))
	}
	return scored
}

// score computes one candidate's clamped total and breakdown.
func (s *Scorer) score(c model.ProductCandidate, class catalog.Classification, store config.StoreInfo, intent string, stats unitStats) model.ScoredCandidate {
	breakdown := model.ScoreBreakdown{
		model.ComponentBase:           s.cfg.Base,
		model.ComponentEWG:            s.ewgPoints(class, c.Organic),
		model.ComponentFormFit:        s.formFitPoints(c.FormScore),
		model.ComponentPackaging:      catalog.PackagingPoints(c.Packaging, c.Title),
		model.ComponentDelivery:       s.deliveryPoints(store, intent),
		model.ComponentUnitValue:      s.unitValuePoints(c, stats),
		model.ComponentOutlierPenalty: 0,
	}
	if c.OutlierPenalty {
		breakdown[model.ComponentOutlierPenalty] = -s.cfg.OutlierPenalty
	}

	total := 0
	for _, v := range breakdown {
		total += v
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return model.ScoredCandidate{Candidate: c, Total: total, Breakdown: breakdown}
}

// ewgPoints biases toward organic proportionally to pesticide-residue risk.
// Missing classification data degrades to the non-produce neutral values.
func (s *Scorer) ewgPoints(class catalog.Classification, organic bool) int {
	switch class.Bucket {
	case catalog.BucketDirtyDozen:
		if organic {
			return s.cfg.EWGDirtyOrganic
		}
		return s.cfg.EWGDirtyConventional
	case catalog.BucketMiddle:
		if organic {
			return s.cfg.EWGMiddleOrganic
		}
		return 0
	case catalog.BucketCleanFifteen:
		if organic {
			return s.cfg.EWGCleanOrganic
		}
		return 0
	default:
		if organic {
			return s.cfg.EWGNonProduceOrganic
		}
		return 0
	}
}

// formFitPoints maps the retrieval-time form score to its contribution.
// Incompatible forms were filtered earlier and never reach here.
func (s *Scorer) formFitPoints(formScore int) int {
	switch formScore {
	case catalog.FormPerfect:
		return s.cfg.FormPerfect
	case catalog.FormAcceptable:
		return s.cfg.FormAcceptable
	case catalog.FormMinor:
		return s.cfg.FormMinor
	default:
		return s.cfg.FormNeutral
	}
}

// deliveryPoints penalizes a slow store only when the user wants to cook
// soon. Unknown intent is neutral.
func (s *Scorer) deliveryPoints(store config.StoreInfo, intent string) int {
	if store.Delivery == config.DeliverySlow && intent == catalog.IntentCookSoon {
		return -s.cfg.SlowDeliveryPenalty
	}
	return 0
}

// unitValuePoints rewards unit prices in the cheapest quartile or at or
// below the median, relative to the other survivors. With fewer than two
// comparable candidates the component is neutral.
func (s *Scorer) unitValuePoints(c model.ProductCandidate, stats unitStats) int {
	if stats.comparable < 2 || c.UnitPriceOz <= 0 {
		return s.cfg.UnitMedianBonus
	}
	if c.UnitPriceOz <= stats.quartile {
		return s.cfg.UnitQuartileBonus
	}
	if c.UnitPriceOz <= stats.median {
		return s.cfg.UnitMedianBonus
	}
	return 0
}
