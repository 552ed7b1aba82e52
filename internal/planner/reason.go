package planner

import (
	"fmt"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/config"
	"github.com/greenbasket/grocer-cli/internal/model"
)

// minDriverDelta is the smallest winner-minus-runner-up component delta that
// can carry the primary reason on its own.
const minDriverDelta = 3

// qualityComponents are the components whose reasons justify surfacing a
// cost tradeoff. Cost is never a standalone callout.
var qualityComponents = map[string]bool{
	model.ComponentEWG:       true,
	model.ComponentFormFit:   true,
	model.ComponentPackaging: true,
}

// GenerateReason derives the one-line justification for a winner from the
// score-component deltas against the runner-up, plus an optional secondary
// cost-tradeoff detail line gated by the scoring config thresholds.
func GenerateReason(cfg config.ScoringConfig, ing model.IngredientRequest, class catalog.Classification, sel Selection, storeName string) (string, string) {
	if sel.Winner == nil {
		return "", ""
	}
	winner := sel.Winner

	component, delta := topDelta(winner, sel.RunnerUp)
	var line string
	if sel.RunnerUp != nil && delta >= minDriverDelta {
		line = driverLine(component, ing, class, storeName)
	} else {
		line = fallbackLine(ing, class, sel, storeName)
		component = fallbackComponent(class, sel)
	}

	detail := ""
	if sel.RunnerUp != nil && qualityComponents[component] {
		wp, rp := winner.Candidate.Price, sel.RunnerUp.Candidate.Price
		if wp >= rp*cfg.TradeoffMinRatio && wp-rp >= cfg.TradeoffMinDollar {
			detail = fmt.Sprintf("Costs $%.2f more than the runner-up; chosen for quality over price.", wp-rp)
		}
	}

	return line, detail
}

// topDelta returns the component with the largest positive winner-minus-
// runner-up delta. Component order breaks ties so the choice is stable.
func topDelta(winner, runnerUp *model.ScoredCandidate) (string, int) {
	if runnerUp == nil {
		return "", 0
	}
	best, bestDelta := "", 0
	for _, name := range model.ScoreComponents {
		if name == model.ComponentBase {
			continue
		}
		d := winner.Breakdown[name] - runnerUp.Breakdown[name]
		if d > bestDelta {
			best, bestDelta = name, d
		}
	}
	return best, bestDelta
}

// driverLine renders the template for the dominant component delta.
func driverLine(component string, ing model.IngredientRequest, class catalog.Classification, storeName string) string {
	switch component {
	case model.ComponentEWG:
		if class.Bucket == catalog.BucketDirtyDozen {
			return fmt.Sprintf("Organic pick: %s is on the EWG Dirty Dozen, where pesticide residue matters most.", ing.Name)
		}
		return fmt.Sprintf("Organic %s for lower pesticide exposure.", ing.Name)
	case model.ComponentFormFit:
		if ing.Form != "" {
			return fmt.Sprintf("Matches the %s form your recipe calls for.", ing.Form)
		}
		return "Closest match to the form your recipe calls for."
	case model.ComponentPackaging:
		return "Lower-waste packaging than the alternatives."
	case model.ComponentUnitValue:
		return "Best unit value among comparable options."
	case model.ComponentDelivery:
		return fmt.Sprintf("Available soonest from %s.", storeName)
	}
	return "Best overall score among available options."
}

// fallbackLine walks the fixed priority chain when no single component delta
// dominates.
func fallbackLine(ing model.IngredientRequest, class catalog.Classification, sel Selection, storeName string) string {
	winner := sel.Winner

	switch class.Bucket {
	case catalog.BucketDirtyDozen:
		if winner.Candidate.Organic {
			return fmt.Sprintf("Organic pick: %s is on the EWG Dirty Dozen, where pesticide residue matters most.", ing.Name)
		}
	case catalog.BucketCleanFifteen:
		return fmt.Sprintf("%s is on the EWG Clean Fifteen; conventional is a safe choice.", ing.Name)
	case catalog.BucketMiddle:
		if !winner.Candidate.Organic {
			return fmt.Sprintf("Conventional %s is fine when washed or peeled.", ing.Name)
		}
	}

	if sel.RunnerUp != nil {
		if winner.Breakdown[model.ComponentPackaging] > sel.RunnerUp.Breakdown[model.ComponentPackaging] {
			return "Lower-waste packaging than the alternatives."
		}
		if winner.Candidate.FormScore == catalog.FormAcceptable {
			return "A convenient processed form that works for this recipe."
		}
		wu, ru := winner.Candidate.UnitPriceOz, sel.RunnerUp.Candidate.UnitPriceOz
		if wu > 0 && ru > 0 && wu <= ru*0.85 {
			return "At least 15% better unit value than the next option."
		}
	}

	if len(sel.Ranked) == 1 {
		return fmt.Sprintf("The only option for %s at %s.", ing.Name, storeName)
	}
	return fmt.Sprintf("Best available option at %s.", storeName)
}

// fallbackComponent attributes the fallback line to a component for the
// cost-tradeoff gate.
func fallbackComponent(class catalog.Classification, sel Selection) string {
	switch class.Bucket {
	case catalog.BucketDirtyDozen, catalog.BucketCleanFifteen, catalog.BucketMiddle:
		return model.ComponentEWG
	}
	if sel.RunnerUp != nil && sel.Winner.Breakdown[model.ComponentPackaging] > sel.RunnerUp.Breakdown[model.ComponentPackaging] {
		return model.ComponentPackaging
	}
	return ""
}
