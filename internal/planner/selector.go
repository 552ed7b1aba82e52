package planner

import "github.com/greenbasket/grocer-cli/internal/model"

// Selection is the outcome of winner/runner-up/cheaper-alternative picking
// for one ingredient.
type Selection struct {
	Winner   *model.ScoredCandidate
	RunnerUp *model.ScoredCandidate
	Cheaper  *model.ScoredCandidate
	Ranked   []model.ScoredCandidate
}

// Select orders survivors by (organic first, non-outliers first, better form
// match, cheaper price) and picks the winner, the runner-up used for reason
// generation, and the optional cheaper alternative whose price is strictly
// below cheaperRatio of the winner's price. Candidate ID is the final
// tie-break so identical inputs always rank identically.
func Select(scored []model.ScoredCandidate, cheaperRatio float64) Selection {
	if len(scored) == 0 {
		return Selection{}
	}

	ranked := make([]model.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sortRanked(ranked)

	sel := Selection{Winner: &ranked[0], Ranked: ranked}
	if len(ranked) > 1 {
		sel.RunnerUp = &ranked[1]
	}

	ceiling := cheaperRatio * sel.Winner.Candidate.Price
	var cheaper *model.ScoredCandidate
	for i := range ranked {
		c := &ranked[i]
		if c.Candidate.ID == sel.Winner.Candidate.ID {
			continue
		}
		if c.Candidate.Price >= ceiling {
			continue
		}
		if cheaper == nil ||
			c.Candidate.Price < cheaper.Candidate.Price ||
			(c.Candidate.Price == cheaper.Candidate.Price && c.Candidate.ID < cheaper.Candidate.ID) {
			cheaper = c
		}
	}
	sel.Cheaper = cheaper

	return sel
}

func sortRanked(ranked []model.ScoredCandidate) {
	// Insertion sort keeps this dependency-free and stable; pools are tiny.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && rankLess(ranked[j], ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
}

func rankLess(a, b model.ScoredCandidate) bool {
	if a.Candidate.Organic != b.Candidate.Organic {
		return a.Candidate.Organic
	}
	if a.Candidate.OutlierPenalty != b.Candidate.OutlierPenalty {
		return !a.Candidate.OutlierPenalty
	}
	if a.Candidate.FormScore != b.Candidate.FormScore {
		return a.Candidate.FormScore < b.Candidate.FormScore
	}
	if a.Candidate.Price != b.Candidate.Price {
		return a.Candidate.Price < b.Candidate.Price
	}
	return a.Candidate.ID < b.Candidate.ID
}
