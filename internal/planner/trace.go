package planner

import (
	"sort"

	"github.com/greenbasket/grocer-cli/internal/model"
)

// maxTraceDrivers caps the score-driver list in a trace.
const maxTraceDrivers = 2

// BuildTrace assembles the per-ingredient audit record from the retrieval
// pools, the eliminated set, and the final ranking. Output ordering is fixed
// so two runs over the same inputs serialize identically.
func BuildTrace(pools map[string][]model.ProductCandidate, eliminated []model.EliminatedCandidate, sel Selection) *model.DecisionTrace {
	trace := &model.DecisionTrace{
		Pools:        poolSummaries(pools, sel, eliminated),
		Eliminations: eliminationCounts(eliminated),
	}

	if sel.Winner != nil {
		trace.WinnerScore = sel.Winner.Total
	}
	if sel.RunnerUp != nil {
		trace.RunnerUpScore = sel.RunnerUp.Total
		trace.Margin = trace.WinnerScore - trace.RunnerUpScore
		trace.TopDrivers = topDrivers(sel.Winner, sel.RunnerUp)
	}
	if sel.Winner != nil {
		trace.Tradeoffs = tradeoffs(sel.Winner)
	}

	for i, sc := range sel.Ranked {
		status := model.TraceConsidered
		switch i {
		case 0:
			status = model.TraceWon
		case 1:
			status = model.TraceRunnerUp
		}
		trace.Candidates = append(trace.Candidates, model.TraceCandidate{
			ID:      sc.Candidate.ID,
			Title:   sc.Candidate.Title,
			StoreID: sc.Candidate.StoreID,
			Status:  status,
			Score:   sc.Total,
		})
	}
	for _, e := range eliminated {
		trace.Candidates = append(trace.Candidates, model.TraceCandidate{
			ID:      e.Candidate.ID,
			Title:   e.Candidate.Title,
			StoreID: e.Candidate.StoreID,
			Status:  model.TraceEliminated,
			Reason:  e.Reason,
		})
	}

	return trace
}

// poolSummaries reports retrieved versus surviving counts per store, sorted
// by store ID.
func poolSummaries(pools map[string][]model.ProductCandidate, sel Selection, eliminated []model.EliminatedCandidate) []model.StorePoolSummary {
	retrieved := make(map[string]int)
	for _, pool := range pools {
		for _, c := range pool {
			retrieved[c.StoreID]++
		}
	}

	considered := make(map[string]int)
	for _, sc := range sel.Ranked {
		considered[sc.Candidate.StoreID]++
	}

	ids := make([]string, 0, len(retrieved))
	for id := range retrieved {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]model.StorePoolSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.StorePoolSummary{
			StoreID:    id,
			Retrieved:  retrieved[id],
			Considered: considered[id],
		})
	}
	return out
}

func eliminationCounts(eliminated []model.EliminatedCandidate) map[model.EliminationReason]int {
	if len(eliminated) == 0 {
		return nil
	}
	counts := make(map[model.EliminationReason]int)
	for _, e := range eliminated {
		counts[e.Reason]++
	}
	return counts
}

// topDrivers lists the components with the largest positive winner-minus-
// runner-up deltas, largest first, capped at maxTraceDrivers. Component order
// breaks ties.
func topDrivers(winner, runnerUp *model.ScoredCandidate) []model.ScoreDriver {
	var drivers []model.ScoreDriver
	for _, name := range model.ScoreComponents {
		if name == model.ComponentBase {
			continue
		}
		d := winner.Breakdown[name] - runnerUp.Breakdown[name]
		if d > 0 {
			drivers = append(drivers, model.ScoreDriver{Component: name, Delta: d})
		}
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Delta > drivers[j].Delta
	})
	if len(drivers) > maxTraceDrivers {
		drivers = drivers[:maxTraceDrivers]
	}
	return drivers
}

// tradeoffs names every component that counted against the winner.
func tradeoffs(winner *model.ScoredCandidate) []string {
	var out []string
	for _, name := range model.ScoreComponents {
		if winner.Breakdown[name] < 0 {
			out = append(out, name)
		}
	}
	return out
}
