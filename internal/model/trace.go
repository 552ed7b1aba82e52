package model

// StorePoolSummary reports per-store candidate counts: how many rows the
// retriever returned versus how many survived filtering.
type StorePoolSummary struct {
	StoreID    string `json:"store_id"`
	Retrieved  int    `json:"retrieved"`
	Considered int    `json:"considered"`
}

// Candidate status tags used in decision traces.
const (
	TraceWon        = "won"
	TraceRunnerUp   = "runner_up"
	TraceConsidered = "considered"
	TraceEliminated = "eliminated"
)

// TraceCandidate is one candidate's line in the audit record.
type TraceCandidate struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	StoreID string            `json:"store_id"`
	Status  string            `json:"status"`
	Score   int               `json:"score,omitempty"`
	Reason  EliminationReason `json:"reason,omitempty"`
}

// ScoreDriver names a component and the winner-minus-runner-up delta it
// contributed.
type ScoreDriver struct {
	Component string `json:"component"`
	Delta     int    `json:"delta"`
}

// DecisionTrace is the per-ingredient audit record. Built only when the
// caller asks for it.
type DecisionTrace struct {
	Pools         []StorePoolSummary        `json:"pools"`
	WinnerScore   int                       `json:"winner_score"`
	RunnerUpScore int                       `json:"runner_up_score,omitempty"`
	Margin        int                       `json:"margin,omitempty"`
	Candidates    []TraceCandidate          `json:"candidates"`
	TopDrivers    []ScoreDriver             `json:"top_drivers,omitempty"`
	Tradeoffs     []string                  `json:"tradeoffs,omitempty"`
	Eliminations  map[EliminationReason]int `json:"eliminations,omitempty"`
}
