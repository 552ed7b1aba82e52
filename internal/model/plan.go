package model

// StoreAssignment assigns a set of ingredients to one store, with a free-text
// rationale. Created once per plan and read-only afterward.
type StoreAssignment struct {
	StoreID     string   `json:"store_id"`
	Ingredients []string `json:"ingredients"`
	Rationale   string   `json:"rationale,omitempty"`
}

// StorePlan is the overall store selection for one planning request.
type StorePlan struct {
	Stores      []string          `json:"stores"`
	Assignments []StoreAssignment `json:"assignments"`
	Unavailable []string          `json:"unavailable,omitempty"`
}

// AssignmentFor returns the store assigned to an ingredient, or "" if the
// ingredient is unavailable.
func (p StorePlan) AssignmentFor(ingredientName string) string {
	for _, a := range p.Assignments {
		for _, name := range a.Ingredients {
			if name == ingredientName {
				return a.StoreID
			}
		}
	}
	return ""
}

// CartItem statuses.
const (
	ItemAvailable   = "available"
	ItemUnavailable = "unavailable"
)

// CartItem is the outcome for one requested ingredient. Exactly one CartItem
// is produced per IngredientRequest.
type CartItem struct {
	IngredientName string           `json:"ingredient_name"`
	Label          string           `json:"label"`
	StoreID        string           `json:"store_id,omitempty"`
	EthicalDefault *ScoredCandidate `json:"ethical_default,omitempty"`
	Cheaper        *ScoredCandidate `json:"cheaper,omitempty"`
	Status         string           `json:"status"`
	Reason         string           `json:"reason"`
	ReasonDetail   string           `json:"reason_detail,omitempty"`
	Trace          *DecisionTrace   `json:"trace,omitempty"`
}

// CartTotals aggregates plan pricing.
type CartTotals struct {
	RecommendedTotal float64            `json:"recommended_total"`
	CheaperTotal     float64            `json:"cheaper_total"`
	PotentialSavings float64            `json:"potential_savings"`
	StoreSubtotals   map[string]float64 `json:"store_subtotals"`
}

// CartPlan is the single contract consumed by any presentation layer. No
// ingredient, store, or price invariant may be re-derived downstream.
type CartPlan struct {
	Prompt      string     `json:"prompt,omitempty"`
	Servings    int        `json:"servings,omitempty"`
	Ingredients []string   `json:"ingredients"`
	StorePlan   StorePlan  `json:"store_plan"`
	Items       []CartItem `json:"items"`
	Totals      CartTotals `json:"totals"`
}
