package model

import "time"

// Product is one inventory row as stored by the repository. Candidates are
// derived from products at retrieval time.
type Product struct {
	ID            string    `json:"id" yaml:"id"`
	StoreID       string    `json:"store_id" yaml:"store_id"`
	Title         string    `json:"title" yaml:"title"`
	Brand         string    `json:"brand,omitempty" yaml:"brand,omitempty"`
	Price         float64   `json:"price" yaml:"price"`
	Size          string    `json:"size,omitempty" yaml:"size,omitempty"`
	Organic       bool      `json:"organic" yaml:"organic,omitempty"`
	Packaging     string    `json:"packaging,omitempty" yaml:"packaging,omitempty"`
	UnitPrice     float64   `json:"unit_price,omitempty" yaml:"unit_price,omitempty"`
	UnitPriceUnit string    `json:"unit_price_unit,omitempty" yaml:"unit_price_unit,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ProductCandidate is a retrieved product annotated with derived fields.
// Never mutated after creation except for the transient OutlierPenalty flag
// set during selection.
type ProductCandidate struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Brand         string  `json:"brand,omitempty"`
	Price         float64 `json:"price"`
	Size          string  `json:"size,omitempty"`
	Organic       bool    `json:"organic"`
	StoreID       string  `json:"store_id"`
	Packaging     string  `json:"packaging,omitempty"`
	UnitPriceUnit string  `json:"unit_price_unit,omitempty"`

	// Derived at retrieval.
	UnitPriceOz float64 `json:"unit_price_oz,omitempty"`
	FormScore   int     `json:"form_score"`

	// Set during selection.
	OutlierPenalty bool `json:"outlier_penalty,omitempty"`
}

// Score component names. Every ScoreBreakdown key is one of these.
const (
	ComponentBase           = "base"
	ComponentEWG            = "ewg"
	ComponentFormFit        = "form_fit"
	ComponentPackaging      = "packaging"
	ComponentDelivery       = "delivery"
	ComponentUnitValue      = "unit_value"
	ComponentOutlierPenalty = "outlier_penalty"
)

// ScoreComponents lists every component name in presentation order.
var ScoreComponents = []string{
	ComponentBase,
	ComponentEWG,
	ComponentFormFit,
	ComponentPackaging,
	ComponentDelivery,
	ComponentUnitValue,
	ComponentOutlierPenalty,
}

// ScoreBreakdown maps component name to its signed contribution.
type ScoreBreakdown map[string]int

// ScoredCandidate is a surviving candidate with its clamped total score and
// per-component breakdown.
type ScoredCandidate struct {
	Candidate ProductCandidate `json:"candidate"`
	Total     int              `json:"total"`
	Breakdown ScoreBreakdown   `json:"breakdown"`
}

// EliminationReason is a closed code identifying why a candidate was removed
// by the filter pipeline.
type EliminationReason string

const (
	ReasonWrongStoreSource       EliminationReason = "wrong_store_source"
	ReasonWrongStorePrivateLabel EliminationReason = "wrong_store_private_label"
	ReasonPriceOutlierSanity     EliminationReason = "price_outlier_sanity"
	ReasonUnitPriceInconsistent  EliminationReason = "unit_price_inconsistent"
	ReasonFormExcludedKeyword    EliminationReason = "form_excluded_keyword"
	ReasonFormMissingKeyword     EliminationReason = "form_missing_keyword"
)

// EliminationReasons lists every reason code for exhaustive trace buckets.
var EliminationReasons = []EliminationReason{
	ReasonWrongStoreSource,
	ReasonWrongStorePrivateLabel,
	ReasonPriceOutlierSanity,
	ReasonUnitPriceInconsistent,
	ReasonFormExcludedKeyword,
	ReasonFormMissingKeyword,
}

// EliminatedCandidate pairs a candidate with exactly one elimination reason.
// Eliminated candidates are never scored.
type EliminatedCandidate struct {
	Candidate ProductCandidate  `json:"candidate"`
	Reason    EliminationReason `json:"reason"`
}
