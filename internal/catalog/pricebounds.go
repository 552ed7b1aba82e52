package catalog

// PriceBound is one row of the price-sanity table: for a category and parsed
// size range (in ounces), the plausible retail price window. The numeric
// bounds are configuration data; this package only interprets them.
type PriceBound struct {
	Category  string  `yaml:"category" mapstructure:"category"`
	MinSizeOz float64 `yaml:"min_size_oz" mapstructure:"min_size_oz"`
	MaxSizeOz float64 `yaml:"max_size_oz" mapstructure:"max_size_oz"`
	MinPrice  float64 `yaml:"min_price" mapstructure:"min_price"`
	MaxPrice  float64 `yaml:"max_price" mapstructure:"max_price"`
}

// DefaultPriceBounds returns the hand-tuned sanity windows. A MaxSizeOz of 0
// means unbounded above.
func DefaultPriceBounds() []PriceBound {
	return []PriceBound{
		// Bulk grains: a 10 lb+ bag of rice lands between $18 and $50.
		{Category: CategoryGrain, MinSizeOz: 160, MaxSizeOz: 0, MinPrice: 18, MaxPrice: 50},
		{Category: CategoryGrain, MinSizeOz: 16, MaxSizeOz: 160, MinPrice: 1, MaxPrice: 30},
		// Spices are sold small and expensive per ounce.
		{Category: CategorySpice, MinSizeOz: 0.1, MaxSizeOz: 8, MinPrice: 0.5, MaxPrice: 25},
		{Category: CategorySpice, MinSizeOz: 8, MaxSizeOz: 32, MinPrice: 3, MaxPrice: 60},
		// Produce by the pound.
		{Category: CategoryProduce, MinSizeOz: 4, MaxSizeOz: 80, MinPrice: 0.25, MaxPrice: 30},
		// Proteins.
		{Category: CategoryProtein, MinSizeOz: 4, MaxSizeOz: 160, MinPrice: 1, MaxPrice: 120},
		// Dairy.
		{Category: CategoryDairy, MinSizeOz: 4, MaxSizeOz: 256, MinPrice: 0.5, MaxPrice: 40},
	}
}

// SanityTable evaluates candidate prices against configured bounds.
type SanityTable struct {
	bounds []PriceBound
}

// NewSanityTable builds a table from configured bounds, falling back to the
// defaults when none are configured.
func NewSanityTable(bounds []PriceBound) *SanityTable {
	if len(bounds) == 0 {
		bounds = DefaultPriceBounds()
	}
	return &SanityTable{bounds: bounds}
}

// Check reports whether a price is plausible for the category and size.
// evaluated=false means no bound covered the category/size combination; the
// caller must pass the candidate through rather than eliminate it.
func (t *SanityTable) Check(category string, sizeOz, price float64) (ok, evaluated bool) {
	for _, b := range t.bounds {
		if b.Category != category {
			continue
		}
		if sizeOz < b.MinSizeOz {
			continue
		}
		if b.MaxSizeOz > 0 && sizeOz >= b.MaxSizeOz {
			continue
		}
		return price >= b.MinPrice && price <= b.MaxPrice, true
	}
	return true, false
}
