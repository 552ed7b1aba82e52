// Package catalog holds the read-only reference data the planner consults:
// keyword rule tables, EWG classification, size parsing, and price-sanity
// bounds. Everything here is loaded once and never mutated afterward.
package catalog

import "strings"

// KeywordRule maps a set of lowercase keywords to a result value. Rules are
// evaluated in slice order; the first rule with a matching keyword wins, so
// precedence is explicit in the table itself.
type KeywordRule struct {
	Value    string   `yaml:"value"`
	Keywords []string `yaml:"keywords"`
}

// MatchFirst evaluates an ordered rule table against a text and returns the
// value of the first rule whose keyword appears in the text.
func MatchFirst(rules []KeywordRule, text string) (string, bool) {
	t := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(t, kw) {
				return rule.Value, true
			}
		}
	}
	return "", false
}

// Ingredient categories used by the price-sanity table and EWG gating.
const (
	CategoryProduce = "produce"
	CategoryProtein = "protein"
	CategoryGrain   = "grain"
	CategorySpice   = "spice"
	CategoryDairy   = "dairy"
	CategoryPantry  = "pantry"
)

// categoryRules is the single ordered table for ingredient categorization.
// Produce is listed before spice so "bell pepper" resolves as produce rather
// than matching "pepper" in the spice rule.
var categoryRules = []KeywordRule{
	{Value: CategoryProduce, Keywords: []string{
		"spinach", "kale", "strawberr", "blueberr", "grape", "peach", "pear",
		"nectarine", "apple", "cherr", "green bean", "bell pepper", "potato",
		"tomato", "onion", "garlic", "ginger", "carrot", "celery", "lettuce",
		"broccoli", "cauliflower", "avocado", "banana", "mango", "lemon",
		"lime", "cilantro", "basil", "parsley", "mint", "cucumber", "mushroom",
		"corn", "pea", "cabbage", "asparagus", "pineapple", "watermelon",
		"kiwi", "papaya", "squash", "zucchini", "scallion", "leek", "shallot",
	}},
	{Value: CategoryProtein, Keywords: []string{
		"chicken", "beef", "pork", "lamb", "turkey", "salmon", "tuna", "fish",
		"shrimp", "tofu", "tempeh", "egg",
	}},
	{Value: CategoryGrain, Keywords: []string{
		"rice", "quinoa", "oat", "flour", "pasta", "noodle", "lentil",
		"chickpea", "bean", "barley", "couscous", "bread",
	}},
	{Value: CategoryDairy, Keywords: []string{
		"milk", "yogurt", "butter", "cheese", "cream", "ghee", "paneer",
	}},
	{Value: CategorySpice, Keywords: []string{
		"cumin", "turmeric", "coriander", "cardamom", "cinnamon", "clove",
		"pepper", "paprika", "chili", "masala", "saffron", "fenugreek",
		"mustard seed", "bay leaf", "oregano", "thyme", "curry",
	}},
	{Value: CategoryPantry, Keywords: []string{
		"oil", "vinegar", "salt", "sugar", "honey", "soy sauce", "tahini",
		"stock", "broth", "coconut milk",
	}},
}

// CategoryOf returns the category for a canonical ingredient name. Unknown
// ingredients fall back to pantry.
func CategoryOf(name string) string {
	if cat, ok := MatchFirst(categoryRules, name); ok {
		return cat
	}
	return CategoryPantry
}

// Shopping intents inferred from free-text prompt cues.
const (
	IntentCookSoon = "cook_soon"
	IntentStockUp  = "stock_up"
)

// intentRules maps prompt cues to intent. Cook-soon cues take precedence.
var intentRules = []KeywordRule{
	{Value: IntentCookSoon, Keywords: []string{
		"tonight", "today", "this week", "this evening", "dinner", "asap",
		"quick", "weeknight",
	}},
	{Value: IntentStockUp, Keywords: []string{
		"restock", "stock up", "bulk", "pantry", "staples", "monthly",
	}},
}

// InferIntent returns the shopping intent for a prompt, or "" when no cue
// matches. An unknown intent scores delivery as neutral.
func InferIntent(prompt string) string {
	intent, _ := MatchFirst(intentRules, prompt)
	return intent
}

// PackagingRule maps a packaging kind to its score contribution.
type PackagingRule struct {
	Name     string
	Points   int
	Keywords []string
}

// packagingRules is ordered most-specific first; clamshell appears before
// the generic bag/carton bucket because titles like "clamshell box" exist.
var packagingRules = []PackagingRule{
	{Name: "clamshell", Points: -4, Keywords: []string{"clamshell", "foam", "styrofoam"}},
	{Name: "loose", Points: 6, Keywords: []string{"loose", "paper"}},
	{Name: "glass", Points: 4, Keywords: []string{"glass", "jar"}},
	{Name: "bag", Points: 2, Keywords: []string{"bag", "carton", "box", "pouch"}},
	{Name: "can", Points: 1, Keywords: []string{"can", "tin"}},
}

// PackagingPoints scores packaging, preferring the structured packaging field
// over keyword inference from the title. Title keywords match on word
// boundaries so "can" never matches "Pecans". Unknown packaging scores 0.
func PackagingPoints(structured, title string) int {
	if structured != "" {
		s := strings.ToLower(structured)
		for _, rule := range packagingRules {
			if rule.Name == s {
				return rule.Points
			}
			for _, kw := range rule.Keywords {
				if s == kw {
					return rule.Points
				}
			}
		}
		return 0
	}
	t := strings.ToLower(title)
	for _, rule := range packagingRules {
		for _, kw := range rule.Keywords {
			if containsWord(t, kw) {
				return rule.Points
			}
		}
	}
	return 0
}
