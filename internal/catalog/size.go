package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical size-unit families.
const (
	UnitWeight = "weight"
	UnitVolume = "volume"
	UnitCount  = "count"
)

// ParsedSize is a size string resolved to ounces (weight) or fluid ounces
// (volume).
type ParsedSize struct {
	Ounces float64
	Family string
}

var sizePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(fl\s*oz|ounces?|oz|pounds?|lbs?|kilograms?|kg|grams?|g|gallons?|gal|liters?|litres?|l|milliliters?|ml|count|ct|each|dozen)\b`)

// ouncesPerUnit converts a recognized unit token to ounces (or fluid ounces
// for volume units).
func ouncesPerUnit(unit string) (float64, string) {
	switch unit {
	case "oz", "ounce", "ounces":
		return 1, UnitWeight
	case "lb", "lbs", "pound", "pounds":
		return 16, UnitWeight
	case "g", "gram", "grams":
		return 0.03527, UnitWeight
	case "kg", "kilogram", "kilograms":
		return 35.274, UnitWeight
	case "fl oz", "floz":
		return 1, UnitVolume
	case "ml", "milliliter", "milliliters":
		return 0.033814, UnitVolume
	case "l", "liter", "liters", "litre", "litres":
		return 33.814, UnitVolume
	case "gal", "gallon", "gallons":
		return 128, UnitVolume
	case "count", "ct", "each", "dozen":
		return 0, UnitCount
	}
	return 0, ""
}

// ParseSize resolves a free-text size string ("10 lb bag", "2.5 oz",
// "1 gallon") to ounces. Count-based and unrecognized sizes return ok=false;
// callers treat that as not-evaluable and pass the candidate through.
func ParseSize(size string) (ParsedSize, bool) {
	s := strings.ToLower(strings.TrimSpace(size))
	if s == "" {
		return ParsedSize{}, false
	}
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return ParsedSize{}, false
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil || qty <= 0 {
		return ParsedSize{}, false
	}
	unit := strings.Join(strings.Fields(m[2]), " ")
	factor, family := ouncesPerUnit(unit)
	if family == "" || family == UnitCount {
		return ParsedSize{}, false
	}
	return ParsedSize{Ounces: qty * factor, Family: family}, true
}

// ExpectedUnitPriceUnit returns the unit a candidate's declared unit price
// must be denominated in, given its size family: weight sizes report per
// ounce, volume sizes per fluid ounce. Empty means no expectation.
func ExpectedUnitPriceUnit(family string) string {
	switch family {
	case UnitWeight:
		return "oz"
	case UnitVolume:
		return "fl_oz"
	}
	return ""
}
