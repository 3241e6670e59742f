package models

import "strings"

// Category classifies an incident into one of the fixed municipal buckets.
type Category string

const (
	CategoryInfrastructure Category = "Infrastructure"
	CategorySecurity       Category = "Security"
	CategoryWater          Category = "Water"
	CategoryEnergy         Category = "Energy"
	CategoryOther          Category = "Other"
)

// Categories is the canonical taxonomy in report enumeration order. The
// normalizer, aggregator and compiler all consume this single list.
var Categories = []Category{
	CategoryInfrastructure,
	CategorySecurity,
	CategoryWater,
	CategoryEnergy,
	CategoryOther,
}

// ParseCategory maps a raw category value onto the canonical taxonomy.
// Anything unrecognized folds into Other; it never fails.
func ParseCategory(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	for _, cat := range Categories {
		if strings.EqualFold(trimmed, string(cat)) {
			return cat
		}
	}
	return CategoryOther
}
