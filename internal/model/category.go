package model

import "strings"

// Category classifies a transaction. The set is closed; anything a provider
// reports outside it must be normalized to CategoryOther before it reaches
// the query layer.
type Category string

const (
	CategoryGroceries     Category = "groceries"
	CategoryFood          Category = "food"
	CategoryShopping      Category = "shopping"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryHousing       Category = "housing"
	CategoryTravel        Category = "travel"
	CategoryIncome        Category = "income"
	CategoryTransfer      Category = "transfer"
	CategoryOther         Category = "other"
)

// Categories returns every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryFood,
		CategoryShopping,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryHousing,
		CategoryTravel,
		CategoryIncome,
		CategoryTransfer,
		CategoryOther,
	}
}

// ParseCategory matches a free-form string against the closed set,
// case-insensitively. It reports false for anything outside the set rather
// than coercing, so callers can treat unknown values as match-nothing.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}
