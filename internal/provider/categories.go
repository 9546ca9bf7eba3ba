package provider

import (
	"strings"

	"github.com/finchat-dev/finchat/internal/model"
)

// categoryMap translates the provider's personal-finance category taxonomy
// into the closed internal set. Keys are matched against the primary segment
// of the provider category, upper-cased.
var categoryMap = map[string]model.Category{
	"INCOME":                    model.CategoryIncome,
	"TRANSFER_IN":               model.CategoryTransfer,
	"TRANSFER_OUT":              model.CategoryTransfer,
	"LOAN_PAYMENTS":             model.CategoryOther,
	"BANK_FEES":                 model.CategoryOther,
	"ENTERTAINMENT":             model.CategoryEntertainment,
	"FOOD_AND_DRINK":            model.CategoryFood,
	"GROCERIES":                 model.CategoryGroceries,
	"GENERAL_MERCHANDISE":       model.CategoryShopping,
	"HOME_IMPROVEMENT":          model.CategoryHousing,
	"RENT_AND_UTILITIES":        model.CategoryUtilities,
	"MORTGAGE":                  model.CategoryHousing,
	"MEDICAL":                   model.CategoryHealth,
	"PERSONAL_CARE":             model.CategoryHealth,
	"GENERAL_SERVICES":          model.CategoryOther,
	"GOVERNMENT_AND_NON_PROFIT": model.CategoryOther,
	"TRANSPORTATION":            model.CategoryTransport,
	"TRAVEL":                    model.CategoryTravel,
}

// MapCategory normalizes a raw provider category into the internal enum.
// The function is total: anything unrecognized becomes CategoryOther.
func MapCategory(providerCategory string) model.Category {
	key := strings.ToUpper(strings.TrimSpace(providerCategory))
	if key == "" {
		return model.CategoryOther
	}

	// Grocery subcategories beat the FOOD_AND_DRINK primary.
	if strings.Contains(key, "GROCERIES") {
		return model.CategoryGroceries
	}
	if c, ok := categoryMap[key]; ok {
		return c
	}

	// Detailed categories arrive as PRIMARY_DETAIL; retry on the mapped
	// primary prefix. No mapped key is a prefix of another.
	for prefix, c := range categoryMap {
		if strings.HasPrefix(key, prefix) {
			return c
		}
	}
	return model.CategoryOther
}
