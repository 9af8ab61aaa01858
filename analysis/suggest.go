package analysis

import (
	"github.com/aguxez/babyfood/models"
)

const (
	maxSuggestions         = 4
	missingCategoryLimit   = 3
	favouriteCategoryLimit = 2
)

// Catalog is the read side of the food library used for suggestions.
type Catalog interface {
	ByCategory(category models.Category) []models.FoodLibraryItem
}

// SuggestFoods picks library foods to try next. Categories that were never
// logged come first, one food each; once every category has been tried it
// falls back to more of the most consumed category.
func SuggestFoods(entries []models.FoodEntry, report models.DietAnalysis, catalog Catalog) []models.FoodLibraryItem {
	used := make(map[models.Category]bool, len(models.Categories))
	for _, e := range entries {
		used[e.Category] = true
	}

	var missing []models.Category
	for _, c := range models.Categories {
		if !used[c] {
			missing = append(missing, c)
		}
	}

	var suggestions []models.FoodLibraryItem
	for i, c := range missing {
		if i == missingCategoryLimit {
			break
		}
		if foods := catalog.ByCategory(c); len(foods) > 0 {
			suggestions = append(suggestions, foods[0])
		}
	}

	if len(missing) == 0 {
		if top, ok := MostConsumed(report.CategoryBreakdown); ok {
			foods := catalog.ByCategory(top)
			if len(foods) > favouriteCategoryLimit {
				foods = foods[:favouriteCategoryLimit]
			}
			suggestions = append(suggestions, foods...)
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
