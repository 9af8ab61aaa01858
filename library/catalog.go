package library

import (
	"strings"

	"github.com/aguxez/babyfood/models"
)

// Catalog is a read-only list of predefined foods. It is built once and never
// changed afterwards, so it is safe to share.
type Catalog struct {
	items []models.FoodLibraryItem
}

func New(items ...models.FoodLibraryItem) *Catalog {
	return &Catalog{items: append([]models.FoodLibraryItem(nil), items...)}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultItems...)
}

// Extend returns a new catalog with extra appended after the receiver's items.
func (c *Catalog) Extend(extra ...models.FoodLibraryItem) *Catalog {
	return New(append(c.Items(), extra...)...)
}

func (c *Catalog) Items() []models.FoodLibraryItem {
	return append([]models.FoodLibraryItem(nil), c.items...)
}

func (c *Catalog) Len() int { return len(c.items) }

func (c *Catalog) ForAge(age models.AgeRange) []models.FoodLibraryItem {
	return c.filter(func(item models.FoodLibraryItem) bool {
		return item.RecommendedAge == age
	})
}

func (c *Catalog) ByCategory(category models.Category) []models.FoodLibraryItem {
	return c.filter(func(item models.FoodLibraryItem) bool {
		return item.Category == category
	})
}

// Search matches query case-insensitively against name and description.
func (c *Catalog) Search(query string) []models.FoodLibraryItem {
	q := strings.ToLower(query)
	return c.filter(func(item models.FoodLibraryItem) bool {
		return strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q)
	})
}

func (c *Catalog) filter(keep func(models.FoodLibraryItem) bool) []models.FoodLibraryItem {
	var out []models.FoodLibraryItem
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

var defaultItems = []models.FoodLibraryItem{
	// 6-8 months
	{Name: "Rice Cereal", Category: models.Grains, RecommendedAge: models.SixToEightMonths, Description: "Iron-fortified rice cereal mixed with breast milk or formula", NutritionInfo: "Iron, B vitamins"},
	{Name: "Apple Puree", Category: models.Fruits, RecommendedAge: models.SixToEightMonths, Description: "Smooth apple puree, great first fruit", NutritionInfo: "Vitamin C, fiber"},
	{Name: "Banana Puree", Category: models.Fruits, RecommendedAge: models.SixToEightMonths, Description: "Naturally sweet and easy to digest", NutritionInfo: "Potassium, vitamin B6"},
	{Name: "Carrot Puree", Category: models.Vegetables, RecommendedAge: models.SixToEightMonths, Description: "Sweet and nutritious first vegetable", NutritionInfo: "Vitamin A, beta-carotene"},
	{Name: "Sweet Potato Puree", Category: models.Vegetables, RecommendedAge: models.SixToEightMonths, Description: "Naturally sweet and rich in nutrients", NutritionInfo: "Vitamin A, fiber"},
	{Name: "Avocado Puree", Category: models.Fruits, RecommendedAge: models.SixToEightMonths, Description: "Healthy fats and creamy texture", NutritionInfo: "Healthy fats, vitamin E"},

	// 8-10 months
	{Name: "Chicken Puree", Category: models.Proteins, RecommendedAge: models.EightToTenMonths, Description: "Lean protein source for growing babies", NutritionInfo: "Protein, iron, zinc"},
	{Name: "Salmon Puree", Category: models.Proteins, RecommendedAge: models.EightToTenMonths, Description: "Omega-3 fatty acids for brain development", NutritionInfo: "Omega-3, protein, vitamin D"},
	{Name: "Egg Yolk", Category: models.Proteins, RecommendedAge: models.EightToTenMonths, Description: "Rich in choline and healthy fats", NutritionInfo: "Choline, vitamin D, healthy fats"},
	{Name: "Pea Puree", Category: models.Vegetables, RecommendedAge: models.EightToTenMonths, Description: "Good source of protein and fiber", NutritionInfo: "Protein, fiber, vitamin C"},
	{Name: "Pear Puree", Category: models.Fruits, RecommendedAge: models.EightToTenMonths, Description: "Gentle on tummy and naturally sweet", NutritionInfo: "Fiber, vitamin C"},
	{Name: "Oatmeal", Category: models.Grains, RecommendedAge: models.EightToTenMonths, Description: "Whole grain goodness for energy", NutritionInfo: "Fiber, iron, B vitamins"},

	// 10-12 months
	{Name: "Soft Cooked Vegetables", Category: models.Vegetables, RecommendedAge: models.TenToTwelveMonths, Description: "Small pieces of soft-cooked vegetables", NutritionInfo: "Various vitamins and minerals"},
	{Name: "Finger Foods", Category: models.Other, RecommendedAge: models.TenToTwelveMonths, Description: "Small, soft pieces for self-feeding", NutritionInfo: "Develops motor skills"},
	{Name: "Yogurt", Category: models.Dairy, RecommendedAge: models.TenToTwelveMonths, Description: "Plain yogurt with live cultures", NutritionInfo: "Calcium, protein, probiotics"},
	{Name: "Cheese", Category: models.Dairy, RecommendedAge: models.TenToTwelveMonths, Description: "Small pieces of soft cheese", NutritionInfo: "Calcium, protein"},
	{Name: "Whole Grain Bread", Category: models.Grains, RecommendedAge: models.TenToTwelveMonths, Description: "Small pieces of soft whole grain bread", NutritionInfo: "Fiber, B vitamins"},
	{Name: "Soft Fruits", Category: models.Fruits, RecommendedAge: models.TenToTwelveMonths, Description: "Small pieces of soft fruits", NutritionInfo: "Various vitamins and antioxidants"},
}
