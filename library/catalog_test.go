package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/babyfood/models"
)

func names(items []models.FoodLibraryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 18, c.Len())

	for _, age := range models.AgeRanges {
		assert.Len(t, c.ForAge(age), 6, "age range %s", age)
	}
	assert.Empty(t, c.ForAge("2-4 years"))
}

func TestByCategory(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Chicken Puree", "Salmon Puree", "Egg Yolk"}, names(c.ByCategory(models.Proteins)))
	assert.Equal(t, []string{"Yogurt", "Cheese"}, names(c.ByCategory(models.Dairy)))
	assert.Equal(t, []string{"Finger Foods"}, names(c.ByCategory(models.Other)))
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		query string
		want  []string
	}{
		{"puree", []string{"Apple Puree", "Banana Puree", "Carrot Puree", "Sweet Potato Puree", "Avocado Puree", "Chicken Puree", "Salmon Puree", "Pea Puree", "Pear Puree"}},
		{"CHEESE", []string{"Cheese"}},
		// matches description only
		{"self-feeding", []string{"Finger Foods"}},
		{"pizza", nil},
	}
	for _, tt := range tests {
		got := c.Search(tt.query)
		if tt.want == nil {
			assert.Empty(t, got, "query %q", tt.query)
			continue
		}
		assert.Equal(t, tt.want, names(got), "query %q", tt.query)
	}

	assert.Len(t, c.Search(""), c.Len())
}

func TestItemsIsACopy(t *testing.T) {
	c := Default()
	items := c.Items()
	items[0].Name = "changed"

	assert.Equal(t, "Rice Cereal", c.Items()[0].Name)
}

func TestExtend(t *testing.T) {
	base := Default()
	extra := models.FoodLibraryItem{Name: "Mango Puree", Category: models.Fruits, RecommendedAge: models.SixToEightMonths}

	ext := base.Extend(extra)
	assert.Equal(t, 19, ext.Len())
	assert.Equal(t, 18, base.Len())
	assert.Equal(t, "Mango Puree", ext.Items()[18].Name)
}

func TestReadCSV(t *testing.T) {
	src := `Name,Category,Recommended Age,Description,Nutritional Info
Mango Puree,fruits,6-8 months,Tropical and sweet,Vitamin A
Lentils,Proteins,10-12 months,Soft cooked red lentils,
`
	items, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, models.FoodLibraryItem{
		Name:           "Mango Puree",
		Category:       models.Fruits,
		RecommendedAge: models.SixToEightMonths,
		Description:    "Tropical and sweet",
		NutritionInfo:  "Vitamin A",
	}, items[0])
	assert.Equal(t, models.Proteins, items[1].Category)
	assert.Empty(t, items[1].NutritionInfo)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"bad header", "Food Name\nApple\n"},
		{"wrong column name", "Name,Kind,Recommended Age,Description,Nutritional Info\n"},
		{"unknown category", "Name,Category,Recommended Age,Description,Nutritional Info\nCake,Sweets,6-8 months,x,y\n"},
		{"unknown age", "Name,Category,Recommended Age,Description,Nutritional Info\nApple,Fruits,2 years,x,y\n"},
		{"missing name", "Name,Category,Recommended Age,Description,Nutritional Info\n,Fruits,6-8 months,x,y\n"},
		{"short record", "Name,Category,Recommended Age,Description,Nutritional Info\nApple,Fruits\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestParseCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Category,Recommended Age,Description,Nutritional Info\nTofu,proteins,8-10 months,Soft cubes,Protein\n"), 0o644))

	items, err := ParseCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tofu"}, names(items))

	_, err = ParseCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
