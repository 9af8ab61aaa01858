package models

import (
	"fmt"
	"strings"
)

// AgeRange is one of the fixed recommended-age buckets of the food library.
type AgeRange string

const (
	SixToEightMonths  AgeRange = "6-8 months"
	EightToTenMonths  AgeRange = "8-10 months"
	TenToTwelveMonths AgeRange = "10-12 months"
)

var AgeRanges = []AgeRange{SixToEightMonths, EightToTenMonths, TenToTwelveMonths}

func ParseAgeRange(s string) (AgeRange, error) {
	s = strings.TrimSpace(s)
	for _, r := range AgeRanges {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown age range %q", s)
}

// FoodLibraryItem is a predefined food suggestion. Library items are reference
// data and are never edited by the user.
type FoodLibraryItem struct {
	Name           string
	Category       Category
	RecommendedAge AgeRange
	Description    string
	NutritionInfo  string // optional
}
