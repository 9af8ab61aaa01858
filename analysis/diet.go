package analysis

import (
	"fmt"
	"time"

	"github.com/aguxez/babyfood/models"
)

const (
	StartAddingRecommendation = "Start adding food entries to get personalized recommendations!"

	MoreVegetablesRecommendation = "Try adding more vegetables to ensure balanced nutrition"
	MoreFruitsRecommendation     = "Include more fruits for vitamins and natural sweetness"
	MoreProteinRecommendation    = "Add protein sources for healthy growth and development"
	LargerPortionsRecommendation = "Consider increasing portion sizes gradually"

	GreatVarietyInsight = "Great variety in food categories!"
	MoreVarietyInsight  = "Try introducing foods from different categories"
)

// Rule thresholds.
const (
	minVegetables     = 2
	minFruits         = 2
	minProteins       = 1
	minDailyIntake    = 50.0
	varietyCategories = 4
	averageWindowDays = 7
)

// Analyzer evaluates the diet rules against an entry list. The zero value
// uses Sunday as the first day of the week and the wall clock as "now".
type Analyzer struct {
	WeekStart time.Weekday
	Now       func() time.Time
}

// Analyze runs the rules with the week starting on Sunday.
func Analyze(entries []models.FoodEntry, now time.Time) models.DietAnalysis {
	return Analyzer{Now: func() time.Time { return now }}.Analyze(entries)
}

func (a Analyzer) Analyze(entries []models.FoodEntry) models.DietAnalysis {
	if len(entries) == 0 {
		return models.DietAnalysis{
			TotalEntries:      0,
			CategoryBreakdown: map[models.Category]int{},
			Recommendations:   []string{StartAddingRecommendation},
			Insights:          []string{},
		}
	}

	categoryCount := map[models.Category]int{}
	var totalAmount float64
	for _, e := range entries {
		categoryCount[e.Category]++
		totalAmount += e.Amount
	}

	// The numerator covers the whole history while the divisor is a fixed
	// week; only the presence of an entry this week gates the value.
	var averageDailyIntake float64
	weekStart, weekEnd := WeekBounds(a.now(), a.WeekStart)
	for _, e := range entries {
		if !e.Timestamp.Before(weekStart) && e.Timestamp.Before(weekEnd) {
			averageDailyIntake = totalAmount / averageWindowDays
			break
		}
	}

	recommendations := []string{}
	if categoryCount[models.Vegetables] < minVegetables {
		recommendations = append(recommendations, MoreVegetablesRecommendation)
	}
	if categoryCount[models.Fruits] < minFruits {
		recommendations = append(recommendations, MoreFruitsRecommendation)
	}
	if categoryCount[models.Proteins] < minProteins {
		recommendations = append(recommendations, MoreProteinRecommendation)
	}
	if averageDailyIntake < minDailyIntake {
		recommendations = append(recommendations, LargerPortionsRecommendation)
	}

	insights := []string{}
	if top, ok := MostConsumed(categoryCount); ok {
		insights = append(insights, fmt.Sprintf("Most consumed category: %s", top))
	}
	if len(categoryCount) >= varietyCategories {
		insights = append(insights, GreatVarietyInsight)
	} else {
		insights = append(insights, MoreVarietyInsight)
	}

	return models.DietAnalysis{
		TotalEntries:       len(entries),
		CategoryBreakdown:  categoryCount,
		AverageDailyIntake: averageDailyIntake,
		Recommendations:    recommendations,
		Insights:           insights,
	}
}

func (a Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// MostConsumed returns the category with the highest count. Ties go to the
// category that comes first in models.Categories.
func MostConsumed(breakdown map[models.Category]int) (models.Category, bool) {
	var (
		top   models.Category
		count int
	)
	for _, c := range models.Categories {
		if n := breakdown[c]; n > count {
			top, count = c, n
		}
	}
	return top, count > 0
}

// WeekBounds returns the half-open calendar week [start, end) containing t,
// in t's location.
func WeekBounds(t time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}
