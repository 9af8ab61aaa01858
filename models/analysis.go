package models

// DietAnalysis is the report derived from the full entry list. It is rebuilt
// from scratch on every change and never persisted.
type DietAnalysis struct {
	TotalEntries       int
	CategoryBreakdown  map[Category]int
	AverageDailyIntake float64
	Recommendations    []string
	Insights           []string
}
