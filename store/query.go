package store

import (
	"sort"
	"time"

	"github.com/aguxez/babyfood/models"
)

// Entries returns a copy of all entries in insertion order.
func (s *EntryStore) Entries() []models.FoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Analysis returns the report computed after the last change.
func (s *EntryStore) Analysis() models.DietAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneReport(s.report)
}

// EntriesOn returns the entries logged on the same calendar day as date.
func (s *EntryStore) EntriesOn(date time.Time) []models.FoodEntry {
	y, m, d := date.In(s.loc).Date()
	return s.filter(func(e models.FoodEntry) bool {
		ey, em, ed := e.Timestamp.In(s.loc).Date()
		return ey == y && em == m && ed == d
	})
}

// EntriesBetween returns entries with start <= timestamp <= end.
func (s *EntryStore) EntriesBetween(start, end time.Time) []models.FoodEntry {
	return s.filter(func(e models.FoodEntry) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(end)
	})
}

func (s *EntryStore) EntriesByCategory(category models.Category) []models.FoodEntry {
	return s.filter(func(e models.FoodEntry) bool {
		return e.Category == category
	})
}

func (s *EntryStore) TotalAmountOn(date time.Time) float64 {
	var total float64
	for _, e := range s.EntriesOn(date) {
		total += e.Amount
	}
	return total
}

// CategoryBreakdownOn counts the entries per category on date. Categories
// without entries are left out.
func (s *EntryStore) CategoryBreakdownOn(date time.Time) map[models.Category]int {
	breakdown := map[models.Category]int{}
	for _, e := range s.EntriesOn(date) {
		breakdown[e.Category]++
	}
	return breakdown
}

// DaysWithEntries returns, in ascending order, the days of date's month that
// have at least one entry.
func (s *EntryStore) DaysWithEntries(date time.Time) []int {
	y, m, _ := date.In(s.loc).Date()

	s.mu.RLock()
	seen := map[int]bool{}
	for _, e := range s.entries {
		ey, em, ed := e.Timestamp.In(s.loc).Date()
		if ey == y && em == m {
			seen[ed] = true
		}
	}
	s.mu.RUnlock()

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

func (s *EntryStore) filter(keep func(models.FoodEntry) bool) []models.FoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FoodEntry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}
