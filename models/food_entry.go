package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidEntry is returned when an entry breaks one of the FoodEntry invariants.
var ErrInvalidEntry = errors.New("invalid food entry")

type Category string

const (
	Fruits     Category = "Fruits"
	Vegetables Category = "Vegetables"
	Grains     Category = "Grains"
	Proteins   Category = "Proteins"
	Dairy      Category = "Dairy"
	Other      Category = "Other"
)

// Categories lists every category in canonical order.
var Categories = []Category{Fruits, Vegetables, Grains, Proteins, Dairy, Other}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type AmountUnit string

const (
	Ounces      AmountUnit = "ounces"
	Grams       AmountUnit = "grams"
	Milliliters AmountUnit = "milliliters"
	Tablespoons AmountUnit = "tablespoons"
	Teaspoons   AmountUnit = "teaspoons"
	Cups        AmountUnit = "cups"
	Pieces      AmountUnit = "pieces"
)

var AmountUnits = []AmountUnit{Ounces, Grams, Milliliters, Tablespoons, Teaspoons, Cups, Pieces}

func (u AmountUnit) Valid() bool {
	for _, known := range AmountUnits {
		if u == known {
			return true
		}
	}
	return false
}

func (u AmountUnit) String() string { return string(u) }

func ParseAmountUnit(s string) (AmountUnit, error) {
	s = strings.TrimSpace(s)
	for _, u := range AmountUnits {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown amount unit %q", s)
}

func (u *AmountUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseAmountUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// FoodEntry is one logged feeding.
type FoodEntry struct {
	ID          uuid.UUID  `json:"id"`
	Timestamp   time.Time  `json:"timestamp"`
	FoodName    string     `json:"foodName"`
	Category    Category   `json:"category"`
	Amount      float64    `json:"amount"`
	AmountUnit  AmountUnit `json:"amountUnit"`
	FromLibrary bool       `json:"fromLibrary"`
	Photo       []byte     `json:"photo,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// NewFoodEntry creates an entry with a fresh id.
func NewFoodEntry(ts time.Time, name string, category Category, amount float64, unit AmountUnit) FoodEntry {
	return FoodEntry{
		ID:         uuid.New(),
		Timestamp:  ts,
		FoodName:   name,
		Category:   category,
		Amount:     amount,
		AmountUnit: unit,
	}
}

// WithNotes returns a copy of e carrying the given notes, or none when notes is blank.
func (e FoodEntry) WithNotes(notes string) FoodEntry {
	if strings.TrimSpace(notes) == "" {
		e.Notes = nil
		return e
	}
	e.Notes = &notes
	return e
}

// WithPhoto returns a copy of e carrying the given photo bytes.
func (e FoodEntry) WithPhoto(photo []byte) FoodEntry {
	if len(photo) == 0 {
		e.Photo = nil
		return e
	}
	e.Photo = photo
	return e
}

// Normalize drops blank notes and an empty photo.
func (e FoodEntry) Normalize() FoodEntry {
	if e.Notes != nil {
		e = e.WithNotes(*e.Notes)
	}
	return e.WithPhoto(e.Photo)
}

func (e FoodEntry) Validate() error {
	switch {
	case strings.TrimSpace(e.FoodName) == "":
		return fmt.Errorf("%w: food name is empty", ErrInvalidEntry)
	case math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0):
		return fmt.Errorf("%w: amount is not a finite number", ErrInvalidEntry)
	case e.Amount < 0:
		return fmt.Errorf("%w: amount %v is negative", ErrInvalidEntry, e.Amount)
	case !e.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, e.Category)
	case !e.AmountUnit.Valid():
		return fmt.Errorf("%w: unknown amount unit %q", ErrInvalidEntry, e.AmountUnit)
	}
	return nil
}

// Clone returns a deep copy so callers can't reach into store-owned slices.
func (e FoodEntry) Clone() FoodEntry {
	if e.Photo != nil {
		e.Photo = append([]byte(nil), e.Photo...)
	}
	if e.Notes != nil {
		n := *e.Notes
		e.Notes = &n
	}
	return e
}
