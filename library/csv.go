package library

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aguxez/babyfood/models"
)

var csvHeader = []string{"Name", "Category", "Recommended Age", "Description", "Nutritional Info"}

// ParseCSV reads extra library items from a CSV file.
func ParseCSV(path string) ([]models.FoodLibraryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening library file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func ReadCSV(src io.Reader) ([]models.FoodLibraryItem, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("invalid header length: expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, h := range header {
		if h != csvHeader[i] {
			return nil, fmt.Errorf("invalid header: expected %s at position %d, got %s", csvHeader[i], i, h)
		}
	}

	var items []models.FoodLibraryItem
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("empty food name in record: %v", record)
		}

		category, err := models.ParseCategory(record[1])
		if err != nil {
			return nil, fmt.Errorf("parsing category for %s: %w", name, err)
		}

		age, err := models.ParseAgeRange(record[2])
		if err != nil {
			return nil, fmt.Errorf("parsing age range for %s: %w", name, err)
		}

		items = append(items, models.FoodLibraryItem{
			Name:           name,
			Category:       category,
			RecommendedAge: age,
			Description:    strings.TrimSpace(record[3]),
			NutritionInfo:  strings.TrimSpace(record[4]),
		})
	}

	return items, nil
}
