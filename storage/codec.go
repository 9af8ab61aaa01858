package storage

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/aguxez/babyfood/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeEntries serializes the full entry sequence. Photos end up base64
// encoded.
func EncodeEntries(entries []models.FoodEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	return data, nil
}

// DecodeEntries is the inverse of EncodeEntries. Unknown fields are ignored;
// records that break an entry invariant fail the whole blob.
func DecodeEntries(data []byte) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("decoding entries: not a list")
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("decoding entry %d: %w", i, err)
		}
		id := e.ID.String()
		if seen[id] {
			return nil, fmt.Errorf("decoding entry %d: duplicate id %s", i, id)
		}
		seen[id] = true
	}
	return entries, nil
}
