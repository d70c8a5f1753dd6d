package farm

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONSource loads an inventory from a JSON export: either a bare array
// of applications or a full inventory object with a farm name.
type JSONSource struct {
	farm string
	path string
}

func NewJSONSource(farm, path string) *JSONSource {
	return &JSONSource{farm: farm, path: path}
}

func (s *JSONSource) Farm() string {
	return s.farm
}

func (s *JSONSource) Load() (*Inventory, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("farm: reading %s: %w", s.path, err)
	}

	// Bare array form first; the full object form is what SnapshotStore
	// writes back out.
	var apps []PublishedApp
	if err := json.Unmarshal(data, &apps); err == nil {
		return &Inventory{Farm: s.farm, Apps: apps}, nil
	}

	var inv Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("farm: parsing %s: %w", s.path, err)
	}
	if inv.Farm == "" {
		inv.Farm = s.farm
	}
	return &inv, nil
}
