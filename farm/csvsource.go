package farm

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVSource loads an inventory from a header-driven CSV export. The
// Name column is required; all other columns are optional and matched
// case-insensitively.
type CSVSource struct {
	farm string
	path string
}

func NewCSVSource(farm, path string) *CSVSource {
	return &CSVSource{farm: farm, path: path}
}

func (s *CSVSource) Farm() string {
	return s.farm
}

func (s *CSVSource) Load() (*Inventory, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("farm: opening %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("farm: parsing %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return &Inventory{Farm: s.farm}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("farm: %s has no Name column", s.path)
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	apps := make([]PublishedApp, 0, len(rows)-1)
	for _, row := range rows[1:] {
		apps = append(apps, PublishedApp{
			Name:        cell(row, "name"),
			Enabled:     parseEnabled(cell(row, "enabled")),
			Folder:      cell(row, "folder"),
			Description: cell(row, "description"),
			CommandLine: cell(row, "commandline"),
			WorkingDir:  cell(row, "workingdir"),
		})
	}
	return &Inventory{Farm: s.farm, Apps: apps}, nil
}

// parseEnabled accepts the spellings the various farm exports use.
func parseEnabled(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "enabled":
		return true
	}
	return false
}
