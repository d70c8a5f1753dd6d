package farm

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source produces one farm's inventory. Implementations read exported
// snapshot files; the live admin APIs sit behind the same interface in
// the environments that have them.
type Source interface {
	// Farm returns the farm name this source reports for.
	Farm() string

	// Load reads the full inventory. The returned inventory is owned by
	// the caller.
	Load() (*Inventory, error)
}

// FromFile picks a source implementation by file extension (.json or
// .csv).
func FromFile(farmName, path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONSource(farmName, path), nil
	case ".csv":
		return NewCSVSource(farmName, path), nil
	}
	return nil, fmt.Errorf("farm: unsupported snapshot format %q", filepath.Ext(path))
}
