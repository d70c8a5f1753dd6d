// Package farm models published-application inventories as exported by
// a delivery farm's admin tooling.
package farm

import "farmdiff/relation"

// PublishedApp is one application as reported by a farm. The farm
// exports are flat; anything beyond these fields is carried through the
// join as extra record fields by callers that need it.
type PublishedApp struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Folder      string `json:"folder,omitempty"`
	Description string `json:"description,omitempty"`
	CommandLine string `json:"commandLine,omitempty"`
	WorkingDir  string `json:"workingDir,omitempty"`
}

// Record converts the app to an open record for joining. Empty optional
// fields are left out entirely so they read as absent, not as empty
// strings.
func (a PublishedApp) Record() relation.Record {
	rec := relation.Record{
		"Name":    relation.String(a.Name),
		"Enabled": relation.Bool(a.Enabled),
	}
	for field, v := range map[string]string{
		"Folder":      a.Folder,
		"Description": a.Description,
		"CommandLine": a.CommandLine,
		"WorkingDir":  a.WorkingDir,
	} {
		if v != "" {
			rec.Set(field, relation.String(v))
		}
	}
	return rec
}

// Inventory is one farm's application list.
type Inventory struct {
	Farm string         `json:"farm"`
	Apps []PublishedApp `json:"apps"`
}

// Records converts the inventory to a record sequence.
func (inv *Inventory) Records() []relation.Record {
	recs := make([]relation.Record, len(inv.Apps))
	for i, a := range inv.Apps {
		recs[i] = a.Record()
	}
	return recs
}
