// Package reconcile merges two farm inventories by application name and
// derives which administrative actions apply to each application.
package reconcile

import (
	"fmt"
	"sort"

	"farmdiff/farm"
	"farmdiff/relation"
)

// State classifies one application's presence across the two farms.
type State int

const (
	InBoth State = iota
	OnlyInOld
	OnlyInNew
)

func (s State) String() string {
	switch s {
	case OnlyInOld:
		return "only in old"
	case OnlyInNew:
		return "only in new"
	default:
		return "in both"
	}
}

// Actions are the administrative operations available for one row.
// They mirror the per-selection enablement of the original console:
// enable/disable apply to a side where the application exists with the
// opposite flag, and Create applies when the application has not been
// migrated to the new farm yet. Executing the actions is out of scope;
// only their availability is derived here.
type Actions struct {
	EnableOld  bool
	DisableOld bool
	EnableNew  bool
	DisableNew bool
	Create     bool
}

// Row is one reconciled application.
type Row struct {
	Name       string
	State      State
	OldEnabled *bool // nil when absent from the old farm
	NewEnabled *bool
	Actions    Actions
}

// Report is the outcome of one reconciliation run.
type Report struct {
	OldFarm string
	NewFarm string
	Rows    []Row

	// Joined is the raw join result, sorted by application name, for
	// callers that want the full projected columns.
	Joined *relation.Result
}

// Reconciler joins two inventories by application name.
type Reconciler struct {
	// Mode is the join mode; the default FullOuter shows applications
	// missing from either farm.
	Mode relation.Mode

	// NewSuffix renames the new farm's columns to avoid collisions.
	NewSuffix string
}

// New returns a Reconciler with the default configuration.
func New() *Reconciler {
	return &Reconciler{Mode: relation.FullOuter, NewSuffix: "_new"}
}

// Run reconciles the two inventories. The join output order is not
// deterministic, so the result is always re-sorted by application name
// before rows are derived.
func (r *Reconciler) Run(oldInv, newInv *farm.Inventory) (*Report, error) {
	suffix := r.NewSuffix
	if suffix == "" {
		suffix = "_new"
	}

	res, err := relation.Join(oldInv.Records(), newInv.Records(), relation.JoinOptions{
		LeftKey:     "Name",
		RightKey:    "Name",
		Mode:        r.Mode,
		RightSuffix: suffix,
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile: joining %s with %s: %w", oldInv.Farm, newInv.Farm, err)
	}
	res.SortBy("Name")

	report := &Report{
		OldFarm: oldInv.Farm,
		NewFarm: newInv.Farm,
		Joined:  res,
		Rows:    make([]Row, 0, res.Size()),
	}
	for _, rec := range res.Rows {
		report.Rows = append(report.Rows, deriveRow(rec, suffix))
	}
	// Right-only rows carry their name in the suffixed column, so the
	// join-level sort cannot see it; order the derived rows by name.
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Name < report.Rows[j].Name
	})
	return report, nil
}

// deriveRow recomputes presence, state, and action availability from a
// single joined record. This is a pure function of the record; no
// selection state is carried anywhere.
func deriveRow(rec relation.Record, suffix string) Row {
	inOld := rec.Has("Name")
	inNew := rec.Has("Name" + suffix)

	row := Row{}
	switch {
	case inOld && inNew:
		row.State = InBoth
	case inOld:
		row.State = OnlyInOld
	default:
		row.State = OnlyInNew
	}

	if inOld {
		row.Name = rec.Get("Name").Str
	} else {
		row.Name = rec.Get("Name" + suffix).Str
	}

	if inOld {
		enabled := rec.Get("Enabled").Flag
		row.OldEnabled = &enabled
		row.Actions.EnableOld = !enabled
		row.Actions.DisableOld = enabled
	}
	if inNew {
		enabled := rec.Get("Enabled" + suffix).Flag
		row.NewEnabled = &enabled
		row.Actions.EnableNew = !enabled
		row.Actions.DisableNew = enabled
	}
	row.Actions.Create = inOld && !inNew

	return row
}
