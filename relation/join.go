package relation

import "strings"

// Mode controls which unmatched records are retained by a join.
type Mode int

const (
	// LeftOuter keeps every left record, matched or not.
	LeftOuter Mode = iota
	// RightOuter keeps every right record, matched or not.
	RightOuter
	// Inner keeps matched pairs only.
	Inner
	// FullOuter keeps every record from both sides.
	FullOuter
)

func (m Mode) String() string {
	switch m {
	case LeftOuter:
		return "LeftOuter"
	case RightOuter:
		return "RightOuter"
	case Inner:
		return "Inner"
	case FullOuter:
		return "FullOuter"
	default:
		return "Invalid"
	}
}

// InvalidModeError reports a join mode outside the enumerated four.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return "relation: invalid join mode: " + e.Mode
}

// ParseMode parses a join mode name. Both the canonical names and the
// legacy ones (AllInLeft, AllInRight, OnlyIfInBoth, AllInBoth) are
// accepted, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "leftouter", "allinleft":
		return LeftOuter, nil
	case "rightouter", "allinright":
		return RightOuter, nil
	case "inner", "onlyifinboth":
		return Inner, nil
	case "fullouter", "allinboth":
		return FullOuter, nil
	}
	return 0, &InvalidModeError{Mode: s}
}

// JoinOptions configures one join call. The zero value joins with
// wildcard projections, no renaming, and LeftOuter mode.
type JoinOptions struct {
	// LeftKey and RightKey name the key field on each side. A record
	// whose key field is absent falls into the shared null-key bucket.
	LeftKey  string
	RightKey string

	// LeftFields and RightFields select the output columns per side.
	// Nil means wildcard.
	LeftFields  []FieldRule
	RightFields []FieldRule

	Mode Mode

	// RightPrefix and RightSuffix rename plain right-side output fields
	// to avoid collisions with left-side names. Computed output names
	// are never renamed.
	RightPrefix string
	RightSuffix string
}

// Join merges two record sequences by key equality. Both inputs are
// treated as immutable snapshots; the output is freshly allocated and
// shares no records with the inputs.
//
// Matched key buckets emit the cross product of left bucket x right
// bucket in every mode. Unmatched left records are kept in LeftOuter
// and FullOuter, unmatched right records in RightOuter and FullOuter.
// The output column list is fixed by the projection configuration
// alone, independent of mode.
//
// Iteration order across key buckets is implementation-defined; callers
// needing deterministic output sort the result afterward.
func Join(left, right []Record, opts JoinOptions) (*Result, error) {
	if opts.Mode < LeftOuter || opts.Mode > FullOuter {
		return nil, &InvalidModeError{Mode: opts.Mode.String()}
	}

	// Resolve projections against a representative record of each side
	// before matching; this is also where malformed rules are rejected.
	leftProj, err := resolveRules(opts.LeftFields, first(left), "", "")
	if err != nil {
		return nil, err
	}
	rightProj, err := resolveRules(opts.RightFields, first(right), opts.RightPrefix, opts.RightSuffix)
	if err != nil {
		return nil, err
	}

	// Output columns: left first, then right, deduplicated keeping the
	// first occurrence.
	seen := make(map[string]bool, len(leftProj)+len(rightProj))
	columns := make([]string, 0, len(leftProj)+len(rightProj))
	for _, p := range leftProj {
		if !seen[p.name] {
			seen[p.name] = true
			columns = append(columns, p.name)
		}
	}
	for _, p := range rightProj {
		if !seen[p.name] {
			seen[p.name] = true
			columns = append(columns, p.name)
		}
	}

	rightBuckets := bucketByKey(right, opts.RightKey)
	leftBuckets := bucketByKey(left, opts.LeftKey)

	var rows []Record
	emit := func(l, r Record) error {
		row, err := buildRow(l, r, leftProj, rightProj)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	}

	for key, lrecs := range leftBuckets {
		rrecs, matched := rightBuckets[key]
		switch {
		case matched:
			// Cross product within the bucket, in every mode
			for _, l := range lrecs {
				for _, r := range rrecs {
					if err := emit(l, r); err != nil {
						return nil, err
					}
				}
			}
		case opts.Mode == LeftOuter || opts.Mode == FullOuter:
			for _, l := range lrecs {
				if err := emit(l, nil); err != nil {
					return nil, err
				}
			}
		}
	}

	if opts.Mode == RightOuter || opts.Mode == FullOuter {
		for key, rrecs := range rightBuckets {
			if _, matched := leftBuckets[key]; matched {
				continue
			}
			for _, r := range rrecs {
				if err := emit(nil, r); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Result{Columns: columns, Rows: rows}, nil
}

func first(recs []Record) Record {
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}

// bucketByKey groups records by key value, preserving input order
// within a bucket. Records whose key field is absent all share the
// Absent bucket; the tagged kind guarantees that bucket can never equal
// a concrete key value.
func bucketByKey(recs []Record, keyField string) map[Value][]Record {
	buckets := make(map[Value][]Record, len(recs))
	for _, rec := range recs {
		key := rec.Get(keyField)
		buckets[key] = append(buckets[key], rec)
	}
	return buckets
}

// buildRow projects whichever sides are non-absent into one flat
// record. When left and right projections collide on an output name,
// the first projection producing a concrete value wins. A derivation
// error propagates unchanged and aborts the join.
func buildRow(l, r Record, leftProj, rightProj []projection) (Record, error) {
	row := make(Record, len(leftProj)+len(rightProj))
	if l != nil {
		if err := applyProjections(row, l, leftProj); err != nil {
			return nil, err
		}
	}
	if r != nil {
		if err := applyProjections(row, r, rightProj); err != nil {
			return nil, err
		}
	}
	return row, nil
}

func applyProjections(row Record, rec Record, projs []projection) error {
	for _, p := range projs {
		if row.Has(p.name) {
			continue
		}
		var v Value
		if p.compute != nil {
			var err error
			if v, err = p.compute(rec); err != nil {
				return err
			}
		} else {
			v = rec.Get(p.field)
		}
		if !v.IsAbsent() {
			row.Set(p.name, v)
		}
	}
	return nil
}
