package relation

import "sort"

// Record is one input or output item: an open set of named fields.
// Two records from the same source usually share a field set, but
// nothing enforces that. Lookup of a missing field yields Absent, never
// an error.
type Record map[string]Value

// Get returns the value of a field, or Absent when the field is missing.
func (r Record) Get(field string) Value {
	if r == nil {
		return Absent
	}
	return r[field]
}

// Set stores a field value.
func (r Record) Set(field string, v Value) {
	r[field] = v
}

// Has reports whether the field is present with a concrete value.
func (r Record) Has(field string) bool {
	return !r.Get(field).IsAbsent()
}

// Fields returns the field names in sorted order. A map has no
// intrinsic order, so sorting keeps wildcard expansion stable.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for f, v := range r {
		out[f] = v
	}
	return out
}
