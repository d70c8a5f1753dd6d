package relation

import (
	"fmt"
	"path"
	"strings"
)

// FieldRule selects or computes one or more output fields from a source
// record. A rule is either a plain field name, a wildcard pattern over
// field names (*, ?, [...]), or a computed field with an output name and
// a derivation function.
type FieldRule struct {
	// Field is a literal field name or a wildcard pattern. Empty for
	// computed rules.
	Field string

	// Name is the output field name of a computed rule.
	Name string

	// Compute derives the output value from the source record. The
	// record is passed explicitly; the function must not mutate it.
	Compute func(Record) (Value, error)
}

// Field selects a source field by name or wildcard pattern.
func Field(name string) FieldRule {
	return FieldRule{Field: name}
}

// Computed builds a rule whose output value is derived from the whole
// source record.
func Computed(name string, fn func(Record) (Value, error)) FieldRule {
	return FieldRule{Name: name, Compute: fn}
}

// Wildcard selects every field of the representative record.
var Wildcard = Field("*")

// ConfigError reports a malformed projection rule. It is raised before
// any matching starts, so a configuration mistake never produces
// partial output.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "relation: invalid projection: " + e.Reason
}

// projection is one resolved output column: either a plain source field
// or a computed derivation. Right-side plain names already carry their
// prefix/suffix after resolution.
type projection struct {
	name    string
	field   string
	compute func(Record) (Value, error)
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// resolveRules expands projection rules against a representative record
// (the first record of the side). Wildcard patterns expand to every
// matching field of the representative, in sorted field order; with no
// representative a pattern expands to nothing. prefix and suffix are
// applied to plain output names only, never to computed names.
func resolveRules(rules []FieldRule, rep Record, prefix, suffix string) ([]projection, error) {
	if len(rules) == 0 {
		rules = []FieldRule{Wildcard}
	}

	// Validate computed rules eagerly, before any expansion
	for _, rule := range rules {
		if rule.Compute == nil && rule.Name == "" && rule.Field == "" {
			return nil, &ConfigError{Reason: "empty rule"}
		}
		if rule.Compute != nil && rule.Name == "" {
			return nil, &ConfigError{Reason: "computed rule has no output name"}
		}
		if rule.Compute == nil && rule.Name != "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("rule %q names an output but has no derivation", rule.Name)}
		}
	}

	var resolved []projection
	for _, rule := range rules {
		switch {
		case rule.Compute != nil:
			resolved = append(resolved, projection{name: rule.Name, compute: rule.Compute})
		case isPattern(rule.Field):
			for _, field := range rep.Fields() {
				ok, err := path.Match(rule.Field, field)
				if err != nil {
					return nil, &ConfigError{Reason: fmt.Sprintf("bad field pattern %q", rule.Field)}
				}
				if ok {
					resolved = append(resolved, projection{name: prefix + field + suffix, field: field})
				}
			}
		default:
			resolved = append(resolved, projection{name: prefix + rule.Field + suffix, field: rule.Field})
		}
	}
	return resolved, nil
}
