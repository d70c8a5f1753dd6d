package relation

import (
	"fmt"
	"strings"
)

// Kind tags the scalar type carried by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is a tagged scalar: a string, a number, a bool, or the absent
// sentinel. The zero Value is absent. Values are comparable, so they can
// be used directly as map keys when bucketing records.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Flag bool
}

// Absent is the explicit missing-field sentinel.
var Absent = Value{}

func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Flag: b} }

// IsAbsent reports whether the value is the missing-field sentinel.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// String renders the value for display. Absent renders as empty rather
// than as an error or a nil marker.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		// Trim the trailing zeros %f would produce for integral values
		if v.Num == float64(int64(v.Num)) {
			return fmt.Sprintf("%d", int64(v.Num))
		}
		return fmt.Sprintf("%g", v.Num)
	case KindBool:
		return fmt.Sprintf("%t", v.Flag)
	default:
		return ""
	}
}

// CompareValues compares two values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// Absent sorts before any concrete value. Values of different kinds
// are ordered by kind so that sorting a mixed column is total.
func CompareValues(left, right Value) int {
	if left.Kind != right.Kind {
		if left.Kind < right.Kind {
			return -1
		}
		return 1
	}
	switch left.Kind {
	case KindString:
		return strings.Compare(left.Str, right.Str)
	case KindNumber:
		switch {
		case left.Num < right.Num:
			return -1
		case left.Num > right.Num:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case !left.Flag && right.Flag:
			return -1
		case left.Flag && !right.Flag:
			return 1
		}
		return 0
	default: // both absent
		return 0
	}
}
