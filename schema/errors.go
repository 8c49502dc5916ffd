package schema

import (
	"strconv"
	"strings"
)

// ViolationKind classifies a single nonconformance between a value and a
// schema. Every kind has a canonical message; see report.go.
type ViolationKind int

const (
	TypeMismatch ViolationKind = iota
	LiteralMismatch
	MissingRequired
	UnexpectedProperty
	BelowMinimum
	AboveMaximum
	LengthTooShort
	LengthTooLong
	FormatInvalid
	NoAlternativeMatched
)

func (k ViolationKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case LiteralMismatch:
		return "LiteralMismatch"
	case MissingRequired:
		return "MissingRequired"
	case UnexpectedProperty:
		return "UnexpectedProperty"
	case BelowMinimum:
		return "BelowMinimum"
	case AboveMaximum:
		return "AboveMaximum"
	case LengthTooShort:
		return "LengthTooShort"
	case LengthTooLong:
		return "LengthTooLong"
	case FormatInvalid:
		return "FormatInvalid"
	case NoAlternativeMatched:
		return "NoAlternativeMatched"
	default:
		return "Unknown"
	}
}

// Path addresses a location inside a checked value, relative to its root.
// Segments are field names or decimal array indices.
type Path []string

// String renders the path with each segment prefixed by "/", e.g.
// "/roles/0". The root path renders as the empty string.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	return "/" + strings.Join(p, "/")
}

// child returns a new path extended with a field name. The copy matters:
// sibling fields extend the same parent, so appending in place would alias.
func (p Path) child(name string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = name
	return out
}

// index returns a new path extended with an array index.
func (p Path) index(i int) Path {
	return p.child(strconv.Itoa(i))
}

// Violation is a single detected nonconformance, addressed by path.
// Violations are data, not fatal conditions: malformed values never make
// the engine fail, they make it report.
type Violation struct {
	Path    Path          // location within the checked value
	Kind    ViolationKind // classification
	Message string        // canonical human-readable reason
	Value   any           // the offending value, nil for absent properties
}

// Violations is the ordered collection of violations from one check.
// It implements the error interface.
type Violations []Violation

func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = Format(v)
	}
	return strings.Join(msgs, "; ")
}

// Has returns true if there is at least one violation at the given rendered
// path (e.g. "/address/city").
func (vs Violations) Has(path string) bool {
	for _, v := range vs {
		if v.Path.String() == path {
			return true
		}
	}
	return false
}
