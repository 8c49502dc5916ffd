package schema

import (
	"reflect"
	"sort"
	"unicode/utf8"
)

// Evaluate is the reference checking routine: it walks value against node
// depth-first and returns every violation found, in declaration order,
// without short-circuiting. [Compile] produces a faster equivalent; the two
// always agree.
func Evaluate(node Node, value any) []Violation {
	var out []Violation
	evaluate(node, value, nil, &out)
	return out
}

func evaluate(node Node, value any, path Path, out *[]Violation) {
	switch n := node.(type) {
	case *primitiveNode:
		evaluatePrimitive(n, value, path, out)
	case *literalNode:
		if !literalEqual(n.value, value) {
			*out = append(*out, Violation{
				Path:    path,
				Kind:    LiteralMismatch,
				Message: literalMismatchMessage(n.value),
				Value:   value,
			})
		}
	case *arrayNode:
		evaluateArray(n, value, path, out)
	case *objectNode:
		evaluateObject(n, value, path, out)
	case *unionNode:
		evaluateUnion(n, value, path, out)
	default:
		panic("schema: nil or unknown schema node")
	}
}

func evaluatePrimitive(n *primitiveNode, value any, path Path, out *[]Violation) {
	switch n.kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			*out = append(*out, typeViolation(path, n.kind, value))
			return
		}
		stringRefinements(n, nil, s, path, out)
	case KindNumber:
		f, ok := toNumber(value)
		if !ok {
			*out = append(*out, typeViolation(path, n.kind, value))
			return
		}
		numberRefinements(n, f, path, out)
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			*out = append(*out, typeViolation(path, n.kind, value))
		}
	case KindNull:
		if value != nil {
			*out = append(*out, typeViolation(path, n.kind, value))
		}
	}
}

// stringRefinements applies string constraints in fixed order: length bounds
// first, then format. re overrides the format lookup when the caller has
// already resolved it (the compiled path does).
func stringRefinements(n *primitiveNode, re formatMatcher, s string, path Path, out *[]Violation) {
	runeLen := utf8.RuneCountInString(s)

	if n.minLength != nil && runeLen < *n.minLength {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    LengthTooShort,
			Message: lengthTooShortMessage(*n.minLength),
			Value:   s,
		})
	}
	if n.maxLength != nil && runeLen > *n.maxLength {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    LengthTooLong,
			Message: lengthTooLongMessage(*n.maxLength),
			Value:   s,
		})
	}
	if n.format != nil {
		if re == nil {
			if p, ok := formatPatterns[*n.format]; ok {
				re = p
			}
		}
		if re != nil && !re.MatchString(s) {
			*out = append(*out, Violation{
				Path:    path,
				Kind:    FormatInvalid,
				Message: formatInvalidMessage(*n.format),
				Value:   s,
			})
		}
	}
}

// numberRefinements applies numeric constraints in fixed order: minimum
// before maximum.
func numberRefinements(n *primitiveNode, f float64, path Path, out *[]Violation) {
	if n.minimum != nil && f < *n.minimum {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    BelowMinimum,
			Message: belowMinimumMessage(*n.minimum),
			Value:   f,
		})
	}
	if n.maximum != nil && f > *n.maximum {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    AboveMaximum,
			Message: aboveMaximumMessage(*n.maximum),
			Value:   f,
		})
	}
}

func evaluateArray(n *arrayNode, value any, path Path, out *[]Violation) {
	elems, ok := elements(value)
	if !ok {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    TypeMismatch,
			Message: typeMismatchMessage("array"),
			Value:   value,
		})
		return
	}
	// Every element is checked; no short-circuit at first failure.
	for i, elem := range elems {
		evaluate(n.elem, elem, path.index(i), out)
	}
}

func evaluateObject(n *objectNode, value any, path Path, out *[]Violation) {
	m, ok := mapping(value)
	if !ok {
		*out = append(*out, Violation{
			Path:    path,
			Kind:    TypeMismatch,
			Message: typeMismatchMessage("object"),
			Value:   value,
		})
		return
	}

	for _, f := range n.fields {
		fv, present := m[f.Name]
		if !present {
			if f.Required {
				*out = append(*out, Violation{
					Path:    path.child(f.Name),
					Kind:    MissingRequired,
					Message: missingRequiredMessage(),
				})
			}
			continue
		}
		evaluate(f.Schema, fv, path.child(f.Name), out)
	}

	if n.strict {
		for _, key := range undeclaredKeys(n, m) {
			*out = append(*out, Violation{
				Path:    path.child(key),
				Kind:    UnexpectedProperty,
				Message: unexpectedPropertyMessage(),
				Value:   m[key],
			})
		}
	}
}

func evaluateUnion(n *unionNode, value any, path Path, out *[]Violation) {
	for _, alt := range n.alternatives {
		if len(Evaluate(alt, value)) == 0 {
			return
		}
	}
	// All alternatives failed: one aggregate violation, per-alternative
	// detail deliberately collapsed.
	*out = append(*out, Violation{
		Path:    path,
		Kind:    NoAlternativeMatched,
		Message: noAlternativeMessage(),
		Value:   value,
	})
}

// typeViolation builds the TypeMismatch violation for a primitive kind.
func typeViolation(path Path, kind PrimitiveKind, value any) Violation {
	return Violation{
		Path:    path,
		Kind:    TypeMismatch,
		Message: typeMismatchMessage(kind.String()),
		Value:   value,
	}
}

// formatMatcher is the part of *regexp.Regexp the engine relies on; an
// interface keeps the compiled path free to pass a pre-resolved matcher.
type formatMatcher interface {
	MatchString(s string) bool
}

// toNumber widens any Go numeric kind to float64. JSON decoders only ever
// produce float64; the wider acceptance covers in-process values.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// elements materializes a sequence value. []any is the decoded-JSON fast
// path; other slice and array kinds go through reflection.
func elements(value any) ([]any, bool) {
	if elems, ok := value.([]any); ok {
		return elems, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// mapping materializes a key-value value. map[string]any is the decoded-JSON
// fast path; other string-keyed maps go through reflection.
func mapping(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// undeclaredKeys returns the keys of m not declared in n, sorted so strict
// mode reports them deterministically.
func undeclaredKeys(n *objectNode, m map[string]any) []string {
	declared := make(map[string]struct{}, len(n.fields))
	for _, f := range n.fields {
		declared[f.Name] = struct{}{}
	}
	var keys []string
	for key := range m {
		if _, ok := declared[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// literalEqual compares a candidate value to a literal. Numbers compare by
// value across Go numeric kinds; strings, booleans and null compare
// directly; composite literals fall back to reflect.DeepEqual with numeric
// elements normalized by the caller's decoder.
func literalEqual(literal, value any) bool {
	if lf, ok := toNumber(literal); ok {
		vf, ok := toNumber(value)
		return ok && lf == vf
	}
	switch lit := literal.(type) {
	case string:
		s, ok := value.(string)
		return ok && s == lit
	case bool:
		b, ok := value.(bool)
		return ok && b == lit
	case nil:
		return value == nil
	default:
		return reflect.DeepEqual(literal, value)
	}
}
