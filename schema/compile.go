package schema

import (
	"fmt"
	"unicode/utf8"
)

// Validator is a compiled checker bound to exactly one schema tree. It holds
// no mutable state between calls and is safe for concurrent use.
type Validator struct {
	root compiledNode
}

// compiledNode is the flattened form of a schema node: a short-circuiting
// boolean check and a full-enumeration error walk, both with field lists,
// bounds and format regexps resolved at compile time.
type compiledNode struct {
	check  func(value any) bool
	errors func(value any, path Path, out *[]Violation)
}

// Compile transforms a schema tree into a reusable Validator. Compilation is
// deterministic and side-effect-free; it fails only on programmer errors in
// the schema itself (nil sub-schemas, duplicate object field names), never
// on properties of future input values.
func Compile(node Node) (*Validator, error) {
	root, err := compileNode(node)
	if err != nil {
		return nil, err
	}
	return &Validator{root: root}, nil
}

// MustCompile is like [Compile] but panics on error. Intended for
// package-level schema constants.
func MustCompile(node Node) *Validator {
	v, err := Compile(node)
	if err != nil {
		panic("schema: MustCompile failed: " + err.Error())
	}
	return v
}

// Check reports whether value conforms to the schema. It short-circuits at
// the first violation; use [Validator.Errors] for diagnostics.
func (v *Validator) Check(value any) bool {
	return v.root.check(value)
}

// Errors enumerates every violation between value and the schema, in
// depth-first declaration order. It returns nil when the value conforms,
// so Check(v) == (len(Errors(v)) == 0) always holds.
func (v *Validator) Errors(value any) []Violation {
	var out []Violation
	v.root.errors(value, nil, &out)
	return out
}

// Validate returns nil when value conforms, or the full [Violations] list
// as an error.
func (v *Validator) Validate(value any) error {
	if errs := v.Errors(value); len(errs) > 0 {
		return Violations(errs)
	}
	return nil
}

func compileNode(node Node) (compiledNode, error) {
	switch n := node.(type) {
	case nil:
		return compiledNode{}, fmt.Errorf("schema: cannot compile nil schema node")
	case *primitiveNode:
		return compilePrimitive(n)
	case *literalNode:
		return compileLiteral(n), nil
	case *arrayNode:
		return compileArray(n)
	case *objectNode:
		return compileObject(n)
	case *unionNode:
		return compileUnion(n)
	default:
		return compiledNode{}, fmt.Errorf("schema: unknown schema node type %T", node)
	}
}

func compilePrimitive(n *primitiveNode) (compiledNode, error) {
	// Resolve the format once so checks never touch the pattern table.
	var re formatMatcher
	if n.format != nil {
		if p, ok := formatPatterns[*n.format]; ok {
			re = p
		}
	}

	var check func(value any) bool
	switch n.kind {
	case KindString:
		minLen, maxLen := n.minLength, n.maxLength
		check = func(value any) bool {
			s, ok := value.(string)
			if !ok {
				return false
			}
			runeLen := utf8.RuneCountInString(s)
			if minLen != nil && runeLen < *minLen {
				return false
			}
			if maxLen != nil && runeLen > *maxLen {
				return false
			}
			return re == nil || re.MatchString(s)
		}
	case KindNumber:
		minimum, maximum := n.minimum, n.maximum
		check = func(value any) bool {
			f, ok := toNumber(value)
			if !ok {
				return false
			}
			if minimum != nil && f < *minimum {
				return false
			}
			return maximum == nil || f <= *maximum
		}
	case KindBoolean:
		check = func(value any) bool {
			_, ok := value.(bool)
			return ok
		}
	case KindNull:
		check = func(value any) bool {
			return value == nil
		}
	default:
		return compiledNode{}, fmt.Errorf("schema: unknown primitive kind %d", n.kind)
	}

	errors := func(value any, path Path, out *[]Violation) {
		switch n.kind {
		case KindString:
			s, ok := value.(string)
			if !ok {
				*out = append(*out, typeViolation(path, n.kind, value))
				return
			}
			stringRefinements(n, re, s, path, out)
		default:
			evaluatePrimitive(n, value, path, out)
		}
	}

	return compiledNode{check: check, errors: errors}, nil
}

func compileLiteral(n *literalNode) compiledNode {
	literal := n.value
	return compiledNode{
		check: func(value any) bool {
			return literalEqual(literal, value)
		},
		errors: func(value any, path Path, out *[]Violation) {
			if !literalEqual(literal, value) {
				*out = append(*out, Violation{
					Path:    path,
					Kind:    LiteralMismatch,
					Message: literalMismatchMessage(literal),
					Value:   value,
				})
			}
		},
	}
}

func compileArray(n *arrayNode) (compiledNode, error) {
	elem, err := compileNode(n.elem)
	if err != nil {
		return compiledNode{}, fmt.Errorf("schema: array element: %w", err)
	}
	return compiledNode{
		check: func(value any) bool {
			elems, ok := elements(value)
			if !ok {
				return false
			}
			for _, e := range elems {
				if !elem.check(e) {
					return false
				}
			}
			return true
		},
		errors: func(value any, path Path, out *[]Violation) {
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
			for i, e := range elems {
				elem.errors(e, path.index(i), out)
			}
		},
	}, nil
}

type compiledField struct {
	name     string
	required bool
	node     compiledNode
}

func compileObject(n *objectNode) (compiledNode, error) {
	fields := make([]compiledField, 0, len(n.fields))
	declared := make(map[string]struct{}, len(n.fields))
	for _, f := range n.fields {
		if _, dup := declared[f.Name]; dup {
			return compiledNode{}, fmt.Errorf("schema: duplicate object field %q", f.Name)
		}
		declared[f.Name] = struct{}{}
		c, err := compileNode(f.Schema)
		if err != nil {
			return compiledNode{}, fmt.Errorf("schema: field %q: %w", f.Name, err)
		}
		fields = append(fields, compiledField{name: f.Name, required: f.Required, node: c})
	}
	strict := n.strict
	model := n // shape metadata for the full-error walk

	return compiledNode{
		check: func(value any) bool {
			m, ok := mapping(value)
			if !ok {
				return false
			}
			for _, f := range fields {
				fv, present := m[f.name]
				if !present {
					if f.required {
						return false
					}
					continue
				}
				if !f.node.check(fv) {
					return false
				}
			}
			if strict {
				for key := range m {
					if _, ok := declared[key]; !ok {
						return false
					}
				}
			}
			return true
		},
		errors: func(value any, path Path, out *[]Violation) {
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
			for _, f := range fields {
				fv, present := m[f.name]
				if !present {
					if f.required {
						*out = append(*out, Violation{
							Path:    path.child(f.name),
							Kind:    MissingRequired,
							Message: missingRequiredMessage(),
						})
					}
					continue
				}
				f.node.errors(fv, path.child(f.name), out)
			}
			if strict {
				for _, key := range undeclaredKeys(model, m) {
					*out = append(*out, Violation{
						Path:    path.child(key),
						Kind:    UnexpectedProperty,
						Message: unexpectedPropertyMessage(),
						Value:   m[key],
					})
				}
			}
		},
	}, nil
}

func compileUnion(n *unionNode) (compiledNode, error) {
	alts := make([]compiledNode, len(n.alternatives))
	for i, alt := range n.alternatives {
		c, err := compileNode(alt)
		if err != nil {
			return compiledNode{}, fmt.Errorf("schema: union alternative %d: %w", i, err)
		}
		alts[i] = c
	}
	anyMatches := func(value any) bool {
		for _, alt := range alts {
			if alt.check(value) {
				return true
			}
		}
		return false
	}
	return compiledNode{
		check: anyMatches,
		errors: func(value any, path Path, out *[]Violation) {
			if anyMatches(value) {
				return
			}
			*out = append(*out, Violation{
				Path:    path,
				Kind:    NoAlternativeMatched,
				Message: noAlternativeMessage(),
				Value:   value,
			})
		},
	}, nil
}
