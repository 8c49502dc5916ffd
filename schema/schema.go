package schema

// PrimitiveKind enumerates the primitive value kinds a schema can require.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindNumber
	KindBoolean
	KindNull
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Node is the sealed interface implemented by every schema variant.
// Nodes are immutable once constructed; build them with the factory
// functions ([String], [Number], [Object], ...) and share them freely.
type Node interface {
	node()
}

// primitiveNode matches one runtime kind plus optional refinements.
// Inconsistent refinements (e.g. minimum > maximum) are representable;
// they simply become constraints no value satisfies.
type primitiveNode struct {
	kind      PrimitiveKind
	minLength *int
	maxLength *int
	format    *string
	minimum   *float64
	maximum   *float64
}

// literalNode matches exactly one value, compared by deep equality.
type literalNode struct {
	value any
}

// arrayNode matches sequences whose every element satisfies elem.
type arrayNode struct {
	elem Node
}

// ObjectField declares one field of an object schema. Optionality only
// waives the missing-property check: a present value must still satisfy
// the field schema.
type ObjectField struct {
	Name     string
	Schema   Node
	Required bool
}

// objectNode matches key-value mappings. Fields keep declaration order so
// violations are reported deterministically. When strict, keys not declared
// in the schema are violations; otherwise they are ignored.
type objectNode struct {
	fields []ObjectField
	strict bool
}

// unionNode matches values satisfying at least one alternative, tried in
// declaration order.
type unionNode struct {
	alternatives []Node
}

func (*primitiveNode) node() {}
func (*literalNode) node()   {}
func (*arrayNode) node()     {}
func (*objectNode) node()    {}
func (*unionNode) node()     {}

// StringOption refines a string schema.
type StringOption func(*primitiveNode)

// MinLength requires at least n characters (runes, not bytes).
func MinLength(n int) StringOption {
	return func(p *primitiveNode) { p.minLength = &n }
}

// MaxLength requires at most n characters (runes, not bytes).
func MaxLength(n int) StringOption {
	return func(p *primitiveNode) { p.maxLength = &n }
}

// WithFormat requires the string to match a named format ("email", "uuid", ...).
// Unknown format names are not enforced. See [Formats].
func WithFormat(name string) StringOption {
	return func(p *primitiveNode) { p.format = &name }
}

// String builds a string schema with optional refinements.
func String(opts ...StringOption) Node {
	p := &primitiveNode{kind: KindString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NumberOption refines a number schema.
type NumberOption func(*primitiveNode)

// Minimum requires the value to be greater or equal to bound.
func Minimum(bound float64) NumberOption {
	return func(p *primitiveNode) { p.minimum = &bound }
}

// Maximum requires the value to be less or equal to bound.
func Maximum(bound float64) NumberOption {
	return func(p *primitiveNode) { p.maximum = &bound }
}

// Number builds a number schema with optional refinements. Any Go numeric
// kind conforms; JSON decoders produce float64.
func Number(opts ...NumberOption) Node {
	p := &primitiveNode{kind: KindNumber}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Boolean builds a boolean schema.
func Boolean() Node {
	return &primitiveNode{kind: KindBoolean}
}

// Null builds a schema matched only by nil.
func Null() Node {
	return &primitiveNode{kind: KindNull}
}

// Literal builds a schema matched only by values deeply equal to value.
// Numeric literals compare by value, so Literal(3) matches float64(3).
func Literal(value any) Node {
	return &literalNode{value: value}
}

// Array builds a schema matching sequences whose elements all satisfy elem.
func Array(elem Node) Node {
	return &arrayNode{elem: elem}
}

// Field declares a required object field.
func Field(name string, s Node) ObjectField {
	return ObjectField{Name: name, Schema: s, Required: true}
}

// Optional declares an optional object field.
func Optional(name string, s Node) ObjectField {
	return ObjectField{Name: name, Schema: s, Required: false}
}

// Object builds an object schema that ignores undeclared keys.
func Object(fields ...ObjectField) Node {
	return &objectNode{fields: copyFields(fields)}
}

// StrictObject builds an object schema that rejects undeclared keys.
func StrictObject(fields ...ObjectField) Node {
	return &objectNode{fields: copyFields(fields), strict: true}
}

// Union builds a schema matched by values satisfying at least one
// alternative. A union with no alternatives matches nothing.
func Union(alternatives ...Node) Node {
	alts := make([]Node, len(alternatives))
	copy(alts, alternatives)
	return &unionNode{alternatives: alts}
}

func copyFields(fields []ObjectField) []ObjectField {
	out := make([]ObjectField, len(fields))
	copy(out, fields)
	return out
}
