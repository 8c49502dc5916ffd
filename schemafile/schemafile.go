// Package schemafile loads schema documents written in YAML or JSON into
// schema nodes. The accepted vocabulary is the JSON-Schema-flavored subset
// the engine can express: type, minLength, maxLength, format, minimum,
// maximum, const, enum, items, properties, required,
// additionalProperties: false, anyOf.
//
// Property declaration order in the document is preserved, so violation
// ordering matches the order fields were written in.
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alessio/schemaguard/schema"
)

// Parse converts a schema document into a schema node. JSON documents work
// unchanged since YAML is a superset.
func Parse(data []byte) (schema.Node, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return d.build()
}

// ParseFile reads and parses a schema document from disk.
func ParseFile(path string) (schema.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Parse(data)
}

// doc is the decoded form of one schema document node. Composition keywords
// (const, enum, anyOf) take precedence over type when both appear.
type doc struct {
	typ        string
	minLength  *int
	maxLength  *int
	format     string
	minimum    *float64
	maximum    *float64
	constVal   any
	hasConst   bool
	enum       []any
	hasEnum    bool
	items      *doc
	properties []property
	required   []string
	additional *bool
	anyOf      []*doc
}

type property struct {
	name string
	doc  *doc
}

// UnmarshalYAML decodes a mapping node keyword by keyword. Walking the raw
// node instead of a map keeps property order and lets unsupported keywords
// fail loudly instead of being silently dropped.
func (d *doc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schema node must be a mapping", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var err error
		switch key.Value {
		case "type":
			err = val.Decode(&d.typ)
		case "minLength":
			err = val.Decode(&d.minLength)
		case "maxLength":
			err = val.Decode(&d.maxLength)
		case "format":
			err = val.Decode(&d.format)
		case "minimum":
			err = val.Decode(&d.minimum)
		case "maximum":
			err = val.Decode(&d.maximum)
		case "const":
			d.hasConst = true
			err = val.Decode(&d.constVal)
		case "enum":
			d.hasEnum = true
			err = val.Decode(&d.enum)
		case "items":
			err = val.Decode(&d.items)
		case "properties":
			err = d.decodeProperties(val)
		case "required":
			err = val.Decode(&d.required)
		case "additionalProperties":
			err = val.Decode(&d.additional)
		case "anyOf":
			err = val.Decode(&d.anyOf)
		case "title", "description":
			// Accepted for documentation, no validation effect.
		default:
			return fmt.Errorf("line %d: unsupported keyword %q", key.Line, key.Value)
		}
		if err != nil {
			return fmt.Errorf("keyword %q: %w", key.Value, err)
		}
	}
	return nil
}

func (d *doc) decodeProperties(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var pd doc
		if err := val.Decode(&pd); err != nil {
			return fmt.Errorf("property %q: %w", key.Value, err)
		}
		d.properties = append(d.properties, property{name: key.Value, doc: &pd})
	}
	return nil
}

// build turns a decoded document into a schema node.
func (d *doc) build() (schema.Node, error) {
	switch {
	case d.hasConst:
		return schema.Literal(d.constVal), nil
	case d.hasEnum:
		alts := make([]schema.Node, len(d.enum))
		for i, v := range d.enum {
			alts[i] = schema.Literal(v)
		}
		return schema.Union(alts...), nil
	case len(d.anyOf) > 0:
		alts := make([]schema.Node, len(d.anyOf))
		for i, alt := range d.anyOf {
			n, err := alt.build()
			if err != nil {
				return nil, fmt.Errorf("anyOf[%d]: %w", i, err)
			}
			alts[i] = n
		}
		return schema.Union(alts...), nil
	}

	switch d.typ {
	case "string":
		var opts []schema.StringOption
		if d.minLength != nil {
			opts = append(opts, schema.MinLength(*d.minLength))
		}
		if d.maxLength != nil {
			opts = append(opts, schema.MaxLength(*d.maxLength))
		}
		if d.format != "" {
			opts = append(opts, schema.WithFormat(d.format))
		}
		return schema.String(opts...), nil
	case "number", "integer":
		var opts []schema.NumberOption
		if d.minimum != nil {
			opts = append(opts, schema.Minimum(*d.minimum))
		}
		if d.maximum != nil {
			opts = append(opts, schema.Maximum(*d.maximum))
		}
		return schema.Number(opts...), nil
	case "boolean":
		return schema.Boolean(), nil
	case "null":
		return schema.Null(), nil
	case "array":
		if d.items == nil {
			return nil, fmt.Errorf("array schema requires items")
		}
		elem, err := d.items.build()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return schema.Array(elem), nil
	case "object":
		return d.buildObject()
	case "":
		return nil, fmt.Errorf("schema node needs a type or one of const/enum/anyOf")
	default:
		return nil, fmt.Errorf("unsupported type %q", d.typ)
	}
}

func (d *doc) buildObject() (schema.Node, error) {
	requiredSet := make(map[string]struct{}, len(d.required))
	for _, name := range d.required {
		requiredSet[name] = struct{}{}
	}

	fields := make([]schema.ObjectField, 0, len(d.properties))
	declared := make(map[string]struct{}, len(d.properties))
	for _, p := range d.properties {
		n, err := p.doc.build()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.name, err)
		}
		declared[p.name] = struct{}{}
		if _, req := requiredSet[p.name]; req {
			fields = append(fields, schema.Field(p.name, n))
		} else {
			fields = append(fields, schema.Optional(p.name, n))
		}
	}

	for _, name := range d.required {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("required property %q is not declared in properties", name)
		}
	}

	if d.additional != nil && !*d.additional {
		return schema.StrictObject(fields...), nil
	}
	return schema.Object(fields...), nil
}
