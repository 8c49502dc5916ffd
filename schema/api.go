package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// CheckJSON decodes a JSON document and reports whether it conforms to the
// schema. The error is non-nil only for malformed JSON; a well-formed but
// nonconforming document is (false, nil).
func (v *Validator) CheckJSON(data []byte) (bool, error) {
	value, err := decode(data)
	if err != nil {
		return false, err
	}
	return v.Check(value), nil
}

// ErrorsJSON decodes a JSON document and enumerates its violations. The
// error is non-nil only for malformed JSON.
func (v *Validator) ErrorsJSON(data []byte) ([]Violation, error) {
	value, err := decode(data)
	if err != nil {
		return nil, err
	}
	return v.Errors(value), nil
}

func decode(data []byte) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("schema: decode document: %w", err)
	}
	return value, nil
}

// Ensure Violations satisfies the json.Marshaler interface so callers can
// serialise check results directly if needed.
var _ json.Marshaler = (Violations)(nil)

// MarshalJSON serialises Violations as a JSON array.
func (vs Violations) MarshalJSON() ([]byte, error) {
	type entry struct {
		Path    []string `json:"path"`
		Kind    string   `json:"kind"`
		Message string   `json:"message"`
		Value   any      `json:"value,omitempty"`
	}
	entries := make([]entry, len(vs))
	for i, v := range vs {
		path := v.Path
		if path == nil {
			path = Path{}
		}
		entries[i] = entry{Path: path, Kind: v.Kind.String(), Message: v.Message, Value: v.Value}
	}
	return json.Marshal(entries)
}
