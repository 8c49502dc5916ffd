// Package schema_test battle tests: edge cases and adversarial inputs for
// the validation engine.
package schema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alessio/schemaguard/schema"
)

// ============================================================
// 1. UNICODE / MULTIBYTE STRING HANDLING
// ============================================================

var unicodeName = schema.Object(
	schema.Field("name", schema.String(schema.MinLength(2), schema.MaxLength(4))),
)

func TestUnicode_EmojiCountsAsOneRune(t *testing.T) {
	// 🚀 is 4 UTF-8 bytes but 1 rune — maxLength=4 means runes, not bytes
	doc := map[string]any{"name": "🚀🚀🚀"}
	assert.Empty(t, schema.Evaluate(unicodeName, doc))
}

func TestUnicode_ByteLengthDoesNotInfluenceCount(t *testing.T) {
	// "こんにちは" = 5 runes but 15 UTF-8 bytes; maxLength=4 counts runes.
	got := schema.Evaluate(unicodeName, map[string]any{"name": "こんにちは"})
	require.Len(t, got, 1)
	assert.Equal(t, schema.LengthTooLong, got[0].Kind)
}

func TestUnicode_ExactlyAtBounds(t *testing.T) {
	assert.Empty(t, schema.Evaluate(unicodeName, map[string]any{"name": "AB"}))
	assert.Empty(t, schema.Evaluate(unicodeName, map[string]any{"name": "ABCD"}))
}

func TestUnicode_OneOutsideBounds(t *testing.T) {
	got := schema.Evaluate(unicodeName, map[string]any{"name": "A"})
	require.Len(t, got, 1)
	assert.Equal(t, schema.LengthTooShort, got[0].Kind)

	got = schema.Evaluate(unicodeName, map[string]any{"name": "ABCDE"})
	require.Len(t, got, 1)
	assert.Equal(t, schema.LengthTooLong, got[0].Kind)
}

// ============================================================
// 2. NUMERIC BOUNDARIES
// ============================================================

func TestBounds_Inclusive(t *testing.T) {
	s := schema.Number(schema.Minimum(0), schema.Maximum(10))
	assert.Empty(t, schema.Evaluate(s, 0.0))
	assert.Empty(t, schema.Evaluate(s, 10.0))
	assert.NotEmpty(t, schema.Evaluate(s, -0.001))
	assert.NotEmpty(t, schema.Evaluate(s, 10.001))
}

func TestBounds_NegativeRange(t *testing.T) {
	s := schema.Number(schema.Minimum(-10), schema.Maximum(-1))
	assert.Empty(t, schema.Evaluate(s, -5.0))
	assert.NotEmpty(t, schema.Evaluate(s, 0.0))
}

func TestBounds_IntegerWidening(t *testing.T) {
	s := schema.Number(schema.Minimum(0), schema.Maximum(1000))
	assert.Empty(t, schema.Evaluate(s, int64(1000)))
	assert.Empty(t, schema.Evaluate(s, uint8(7)))
	assert.NotEmpty(t, schema.Evaluate(s, int32(-1)))
}

func TestNumber_BoolIsNotANumber(t *testing.T) {
	got := schema.Evaluate(schema.Number(), true)
	require.Len(t, got, 1)
	assert.Equal(t, schema.TypeMismatch, got[0].Kind)
}

// ============================================================
// 3. DEEP NESTING
// ============================================================

func TestNesting_ViolationPathSurvivesDepth(t *testing.T) {
	s := schema.Object(
		schema.Field("a", schema.Object(
			schema.Field("b", schema.Array(schema.Object(
				schema.Field("c", schema.String(schema.MinLength(1))),
			))),
		)),
	)
	doc := map[string]any{
		"a": map[string]any{
			"b": []any{
				map[string]any{"c": "ok"},
				map[string]any{"c": ""},
			},
		},
	}

	got := schema.Evaluate(s, doc)

	require.Len(t, got, 1)
	assert.Equal(t, "/a/b/1/c", got[0].Path.String())
}

func TestNesting_ManyLevels(t *testing.T) {
	// 50 levels of {"next": ...} ending in a wrongly-typed leaf.
	node := schema.Object(schema.Field("leaf", schema.Number()))
	doc := any(map[string]any{"leaf": "wrong"})
	wantPath := []string{"leaf"}
	for i := 0; i < 50; i++ {
		node = schema.Object(schema.Field("next", node))
		doc = map[string]any{"next": doc}
		wantPath = append([]string{"next"}, wantPath...)
	}

	got := schema.Evaluate(node, doc)

	require.Len(t, got, 1)
	assert.Equal(t, "/"+strings.Join(wantPath, "/"), got[0].Path.String())
}

// ============================================================
// 4. UNION EDGE CASES
// ============================================================

func TestUnion_OfUnions(t *testing.T) {
	s := schema.Union(
		schema.Union(schema.Literal("a"), schema.Literal("b")),
		schema.Union(schema.Literal(1.0), schema.Literal(2.0)),
	)
	assert.Empty(t, schema.Evaluate(s, "b"))
	assert.Empty(t, schema.Evaluate(s, 2.0))

	got := schema.Evaluate(s, "c")
	require.Len(t, got, 1)
	assert.Equal(t, schema.NoAlternativeMatched, got[0].Kind)
	assert.Empty(t, got[0].Path)
}

func TestUnion_MixedShapes(t *testing.T) {
	// A union across structurally different alternatives.
	s := schema.Union(
		schema.Null(),
		schema.String(schema.MinLength(1)),
		schema.Object(schema.Field("id", schema.Number())),
	)
	assert.Empty(t, schema.Evaluate(s, nil))
	assert.Empty(t, schema.Evaluate(s, "x"))
	assert.Empty(t, schema.Evaluate(s, map[string]any{"id": 7.0}))

	// Close misses still collapse to a single union-level violation.
	got := schema.Evaluate(s, map[string]any{"id": "7"})
	require.Len(t, got, 1)
	assert.Equal(t, schema.NoAlternativeMatched, got[0].Kind)
}

func TestUnion_AlternativeWithRefinementFailure(t *testing.T) {
	s := schema.Union(schema.String(schema.MinLength(5)))
	got := schema.Evaluate(s, "abc")
	// The string alternative fails only on length, but union reporting
	// never surfaces per-alternative detail.
	require.Len(t, got, 1)
	assert.Equal(t, "Expected union value", got[0].Message)
}

// ============================================================
// 5. LARGE INPUTS
// ============================================================

func TestArray_AllBadIndicesReported(t *testing.T) {
	s := schema.Array(schema.Number())
	elems := make([]any, 500)
	for i := range elems {
		elems[i] = "bad"
	}

	got := schema.Evaluate(s, elems)

	require.Len(t, got, 500)
	assert.Equal(t, "/0", got[0].Path.String())
	assert.Equal(t, "/499", got[499].Path.String())
}

func TestArray_CompiledCheckShortCircuitsInvisibly(t *testing.T) {
	validator := schema.MustCompile(schema.Array(schema.Number()))
	elems := make([]any, 500)
	for i := range elems {
		elems[i] = "bad"
	}
	// Check is only a verdict; full enumeration stays available.
	assert.False(t, validator.Check(elems))
	assert.Len(t, validator.Errors(elems), 500)
}

// ============================================================
// 6. SCHEMA REUSE AND SHARING
// ============================================================

func TestSharedSubSchema(t *testing.T) {
	// The same node instance wired into two places of one tree.
	name := schema.String(schema.MinLength(2))
	s := schema.Object(
		schema.Field("first", name),
		schema.Field("last", name),
	)

	got := schema.Evaluate(s, map[string]any{"first": "A", "last": "B"})

	require.Len(t, got, 2)
	assert.Equal(t, schema.Path{"first"}, got[0].Path)
	assert.Equal(t, schema.Path{"last"}, got[1].Path)
}

func TestValidator_ManySchemasIndependent(t *testing.T) {
	for i := 0; i < 10; i++ {
		bound := i
		v := schema.MustCompile(schema.Number(schema.Minimum(float64(bound))))
		assert.True(t, v.Check(float64(bound)), fmt.Sprintf("bound %d", bound))
		assert.False(t, v.Check(float64(bound)-1))
	}
}

// ============================================================
// 7. FORMAT EDGE CASES
// ============================================================

func TestFormat_UnknownNameNotEnforced(t *testing.T) {
	s := schema.String(schema.WithFormat("no-such-format"))
	assert.Empty(t, schema.Evaluate(s, "anything"))
}

func TestFormat_KnownFormats(t *testing.T) {
	cases := map[string][2]string{
		"email":     {"a@b.co", "not-an-email"},
		"uuid":      {"123e4567-e89b-12d3-a456-426614174000", "nope"},
		"date":      {"2026-08-29", "29/08/2026"},
		"date-time": {"2026-08-29T10:00:00Z", "2026-08-29"},
		"ipv4":      {"10.0.0.1", "example.com"},
		"uri":       {"https://example.com/x", "example.com"},
	}
	for name, pair := range cases {
		s := schema.String(schema.WithFormat(name))
		assert.Empty(t, schema.Evaluate(s, pair[0]), "format %s should accept %q", name, pair[0])
		assert.NotEmpty(t, schema.Evaluate(s, pair[1]), "format %s should reject %q", name, pair[1])
	}
}

func TestFormats_ListsKnownNames(t *testing.T) {
	names := schema.Formats()
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "uuid")
	assert.NotEmpty(t, names)
}
