// Package schema is a schema-driven runtime validation engine: it represents
// structural type constraints as data, compiles them into a fast reusable
// checker, and reports precise, path-addressed violations when a value does
// not conform.
//
// A schema is an immutable tree of nodes built with factory functions:
//
//	user := schema.Object(
//	    schema.Field("name", schema.String(schema.MinLength(2))),
//	    schema.Optional("age", schema.Number(schema.Minimum(0))),
//	    schema.Field("roles", schema.Array(schema.Union(
//	        schema.Literal("admin"),
//	        schema.Literal("user"),
//	    ))),
//	)
//
// Compile the tree once and reuse the validator for every check; validators
// are stateless and safe for concurrent use:
//
//	validator := schema.MustCompile(user)
//
//	if !validator.Check(value) {
//	    for _, v := range validator.Errors(value) {
//	        fmt.Println(schema.Format(v)) // "/roles/0: Expected union value"
//	    }
//	}
//
// Check short-circuits at the first violation; Errors always enumerates the
// complete set, depth-first in field declaration order, so one call yields
// full diagnostics. [Evaluate] provides the same semantics without
// compilation for one-off checks.
//
// Malformed values are never errors: nonconformance is reported as
// [Violation] data. The only failures [Compile] can return are programmer
// errors in the schema itself, such as duplicate object field names.
package schema
