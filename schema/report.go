package schema

import (
	"fmt"
	"strconv"
)

// Format renders a violation as "<path>: <message>", e.g.
// "/roles/0: Expected union value". A violation at the root of the checked
// value renders as the bare message.
func Format(v Violation) string {
	if len(v.Path) == 0 {
		return v.Message
	}
	return v.Path.String() + ": " + v.Message
}

// Canonical message constructors, one per ViolationKind. Violations carry
// their message at creation time so the bound that was violated is embedded;
// keeping the constructors together makes the kind set auditable in one
// place (report_test.go asserts the mapping is exhaustive).

func typeMismatchMessage(want string) string {
	return "Expected " + want
}

func literalMismatchMessage(literal any) string {
	return "Expected " + formatLiteral(literal)
}

func missingRequiredMessage() string {
	return "Expected required property"
}

func unexpectedPropertyMessage() string {
	return "Unexpected property"
}

func belowMinimumMessage(bound float64) string {
	return "Expected number to be greater or equal to " + formatNumber(bound)
}

func aboveMaximumMessage(bound float64) string {
	return "Expected number to be less or equal to " + formatNumber(bound)
}

func lengthTooShortMessage(bound int) string {
	return "Expected string length greater or equal to " + strconv.Itoa(bound)
}

func lengthTooLongMessage(bound int) string {
	return "Expected string length less or equal to " + strconv.Itoa(bound)
}

func formatInvalidMessage(name string) string {
	return "Expected string to match '" + name + "' format"
}

func noAlternativeMessage() string {
	return "Expected union value"
}

func formatLiteral(v any) string {
	switch lit := v.(type) {
	case string:
		return strconv.Quote(lit)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", lit)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
