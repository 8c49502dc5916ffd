package schema

import (
	"regexp"
	"sort"
)

// Pre-compiled named format regexps — no external dependencies.
var formatPatterns = map[string]*regexp.Regexp{
	"email":     regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`),
	"uri":       regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+\-.]*://[^\s]*$`),
	"date":      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	"time":      regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`),
	"date-time": regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
	"uuid":      regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`),
	"ipv4":      regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`),
	"ipv6":      regexp.MustCompile(`(?i)^[0-9a-f:]+$`),
}

// Formats returns the names of the formats [WithFormat] enforces, sorted.
func Formats() []string {
	names := make([]string, 0, len(formatPatterns))
	for name := range formatPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
