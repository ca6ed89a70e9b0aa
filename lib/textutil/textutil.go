package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace trims s and replaces every run of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// NormalizeName lowercases a person's name and collapses its whitespace.
func NormalizeName(name string) string {
	return strings.ToLower(CollapseSpace(name))
}

var placeholders = []string{"staff", "n/a", "tba", "tbd"}

// IsPlaceholder reports whether a name is a stand-in sources publish when
// no instructor is assigned yet.
func IsPlaceholder(name string) bool {
	name = NormalizeName(name)
	if name == "" {
		return true
	}
	for _, p := range placeholders {
		if name == p {
			return true
		}
	}
	return false
}
