package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes a class or property name for fuzzy matching:
// case is folded and separators (_, -, space, dot) are dropped, so
// "sample_type", "Sample Type" and "SampleType" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// isSeparator returns true if the rune is a common word separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
