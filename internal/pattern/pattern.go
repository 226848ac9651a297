package pattern

import (
	"regexp"
	"strings"
)

// doubleStar stands in for "**" while single stars are rewritten
const doubleStar = "\x00"

// escapeMeta escapes regex metacharacters except '*' and '.'
// Dots are key separators and are deliberately left as regex wildcards.
func escapeMeta(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '+', '?', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CompileWildcard compiles an ignore pattern.
// A single * matches zero or more characters within one dotted segment,
// ** matches anything including dots.
func CompileWildcard(pattern string) (*regexp.Regexp, error) {
	expr := escapeMeta(pattern)
	expr = strings.ReplaceAll(expr, "**", doubleStar)
	expr = strings.ReplaceAll(expr, "*", "[^.]*")
	expr = strings.ReplaceAll(expr, doubleStar, ".*")
	return regexp.Compile("^" + expr + "$")
}

// CompileDynamic compiles a dynamic key pattern such as "country.code.*".
// Each * matches one or more non-dot characters and never the empty string.
func CompileDynamic(pattern string) (*regexp.Regexp, error) {
	expr := strings.ReplaceAll(escapeMeta(pattern), "*", "[^.]+")
	return regexp.Compile("^" + expr + "$")
}

// MatchesWildcard reports whether key is covered by an ignore pattern.
// An exact match always succeeds, even without wildcards.
func MatchesWildcard(key, pattern string) bool {
	if pattern == key {
		return true
	}
	re, err := CompileWildcard(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(key)
}

// KeyMatchesDynamicPattern reports whether a catalog key could have been
// produced at runtime by the given dynamic pattern.
func KeyMatchesDynamicPattern(key, pattern string) bool {
	re, err := CompileDynamic(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(key)
}

// IsUsableDynamic reports whether a derived pattern carries any prefix or
// suffix information worth matching.
func IsUsableDynamic(pattern string) bool {
	return pattern != "*" && len(pattern) > 1 && strings.Contains(pattern, "*")
}
