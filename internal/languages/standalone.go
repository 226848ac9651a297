package languages

import (
	"regexp"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

// standaloneKeyRegex matches quoted SCREAMING.DOTTED.KEYS anywhere in code.
// This is a heuristic: lowercase constants are missed and unrelated
// uppercase dotted strings are picked up.
var standaloneKeyRegex = regexp.MustCompile(`['"` + "`" + `]([A-Z][A-Z0-9_]*(?:\.[A-Z][A-Z0-9_]*)+)['"` + "`" + `]`)

// ExtractStandaloneKeys extracts uppercase dotted literals that are not
// necessarily passed straight to a translate call, e.g. keys handed to
// a helper as a parameter
func ExtractStandaloneKeys(content string) []Match {
	var results []Match
	for _, m := range findGroups(standaloneKeyRegex, content) {
		m.Context = analyzer.ContextStandalone
		results = append(results, m)
	}
	return results
}
