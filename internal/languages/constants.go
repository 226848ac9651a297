package languages

import (
	"regexp"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

var (
	// const KEYS = { title: 'page.title', nested: { x: 'page.x' } }
	// One level of nested braces is followed.
	constObjectRegex = regexp.MustCompile(`\b(?:const|let|var|readonly)\s+\w+(?:\s*:\s*[^=;{]+)?\s*=\s*\{((?:[^{}]|\{[^{}]*\})*)\}`)

	// enum Keys { Title = 'page.title' }
	enumRegex = regexp.MustCompile(`\benum\s+\w+\s*\{([^}]*)\}`)

	// const TITLE_KEY = 'page.title'
	constStringRegex = regexp.MustCompile(`\b(?:const|let|var|readonly)\s+\w+(?:\s*:\s*[\w.]+)?\s*=\s*['"` + "`" + `]([^'"` + "`" + `\n]+)['"` + "`" + `]`)

	quotedStringRegex = regexp.MustCompile(`['"` + "`" + `]([^'"` + "`" + `\n]+)['"` + "`" + `]`)
)

// ExtractConstantKeys extracts dotted strings declared in constants, enums
// and object literals, which are typically passed to translate later
func ExtractConstantKeys(content string) []Match {
	var results []Match

	for _, re := range []*regexp.Regexp{constObjectRegex, enumRegex} {
		for _, body := range findGroups(re, content) {
			for _, m := range findGroups(quotedStringRegex, body.Key) {
				if !isConstantKey(m.Key) {
					continue
				}
				m.Offset += body.Offset
				m.Context = analyzer.ContextConstant
				results = append(results, m)
			}
		}
	}

	for _, m := range findGroups(constStringRegex, content) {
		if !isConstantKey(m.Key) {
			continue
		}
		m.Context = analyzer.ContextConstant
		results = append(results, m)
	}

	return results
}

func isConstantKey(s string) bool {
	return IsDottedKey(s) && !looksLikeFileName(s)
}
