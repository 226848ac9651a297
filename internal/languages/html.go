package languages

import (
	"regexp"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

var (
	// [translate]="'key'" and [translate]='"key"'
	directiveBindingRegex = regexp.MustCompile(`\[translate\]\s*=\s*(?:"\s*'([^'"]+)'\s*"|'\s*"([^'"]+)"\s*')`)

	// translate="key" as a plain attribute
	directiveAttributeRegex = regexp.MustCompile(`(?:^|[\s<])translate\s*=\s*(?:"([^"{}]+)"|'([^'{}]+)')`)

	// <span translate>key</span>
	directiveContentRegex = regexp.MustCompile(`<[A-Za-z][\w-]*[^>]*\stranslate(?:\s[^>]*)?>\s*([^<{}\s]+)\s*</`)
)

// ExtractDirectiveKeys extracts keys from the translate directive forms
func ExtractDirectiveKeys(content string) []Match {
	var results []Match
	for _, re := range []*regexp.Regexp{directiveBindingRegex, directiveAttributeRegex, directiveContentRegex} {
		for _, m := range findGroups(re, content) {
			m.Context = analyzer.ContextStatic
			results = append(results, m)
		}
	}
	return results
}
