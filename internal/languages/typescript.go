package languages

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

// Pipe usage in templates and inline component templates: 'key' | translate
var pipeRegexes = []*regexp.Regexp{
	regexp.MustCompile(`'([^'\n]+)'\s*\|\s*translate\b`),
	regexp.MustCompile(`"([^"\n]+)"\s*\|\s*translate\b`),
	regexp.MustCompile("`([^`]+)`\\s*\\|\\s*translate\\b"),
}

// serviceReceivers are the well-known translation service names
const serviceReceivers = `(?:translate|translateService|translationService|i18n)`

// serviceCallRegex matches well-known translation service receivers:
// translate.instant('key'), this.translateService.get("key", params), ...
var serviceCallRegex = regexp.MustCompile(
	`\b` + serviceReceivers + `\.(?:get|instant|stream|translate)\(\s*['"` + "`" + `]([^'"` + "`" + `\n]+)['"` + "`" + `]\s*[,)]`)

// flexibleCallRegex accepts any receiver name. Keys found only this way
// must have dotted key shape, otherwise map.get('id') would count.
var flexibleCallRegex = regexp.MustCompile(
	`\b\w+\.(?:get|instant|translate|stream)\(\s*['"` + "`" + `]([^'"` + "`" + `\n]+)['"` + "`" + `]\s*[,)]`)

// ExtractPipeKeys extracts literal keys piped through translate
func ExtractPipeKeys(content string) []Match {
	var results []Match
	for _, re := range pipeRegexes {
		for _, m := range findGroups(re, content) {
			if strings.Contains(m.Key, "${") {
				// Template literal with holes; handled as a dynamic pattern
				continue
			}
			if concatenated(content, m.Offset-1) {
				// Last operand of 'a.' + x + '.b' | translate
				continue
			}
			m.Context = analyzer.ContextStatic
			results = append(results, m)
		}
	}
	return results
}

// concatenated reports whether the string literal opening at quote is the
// right operand of a + concatenation
func concatenated(content string, quote int) bool {
	if quote <= 0 || quote > len(content) {
		return false
	}
	before := strings.TrimRightFunc(content[:quote], unicode.IsSpace)
	return strings.HasSuffix(before, "+")
}

// ExtractServiceCalls extracts literal keys passed to a translation service
func ExtractServiceCalls(content string) []Match {
	var results []Match
	for _, m := range findGroups(serviceCallRegex, content) {
		if strings.Contains(m.Key, "${") {
			continue
		}
		m.Context = analyzer.ContextStatic
		results = append(results, m)
	}
	return results
}

// ExtractFlexibleCalls extracts dotted keys passed to get/instant/translate/stream
// on any receiver
func ExtractFlexibleCalls(content string) []Match {
	var results []Match
	for _, m := range findGroups(flexibleCallRegex, content) {
		key := strings.TrimSpace(m.Key)
		if !IsDottedKey(key) || looksLikeFileName(key) {
			continue
		}
		m.Context = analyzer.ContextStatic
		results = append(results, m)
	}
	return results
}
