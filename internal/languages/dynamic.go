package languages

import (
	"regexp"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/jenian/i18ngrd/internal/pattern"
)

// callPrefix matches the opening of a translate call. Any receiver may
// call instant, stream or translate; get is too common (maps, caches, http)
// and only counts on the known service receivers.
const callPrefix = `\b(?:` + serviceReceivers + `\.get|\w+\.(?:instant|stream|translate))\(\s*`

// concatOperand is a quoted literal or a property path, optionally called
const concatOperand = `(?:'[\w.-]*'|"[\w.-]*"|[\w$][\w$.?!\[\]]*(?:\([^()|]*\))?)`

// maxArgumentLength bounds the scan for the end of a call argument
const maxArgumentLength = 512

var (
	// `prefix.${var}.suffix` | translate
	templatePipeRegex = regexp.MustCompile("`((?:[\\w.-]|\\$\\{[^}]+\\})+)`\\s*\\|\\s*translate\\b")

	// translate.instant(`prefix.${var}`)
	templateCallRegex = regexp.MustCompile(callPrefix + "`((?:[\\w.-]|\\$\\{[^}]+\\})+)`\\s*[,)]")

	// translate.instant( ... the argument is delimited by callArgument
	callOpenRegex = regexp.MustCompile(callPrefix)

	// {{ 'prefix.' + item.type | translate }}
	concatPipeRegex = regexp.MustCompile(
		`(` + concatOperand + `(?:\s*\+\s*` + concatOperand + `)+)\s*\)?\s*\|\s*translate\b`)

	templateHoleRegex = regexp.MustCompile(`\$\{[^}]+\}`)
	keyCharsRegex     = regexp.MustCompile(`^[\w.*-]*$`)
	repeatedHoleRegex = regexp.MustCompile(`\*{2,}`)
)

// ExtractDynamicPatterns converts runtime-built keys into wildcard patterns.
// Every interpolation or non-literal operand becomes a single *. Shapes that
// carry no literal part, such as a bare variable, produce nothing.
func ExtractDynamicPatterns(content string) []Match {
	var results []Match

	for _, re := range []*regexp.Regexp{templatePipeRegex, templateCallRegex} {
		for _, m := range findGroups(re, content) {
			if p, ok := templatePattern(m.Key); ok {
				results = append(results, Match{Key: p, Offset: m.Offset, Context: analyzer.ContextDynamic})
			}
		}
	}

	// translate.instant('prefix.' + getType(x) + '.suffix')
	for _, loc := range callOpenRegex.FindAllStringIndex(content, -1) {
		arg, ok := callArgument(content, loc[1])
		if !ok || !strings.Contains(arg, "+") {
			continue
		}
		if p, ok := concatPattern(arg); ok {
			results = append(results, Match{Key: p, Offset: loc[1], Context: analyzer.ContextDynamic})
		}
	}

	for _, m := range findGroups(concatPipeRegex, content) {
		if p, ok := concatPattern(m.Key); ok {
			results = append(results, Match{Key: p, Offset: m.Offset, Context: analyzer.ContextDynamic})
		}
	}

	return results
}

// templatePattern turns the body of a template literal into a pattern
func templatePattern(body string) (string, bool) {
	if !strings.Contains(body, "${") {
		return "", false
	}
	p := templateHoleRegex.ReplaceAllString(body, "*")
	return normalizePattern(p)
}

// concatPattern turns a + concatenation chain into a pattern. Quoted
// operands are kept literally and anything else becomes a hole.
func concatPattern(expr string) (string, bool) {
	operands := splitConcat(expr)
	if len(operands) < 2 {
		return "", false
	}

	var b strings.Builder
	hasLiteral := false
	for _, op := range operands {
		op = strings.TrimSpace(op)
		if op == "" {
			return "", false
		}
		if op[0] == '\'' || op[0] == '"' || op[0] == '`' {
			lit := trimQuotes(op)
			if len(lit) == len(op) {
				return "", false
			}
			lit = templateHoleRegex.ReplaceAllString(lit, "*")
			b.WriteString(lit)
			hasLiteral = true
			continue
		}
		b.WriteByte('*')
	}

	if !hasLiteral {
		return "", false
	}
	return normalizePattern(b.String())
}

func normalizePattern(p string) (string, bool) {
	p = strings.TrimSpace(repeatedHoleRegex.ReplaceAllString(p, "*"))
	if !keyCharsRegex.MatchString(p) || !pattern.IsUsableDynamic(p) {
		return "", false
	}
	return p, true
}

// callArgument returns the first argument of a call, starting at start
// and ending at the first top-level comma or closing parenthesis. Nested
// brackets and quoted strings are skipped over.
func callArgument(content string, start int) (string, bool) {
	depth := 0
	var quote byte
	for i := start; i < len(content) && i-start < maxArgumentLength; i++ {
		c := content[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth == 0 {
				return content[start:i], c == ')'
			}
			depth--
		case c == ',' && depth == 0:
			return content[start:i], true
		case c == ';':
			return "", false
		}
	}
	return "", false
}

// splitConcat splits an expression on + signs outside quoted strings and
// brackets
func splitConcat(expr string) []string {
	var parts []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == '+' && depth == 0:
			parts = append(parts, expr[start:i])
			start = i + 1
		}
	}
	return append(parts, expr[start:])
}
