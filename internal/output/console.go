package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/jenian/i18ngrd/internal/ignore"
)

// List limits for non-verbose console output
const (
	maxUnused         = 50
	maxMissing        = 50
	maxIgnored        = 20
	maxPatternMatches = 10
	maxUsed           = 100
	maxGapKeys        = 10
)

// palette returns color codes only when colors are enabled
type palette bool

func (p palette) get(code string) string {
	if p {
		return code
	}
	return ""
}

type consoleWriter struct {
	b       strings.Builder
	c       palette
	verbose bool
}

func (w *consoleWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
}

func (w *consoleWriter) heading(color, title string) {
	w.printf("%s%s%s%s\n", w.c.get(colorBold), w.c.get(color), title, w.c.get(colorReset))
	w.printf("%s\n", strings.Repeat("-", len(title)))
}

// list prints items, truncated to limit unless verbose
func (w *consoleWriter) list(items []string, limit int, indent, color, more string) {
	shown := items
	if !w.verbose && len(items) > limit {
		shown = items[:limit]
	}
	for _, item := range shown {
		w.printf("%s- %s%s%s\n", indent, w.c.get(color), item, w.c.get(colorReset))
	}
	if len(shown) < len(items) {
		w.printf("%s%s... and %d more %s%s\n", indent, w.c.get(colorGray), len(items)-len(shown), more, w.c.get(colorReset))
	}
}

func formatConsole(result analyzer.AnalysisResult, sections []string, opts Options) string {
	w := &consoleWriter{c: palette(opts.Color), verbose: opts.Verbose}

	if ts := timestamp(opts.Meta); ts != "" {
		w.printf("%sAnalysis completed at %s%s\n", w.c.get(colorGray), ts, w.c.get(colorReset))
		if len(result.Languages) > 0 {
			w.printf("%sLanguages analyzed: %s%s\n", w.c.get(colorGray), strings.Join(result.Languages, ", "), w.c.get(colorReset))
		}
		w.printf("\n")
	}

	for _, section := range sections {
		switch section {
		case "summary":
			w.summary(result)
		case "dynamicPatterns":
			w.dynamicPatterns(result)
		case "ignored":
			w.ignored(result, opts)
		case "unused":
			w.unused(result)
		case "missing":
			w.missing(result)
		case "usedKeys":
			w.usedKeys(result)
		case "translationKeys":
			w.translationKeys(result)
		case "config":
			w.config(opts)
		}
	}

	if hasSection(sections, "summary") && !result.HasIssues() {
		w.printf("%s%s✓ No issues found. All translation keys are in use and defined.%s\n", w.c.get(colorGreen), w.c.get(colorBold), w.c.get(colorReset))
	}

	return w.b.String()
}

func (w *consoleWriter) summary(r analyzer.AnalysisResult) {
	w.heading(colorCyan, "Translation Summary")
	if len(r.Languages) > 0 {
		w.printf("Languages: %s\n", strings.Join(r.Languages, ", "))
	}
	w.printf("Total translation keys: %d\n", r.TotalKeys)
	w.printf("Used keys (static): %d\n", r.UsedKeysCount)
	if r.DynamicMatchedKeysCount > 0 {
		w.printf("Used keys (dynamic patterns): %d\n", r.DynamicMatchedKeysCount)
	}
	if r.IgnoredKeysCount > 0 {
		w.printf("Ignored keys: %d\n", r.IgnoredKeysCount)
	}
	w.printf("Unused keys: %d\n", len(r.UnusedKeys))
	w.printf("Missing keys: %d\n", len(r.MissingKeys))
	w.printf("Coverage: %d%%\n\n", r.Coverage)
}

func (w *consoleWriter) dynamicPatterns(r analyzer.AnalysisResult) {
	if len(r.DynamicPatterns) == 0 {
		return
	}
	w.heading(colorYellow, "Dynamic Patterns Detected")
	for _, p := range r.Patterns() {
		w.printf("Pattern: %s%s%s (%d match(es))\n", w.c.get(colorYellow), p.Pattern, w.c.get(colorReset), len(p.Matches))
		for _, loc := range r.DynamicLocations[p.Pattern] {
			w.printf("  %sused in:%s %s%s%s:%s%d%s\n", w.c.get(colorGray), w.c.get(colorReset), w.c.get(colorCyan), loc.File, w.c.get(colorReset), w.c.get(colorYellow), loc.Line, w.c.get(colorReset))
		}
		w.list(p.Matches, maxPatternMatches, "  ", "", "matches")
	}
	w.printf("\n")
}

func (w *consoleWriter) ignored(r analyzer.AnalysisResult, opts Options) {
	if len(r.IgnoredKeys) == 0 {
		return
	}
	w.heading(colorGray, fmt.Sprintf("Ignored Translation Keys (%d)", len(r.IgnoredKeys)))

	if opts.Config == nil {
		w.list(r.IgnoredKeys, maxIgnored, "", colorGray, "ignored keys")
		w.printf("\n")
		return
	}

	// Group by the first rule that matched, in rule order
	rules := opts.Config.RuleSet()
	type group struct {
		reason ignore.Reason
		rule   string
		keys   []string
	}
	var groups []*group
	byRule := make(map[string]*group)
	for _, key := range r.IgnoredKeys {
		reason, rule := rules.Match(key)
		id := string(reason) + "\x00" + rule
		g, ok := byRule[id]
		if !ok {
			g = &group{reason: reason, rule: rule}
			byRule[id] = g
			groups = append(groups, g)
		}
		g.keys = append(g.keys, key)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groupOrder(groups[i].reason) < groupOrder(groups[j].reason)
	})

	for _, g := range groups {
		if g.reason == ignore.ReasonNone {
			w.printf("other: %d key(s)\n", len(g.keys))
		} else {
			w.printf("%s %q: %d key(s)\n", g.reason, g.rule, len(g.keys))
		}
		if w.verbose {
			w.list(g.keys, len(g.keys), "   ", colorGray, "")
		}
	}
	w.printf("\n")
}

func groupOrder(reason ignore.Reason) int {
	switch reason {
	case ignore.ReasonExact:
		return 0
	case ignore.ReasonWildcard:
		return 1
	case ignore.ReasonRegex:
		return 2
	default:
		return 3
	}
}

func (w *consoleWriter) unused(r analyzer.AnalysisResult) {
	if len(r.UnusedKeys) == 0 {
		w.printf("%sNo unused translation keys found!%s\n\n", w.c.get(colorGreen), w.c.get(colorReset))
		return
	}
	w.heading(colorYellow, fmt.Sprintf("Unused Translation Keys (%d)", len(r.UnusedKeys)))
	w.list(r.UnusedKeys, maxUnused, "", colorYellow, "unused keys")
	w.printf("\n")
}

func (w *consoleWriter) missing(r analyzer.AnalysisResult) {
	if len(r.MissingKeys) == 0 {
		w.printf("%sNo missing translation keys found!%s\n\n", w.c.get(colorGreen), w.c.get(colorReset))
		return
	}
	w.heading(colorRed, fmt.Sprintf("Missing Translation Keys (%d)", len(r.MissingKeys)))

	keys := r.MissingKeys
	if !w.verbose && len(keys) > maxMissing {
		keys = keys[:maxMissing]
	}
	for _, key := range keys {
		w.printf("  %s%s%s\n", w.c.get(colorRed), key, w.c.get(colorReset))
		for _, loc := range r.MissingLocations[key] {
			w.printf("    %sused in:%s %s%s%s:%s%d%s\n", w.c.get(colorGray), w.c.get(colorReset), w.c.get(colorCyan), loc.File, w.c.get(colorReset), w.c.get(colorYellow), loc.Line, w.c.get(colorReset))
		}
	}
	if len(keys) < len(r.MissingKeys) {
		w.printf("%s... and %d more missing keys%s\n", w.c.get(colorGray), len(r.MissingKeys)-len(keys), w.c.get(colorReset))
	}
	w.printf("\n")
}

func (w *consoleWriter) usedKeys(r analyzer.AnalysisResult) {
	w.heading(colorGreen, fmt.Sprintf("Used Translation Keys (%d)", len(r.UsedKeys)))
	w.list(r.UsedKeys, maxUsed, "", "", "used keys")
	w.printf("\n")
}

func (w *consoleWriter) translationKeys(r analyzer.AnalysisResult) {
	w.heading(colorCyan, fmt.Sprintf("Available Translation Keys (%d)", len(r.TranslationKeys)))
	if len(r.Languages) > 0 {
		w.printf("Languages: %s\n", strings.Join(r.Languages, ", "))
	}

	langs := make([]string, 0, len(r.LanguageGaps))
	for lang := range r.LanguageGaps {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		gaps := r.LanguageGaps[lang]
		w.printf("%s%s%s lacks %d key(s):\n", w.c.get(colorYellow), lang, w.c.get(colorReset), len(gaps))
		w.list(gaps, maxGapKeys, "  ", "", "keys")
	}
	w.printf("\n")
}

func (w *consoleWriter) config(opts Options) {
	cfg := opts.Config
	if cfg == nil {
		return
	}
	w.heading(colorCyan, "Configuration")
	w.printf("Source path: %s\n", cfg.SrcPath)
	w.printf("Locales path: %s\n", cfg.LocalesPath)
	w.printf("Output format: %s\n", cfg.OutputFormat)
	w.printf("Output sections: %s\n", strings.Join(cfg.OutputSections, ", "))
	w.printf("Ignore keys: %s\n", joinOrNone(cfg.IgnoreKeys))
	w.printf("Ignore patterns: %s\n", joinOrNone(cfg.IgnorePatterns))
	w.printf("Ignore regex: %s\n", joinOrNone(cfg.IgnoreRegex))
	w.printf("Ignore dynamic keys: %s\n", yesNo(cfg.IgnoreDynamicKeys))
	w.printf("Exclude directories: %s\n\n", joinOrNone(cfg.ExcludeDirs))
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
