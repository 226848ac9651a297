// Package ignore decides which translation keys and catalog files are
// excluded from unused/missing accounting.
package ignore

import (
	"fmt"
	"regexp"

	"github.com/jenian/i18ngrd/internal/pattern"
)

// Reason names the kind of rule that caused a key to be ignored
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonExact    Reason = "exact"
	ReasonWildcard Reason = "pattern"
	ReasonRegex    Reason = "regex"
)

type compiledRule struct {
	source string
	re     *regexp.Regexp
}

// RuleSet holds exact keys, wildcard patterns and regular expressions.
// Patterns are compiled once; regexp values carry no scan state so a
// RuleSet is safe for concurrent use.
type RuleSet struct {
	exactKeys   map[string]bool
	wildcards   []compiledRule
	regexes     []compiledRule
	ignoreFiles map[string]bool
	warnings    []error
}

// NewRuleSet compiles the given rules. Invalid regular expressions are
// skipped and reported through Warnings.
func NewRuleSet(exactKeys, wildcardPatterns, regexPatterns, ignoreFiles []string) *RuleSet {
	rs := &RuleSet{
		exactKeys:   make(map[string]bool, len(exactKeys)),
		ignoreFiles: make(map[string]bool, len(ignoreFiles)),
	}
	for _, k := range exactKeys {
		rs.exactKeys[k] = true
	}
	for _, f := range ignoreFiles {
		rs.ignoreFiles[f] = true
	}

	for _, p := range wildcardPatterns {
		re, err := pattern.CompileWildcard(p)
		if err != nil {
			// Keep the rule for its exact-match short circuit
			rs.warnings = append(rs.warnings, fmt.Errorf("invalid ignore pattern %q: %w", p, err))
		}
		rs.wildcards = append(rs.wildcards, compiledRule{source: p, re: re})
	}

	for _, p := range regexPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			rs.warnings = append(rs.warnings, fmt.Errorf("invalid ignore regex %q: %w", p, err))
			continue
		}
		rs.regexes = append(rs.regexes, compiledRule{source: p, re: re})
	}

	return rs
}

// Warnings returns the problems found while compiling the rules
func (rs *RuleSet) Warnings() []error {
	if rs == nil {
		return nil
	}
	return rs.warnings
}

// ShouldIgnore reports whether key is covered by any rule
func (rs *RuleSet) ShouldIgnore(key string) bool {
	reason, _ := rs.Match(key)
	return reason != ReasonNone
}

// Match returns the first rule that covers key along with the rule text.
// Exact keys are checked first, then wildcard patterns and regexes in their
// configured order.
func (rs *RuleSet) Match(key string) (Reason, string) {
	if rs == nil {
		return ReasonNone, ""
	}

	if rs.exactKeys[key] {
		return ReasonExact, key
	}

	for _, rule := range rs.wildcards {
		if rule.source == key {
			return ReasonWildcard, rule.source
		}
		if rule.re != nil && rule.re.MatchString(key) {
			return ReasonWildcard, rule.source
		}
	}

	for _, rule := range rs.regexes {
		if rule.re.MatchString(key) {
			return ReasonRegex, rule.source
		}
	}

	return ReasonNone, ""
}

// ShouldIgnoreFile reports whether a catalog file name is excluded
func (rs *RuleSet) ShouldIgnoreFile(filename string) bool {
	if rs == nil {
		return false
	}
	return rs.ignoreFiles[filename]
}

// Filter splits keys into kept and ignored, preserving order
func (rs *RuleSet) Filter(keys []string) (kept, ignored []string) {
	for _, k := range keys {
		if rs.ShouldIgnore(k) {
			ignored = append(ignored, k)
		} else {
			kept = append(kept, k)
		}
	}
	return kept, ignored
}
