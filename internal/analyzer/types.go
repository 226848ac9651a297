package analyzer

import "fmt"

// Extraction contexts attached to each TranslationKey
const (
	ContextStatic     = "static"     // literal argument to a translate call, pipe or directive
	ContextStandalone = "standalone" // uppercase dotted literal found outside a call
	ContextConstant   = "constant"   // value of a constant, enum or object literal
	ContextDynamic    = "dynamic"    // wildcarded key shape built at runtime
)

// TranslationKey represents a single occurrence of a translation key in code
type TranslationKey struct {
	Key     string `json:"key"`               // Dotted key, or wildcard pattern for dynamic occurrences
	File    string `json:"file"`              // File path where it's used
	Line    int    `json:"line"`              // 1-based line number
	Column  int    `json:"column,omitempty"`  // 1-based column, 0 if unknown
	Context string `json:"context,omitempty"` // One of the Context* constants
}

// IsDynamic reports whether the occurrence is a runtime-built key shape
func (k TranslationKey) IsDynamic() bool {
	return k.Context == ContextDynamic
}

// Location formats the occurrence as file:line
func (k TranslationKey) Location() string {
	return fmt.Sprintf("%s:%d", k.File, k.Line)
}

// DynamicPattern is a wildcarded key shape and the catalog keys it reaches
type DynamicPattern struct {
	Pattern string   `json:"pattern"`
	Matches []string `json:"matches"`
}

// AnalysisResult contains the complete reconciliation results.
// Every list is sorted.
type AnalysisResult struct {
	TotalKeys               int `json:"totalKeys"`
	UsedKeysCount           int `json:"usedKeysCount"`
	DynamicMatchedKeysCount int `json:"dynamicMatchedKeysCount"`
	IgnoredKeysCount        int `json:"ignoredKeysCount"`
	Coverage                int `json:"coverage"`

	UnusedKeys         []string            `json:"unusedKeys"`
	MissingKeys        []string            `json:"missingKeys"`
	IgnoredKeys        []string            `json:"ignoredKeys"`
	TranslationKeys    []string            `json:"translationKeys"`
	UsedKeys           []string            `json:"usedKeys"`
	DynamicMatchedKeys []string            `json:"dynamicMatchedKeys"`
	DynamicPatterns    []string            `json:"dynamicPatterns"`
	PatternMatches     map[string][]string `json:"patternMatches"`

	Languages        []string                    `json:"languages"`
	LanguageGaps     map[string][]string         `json:"languageGaps,omitempty"`
	MissingLocations map[string][]TranslationKey `json:"missingLocations,omitempty"`
	DynamicLocations map[string][]TranslationKey `json:"dynamicLocations,omitempty"`
}

// HasIssues reports whether unused or missing keys were found
func (r AnalysisResult) HasIssues() bool {
	return len(r.UnusedKeys) > 0 || len(r.MissingKeys) > 0
}

// Patterns returns the dynamic patterns with their matches, in pattern order
func (r AnalysisResult) Patterns() []DynamicPattern {
	patterns := make([]DynamicPattern, 0, len(r.DynamicPatterns))
	for _, p := range r.DynamicPatterns {
		matches := r.PatternMatches[p]
		if matches == nil {
			matches = []string{}
		}
		patterns = append(patterns, DynamicPattern{Pattern: p, Matches: matches})
	}
	return patterns
}
