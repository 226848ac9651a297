package analyzer

import (
	"math"
	"sort"
	"strings"

	"github.com/jenian/i18ngrd/internal/ignore"
	"github.com/jenian/i18ngrd/internal/pattern"
)

// Input gathers everything the reconciliation needs for one analysis run
type Input struct {
	CatalogKeys     []string         // Flattened catalog keys (union across languages)
	Extracted       []TranslationKey // Every occurrence found in source
	DynamicPatterns []string         // Wildcarded key shapes derived from source
	Rules           *ignore.RuleSet  // Ignore rules, may be nil

	CatalogIgnored []string // Keys dropped by ignore rules while loading the catalog
	ScanIgnored    []string // Keys dropped by ignore rules while scanning source

	Languages    []string
	LanguageGaps map[string][]string
}

// Reconcile partitions catalog and code keys into used, unused, missing,
// ignored and dynamically matched sets.
//
// A catalog key is unused only if it has no static or dynamic usage and no
// ignore rule covers it. A code key is missing only if it is static, absent
// from the catalog and not ignored. Ignored keys from every source are
// merged as a set, so a key hit by several rules is counted once.
func Reconcile(in Input) AnalysisResult {
	catalog := make(map[string]bool, len(in.CatalogKeys))
	for _, k := range in.CatalogKeys {
		if k = strings.TrimSpace(k); k != "" {
			catalog[k] = true
		}
	}

	// Split occurrences into static usage and dynamic shapes
	staticUsed := make(map[string]bool)
	staticLocations := make(map[string][]TranslationKey)
	dynamicLocations := make(map[string][]TranslationKey)
	patterns := make(map[string]bool)

	for _, p := range in.DynamicPatterns {
		if p = strings.TrimSpace(p); pattern.IsUsableDynamic(p) {
			patterns[p] = true
		}
	}

	for _, usage := range in.Extracted {
		key := strings.TrimSpace(usage.Key)
		if key == "" {
			continue
		}
		usage.Key = key
		if usage.IsDynamic() {
			if pattern.IsUsableDynamic(key) {
				patterns[key] = true
				dynamicLocations[key] = append(dynamicLocations[key], usage)
			}
			continue
		}
		staticUsed[key] = true
		staticLocations[key] = append(staticLocations[key], usage)
	}

	// Collect ignored keys from all sources
	ignored := make(map[string]bool)
	for _, k := range in.CatalogIgnored {
		ignored[k] = true
	}
	for _, k := range in.ScanIgnored {
		ignored[k] = true
	}
	for k := range catalog {
		if in.Rules.ShouldIgnore(k) {
			ignored[k] = true
		}
	}
	ignoredUsed := 0
	for k := range staticUsed {
		if ignored[k] || in.Rules.ShouldIgnore(k) {
			ignored[k] = true
			ignoredUsed++
		}
	}

	// Rescue catalog keys reachable through runtime-built lookups
	catalogKeys := sortedKeys(catalog)
	dynamicMatched := make(map[string]bool)
	patternMatches := make(map[string][]string)
	for _, p := range sortedKeys(patterns) {
		re, err := pattern.CompileDynamic(p)
		if err != nil {
			continue
		}
		for _, k := range catalogKeys {
			if ignored[k] {
				continue
			}
			if re.MatchString(k) {
				dynamicMatched[k] = true
				patternMatches[p] = append(patternMatches[p], k)
			}
		}
	}

	var unused, used, missing []string
	for _, k := range catalogKeys {
		if ignored[k] {
			continue
		}
		if staticUsed[k] || dynamicMatched[k] {
			used = append(used, k)
		} else {
			unused = append(unused, k)
		}
	}

	missingLocations := make(map[string][]TranslationKey)
	for _, k := range sortedKeys(staticUsed) {
		if ignored[k] {
			continue
		}
		if !catalog[k] {
			missing = append(missing, k)
			missingLocations[k] = sortedOccurrences(staticLocations[k])
			// Static keys outside the catalog still count as used evidence
			used = append(used, k)
		}
	}
	sort.Strings(used)

	for p, locs := range dynamicLocations {
		dynamicLocations[p] = sortedOccurrences(locs)
	}

	result := AnalysisResult{
		TotalKeys:               len(catalog),
		UsedKeysCount:           len(staticUsed) - ignoredUsed,
		DynamicMatchedKeysCount: len(dynamicMatched),
		IgnoredKeysCount:        len(ignored),
		UnusedKeys:              nonNil(unused),
		MissingKeys:             nonNil(missing),
		IgnoredKeys:             sortedKeys(ignored),
		TranslationKeys:         catalogKeys,
		UsedKeys:                nonNil(used),
		DynamicMatchedKeys:      sortedKeys(dynamicMatched),
		DynamicPatterns:         sortedKeys(patterns),
		PatternMatches:          patternMatches,
		Languages:               sortedCopy(in.Languages),
		LanguageGaps:            copyGaps(in.LanguageGaps),
		MissingLocations:        missingLocations,
		DynamicLocations:        dynamicLocations,
	}
	result.Coverage = Coverage(result.UsedKeysCount, result.TotalKeys)

	return result
}

// Coverage returns used/total as a rounded percentage, 0 for an empty catalog
func Coverage(used, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(used) / float64(total) * 100))
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func sortedOccurrences(locs []TranslationKey) []TranslationKey {
	out := make([]TranslationKey, len(locs))
	copy(out, locs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

func copyGaps(gaps map[string][]string) map[string][]string {
	if len(gaps) == 0 {
		return nil
	}
	out := make(map[string][]string, len(gaps))
	for lang, keys := range gaps {
		out[lang] = sortedCopy(keys)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
