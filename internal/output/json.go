package output

import (
	"encoding/json"
	"fmt"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

// JSONReport is the structure written by the json format
type JSONReport struct {
	Metadata JSONMetadata   `json:"metadata"`
	Summary  *JSONSummary   `json:"summary,omitempty"`
	Analysis map[string]any `json:"analysis"`
}

// JSONMetadata identifies the run
type JSONMetadata struct {
	GeneratedAt string `json:"generatedAt,omitempty"`
	RunID       string `json:"runId,omitempty"`
	Tool        string `json:"tool"`
	Version     string `json:"version,omitempty"`
	SrcPath     string `json:"srcPath,omitempty"`
	LocalesPath string `json:"localesPath,omitempty"`
}

// JSONSummary holds the result counters
type JSONSummary struct {
	Languages          []string `json:"languages"`
	TotalKeys          int      `json:"totalKeys"`
	UsedKeys           int      `json:"usedKeys"`
	DynamicMatchedKeys int      `json:"dynamicMatchedKeys"`
	IgnoredKeys        int      `json:"ignoredKeys"`
	UnusedKeys         int      `json:"unusedKeys"`
	MissingKeys        int      `json:"missingKeys"`
	Coverage           int      `json:"coverage"`
}

// MissingKey is a missing key with the places it is used
type MissingKey struct {
	Key       string                    `json:"key"`
	Locations []analyzer.TranslationKey `json:"locations"`
}

func formatJSON(result analyzer.AnalysisResult, sections []string, opts Options) (string, error) {
	report := JSONReport{
		Metadata: JSONMetadata{
			GeneratedAt: timestamp(opts.Meta),
			RunID:       opts.Meta.RunID,
			Tool:        "i18ngrd",
			Version:     opts.Meta.Version,
			SrcPath:     opts.Meta.SrcPath,
			LocalesPath: opts.Meta.LocalesPath,
		},
		Analysis: make(map[string]any),
	}

	if hasSection(sections, "summary") {
		report.Summary = &JSONSummary{
			Languages:          nonNil(result.Languages),
			TotalKeys:          result.TotalKeys,
			UsedKeys:           result.UsedKeysCount,
			DynamicMatchedKeys: result.DynamicMatchedKeysCount,
			IgnoredKeys:        result.IgnoredKeysCount,
			UnusedKeys:         len(result.UnusedKeys),
			MissingKeys:        len(result.MissingKeys),
			Coverage:           result.Coverage,
		}
	}
	if hasSection(sections, "missing") {
		report.Analysis["missingKeys"] = missingKeys(result)
	}
	if hasSection(sections, "unused") {
		report.Analysis["unusedKeys"] = nonNil(result.UnusedKeys)
	}
	if hasSection(sections, "dynamicPatterns") {
		report.Analysis["dynamicPatterns"] = result.Patterns()
		report.Analysis["dynamicMatchedKeys"] = nonNil(result.DynamicMatchedKeys)
	}
	if hasSection(sections, "ignored") {
		report.Analysis["ignoredKeys"] = nonNil(result.IgnoredKeys)
	}
	if hasSection(sections, "usedKeys") {
		report.Analysis["usedKeys"] = nonNil(result.UsedKeys)
	}
	if hasSection(sections, "translationKeys") {
		report.Analysis["translationKeys"] = nonNil(result.TranslationKeys)
		if len(result.LanguageGaps) > 0 {
			report.Analysis["languageGaps"] = result.LanguageGaps
		}
	}
	if hasSection(sections, "config") && opts.Config != nil {
		report.Analysis["configuration"] = opts.Config
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode json report: %w", err)
	}
	return string(data) + "\n", nil
}

func missingKeys(result analyzer.AnalysisResult) []MissingKey {
	keys := make([]MissingKey, 0, len(result.MissingKeys))
	for _, key := range result.MissingKeys {
		locations := result.MissingLocations[key]
		if locations == nil {
			locations = []analyzer.TranslationKey{}
		}
		keys = append(keys, MissingKey{Key: key, Locations: locations})
	}
	return keys
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
