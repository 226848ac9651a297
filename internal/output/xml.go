package output

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

type xmlReport struct {
	XMLName     xml.Name `xml:"translationAnalysis"`
	GeneratedAt string   `xml:"generatedAt,attr,omitempty"`
	RunID       string   `xml:"runId,attr,omitempty"`
	Version     string   `xml:"version,attr,omitempty"`

	Summary         *xmlSummary   `xml:"summary,omitempty"`
	DynamicPatterns *xmlPatterns  `xml:"dynamicPatterns,omitempty"`
	Ignored         *xmlKeyList   `xml:"ignored,omitempty"`
	Unused          *xmlKeyList   `xml:"unused,omitempty"`
	Missing         *xmlMissing   `xml:"missing,omitempty"`
	Used            *xmlKeyList   `xml:"usedKeys,omitempty"`
	Translation     *xmlKeyList   `xml:"translationKeys,omitempty"`
	Gaps            []xmlLanguage `xml:"languageGap,omitempty"`
}

type xmlSummary struct {
	Languages          string `xml:"languages,attr,omitempty"`
	TotalKeys          int    `xml:"totalKeys"`
	UsedKeys           int    `xml:"usedKeys"`
	DynamicMatchedKeys int    `xml:"dynamicMatchedKeys"`
	IgnoredKeys        int    `xml:"ignoredKeys"`
	UnusedKeys         int    `xml:"unusedKeys"`
	MissingKeys        int    `xml:"missingKeys"`
	Coverage           int    `xml:"coverage"`
}

type xmlKeyList struct {
	Count int      `xml:"count,attr"`
	Keys  []string `xml:"key"`
}

type xmlMissing struct {
	Count int          `xml:"count,attr"`
	Keys  []xmlMissKey `xml:"key"`
}

type xmlMissKey struct {
	Name      string        `xml:"name,attr"`
	Locations []xmlLocation `xml:"location"`
}

type xmlLocation struct {
	File    string `xml:"file,attr"`
	Line    int    `xml:"line,attr"`
	Column  int    `xml:"column,attr,omitempty"`
	Context string `xml:"context,attr,omitempty"`
}

type xmlPatterns struct {
	Count    int          `xml:"count,attr"`
	Patterns []xmlPattern `xml:"pattern"`
}

type xmlPattern struct {
	Value   string   `xml:"value,attr"`
	Matches []string `xml:"match"`
}

type xmlLanguage struct {
	Language string   `xml:"language,attr"`
	Keys     []string `xml:"key"`
}

func formatXML(result analyzer.AnalysisResult, sections []string, opts Options) (string, error) {
	report := xmlReport{
		GeneratedAt: timestamp(opts.Meta),
		RunID:       opts.Meta.RunID,
		Version:     opts.Meta.Version,
	}

	if hasSection(sections, "summary") {
		report.Summary = &xmlSummary{
			Languages:          strings.Join(result.Languages, ","),
			TotalKeys:          result.TotalKeys,
			UsedKeys:           result.UsedKeysCount,
			DynamicMatchedKeys: result.DynamicMatchedKeysCount,
			IgnoredKeys:        result.IgnoredKeysCount,
			UnusedKeys:         len(result.UnusedKeys),
			MissingKeys:        len(result.MissingKeys),
			Coverage:           result.Coverage,
		}
	}
	if hasSection(sections, "dynamicPatterns") {
		patterns := &xmlPatterns{Count: len(result.DynamicPatterns)}
		for _, p := range result.Patterns() {
			patterns.Patterns = append(patterns.Patterns, xmlPattern{Value: p.Pattern, Matches: p.Matches})
		}
		report.DynamicPatterns = patterns
	}
	if hasSection(sections, "ignored") {
		report.Ignored = keyList(result.IgnoredKeys)
	}
	if hasSection(sections, "unused") {
		report.Unused = keyList(result.UnusedKeys)
	}
	if hasSection(sections, "missing") {
		missing := &xmlMissing{Count: len(result.MissingKeys)}
		for _, key := range result.MissingKeys {
			k := xmlMissKey{Name: key}
			for _, loc := range result.MissingLocations[key] {
				k.Locations = append(k.Locations, xmlLocation{File: loc.File, Line: loc.Line, Column: loc.Column, Context: loc.Context})
			}
			missing.Keys = append(missing.Keys, k)
		}
		report.Missing = missing
	}
	if hasSection(sections, "usedKeys") {
		report.Used = keyList(result.UsedKeys)
	}
	if hasSection(sections, "translationKeys") {
		report.Translation = keyList(result.TranslationKeys)
		for _, lang := range result.Languages {
			if gaps, ok := result.LanguageGaps[lang]; ok {
				report.Gaps = append(report.Gaps, xmlLanguage{Language: lang, Keys: gaps})
			}
		}
	}

	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode xml report: %w", err)
	}
	return xml.Header + string(data) + "\n", nil
}

func keyList(keys []string) *xmlKeyList {
	return &xmlKeyList{Count: len(keys), Keys: keys}
}

