package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

// formatCSV writes one row per key: type,key,status,location.
// summary and config have no tabular form and are skipped.
func formatCSV(result analyzer.AnalysisResult, sections []string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	rows := [][]string{{"type", "key", "status", "location"}}

	for _, section := range sections {
		switch section {
		case "unused":
			for _, key := range result.UnusedKeys {
				rows = append(rows, []string{"unused", key, "unused", ""})
			}
		case "missing":
			for _, key := range result.MissingKeys {
				locations := result.MissingLocations[key]
				if len(locations) == 0 {
					rows = append(rows, []string{"missing", key, "missing", ""})
					continue
				}
				for _, loc := range locations {
					rows = append(rows, []string{"missing", key, "missing", loc.Location()})
				}
			}
		case "dynamicPatterns":
			for _, p := range result.Patterns() {
				status := "unmatched"
				if len(p.Matches) > 0 {
					status = fmt.Sprintf("matched %d", len(p.Matches))
				}
				rows = append(rows, []string{"dynamic", p.Pattern, status, ""})
			}
		case "ignored":
			for _, key := range result.IgnoredKeys {
				rows = append(rows, []string{"ignored", key, "ignored", ""})
			}
		case "usedKeys":
			for _, key := range result.UsedKeys {
				rows = append(rows, []string{"used", key, "used", ""})
			}
		case "translationKeys":
			for _, key := range result.TranslationKeys {
				rows = append(rows, []string{"translation", key, "defined", ""})
			}
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write csv report: %w", err)
	}
	return b.String(), nil
}
