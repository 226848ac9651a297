package languages

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Match represents a translation key candidate found in file content
type Match struct {
	Key     string
	Offset  int    // Byte offset of the key in the content
	Context string // One of the analyzer Context* constants
}

// Strategy finds key candidates in the content of a single file
type Strategy func(content string) []Match

// LanguageInfo contains the extraction strategies for a language
type LanguageInfo struct {
	Name       string
	Strategies []Strategy
}

// GetLanguageInfo returns the extraction strategies for a given language
func GetLanguageInfo(lang string) *LanguageInfo {
	switch lang {
	case "typescript", "javascript":
		return &LanguageInfo{
			Name: lang,
			Strategies: []Strategy{
				ExtractPipeKeys,
				ExtractServiceCalls,
				ExtractFlexibleCalls,
				ExtractStandaloneKeys,
				ExtractConstantKeys,
				ExtractDynamicPatterns,
			},
		}
	case "html":
		return &LanguageInfo{
			Name: lang,
			Strategies: []Strategy{
				ExtractPipeKeys,
				ExtractDirectiveKeys,
				ExtractDynamicPatterns,
			},
		}
	default:
		return nil
	}
}

// Extract runs every strategy of info over content and returns the matches
// ordered by offset. Keys are trimmed and empty keys dropped.
func Extract(info *LanguageInfo, content string) []Match {
	if info == nil || content == "" {
		return nil
	}

	var results []Match
	for _, strategy := range info.Strategies {
		for _, m := range strategy(content) {
			trimmed := strings.TrimLeftFunc(m.Key, unicode.IsSpace)
			m.Offset += len(m.Key) - len(trimmed)
			m.Key = strings.TrimRightFunc(trimmed, unicode.IsSpace)
			if m.Key == "" {
				continue
			}
			results = append(results, m)
		}
	}

	// Strategies run in priority order, so a stable sort keeps the
	// preferred context first for matches at the same offset
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Offset < results[j].Offset
	})
	return results
}

// dottedKeyRegex accepts segment.segment[.segment...] keys
var dottedKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(?:\.[A-Za-z0-9_-]+)+$`)

// IsDottedKey reports whether s has the shape of a nested catalog key
func IsDottedKey(s string) bool {
	return dottedKeyRegex.MatchString(s)
}

var fileLikeSuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".json", ".html", ".ts", ".js", ".css", ".scss",
}

// looksLikeFileName reports whether a dotted string is more likely a
// file name than a translation key
func looksLikeFileName(s string) bool {
	lower := strings.ToLower(s)
	for _, suffix := range fileLikeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// trimQuotes removes surrounding quotes from a string
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// findGroups returns the first non-empty capture group of every match of
// re together with its offset
func findGroups(re *regexp.Regexp, content string) []Match {
	var results []Match
	for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
		for g := 1; g*2+1 < len(loc); g++ {
			start, end := loc[g*2], loc[g*2+1]
			if start < 0 || start == end {
				continue
			}
			results = append(results, Match{Key: content[start:end], Offset: start})
			break
		}
	}
	return results
}
