package languages

import (
	"testing"
)

func TestGetLanguageInfo(t *testing.T) {
	tests := []struct {
		lang       string
		strategies int
		wantNil    bool
	}{
		{lang: "typescript", strategies: 6},
		{lang: "javascript", strategies: 6},
		{lang: "html", strategies: 3},
		{lang: "python", wantNil: true},
		{lang: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			info := GetLanguageInfo(tt.lang)
			if tt.wantNil {
				if info != nil {
					t.Errorf("Expected nil for %q, got %+v", tt.lang, info)
				}
				return
			}
			if info == nil {
				t.Fatalf("Expected language info for %q", tt.lang)
			}
			if info.Name != tt.lang {
				t.Errorf("Name = %q, want %q", info.Name, tt.lang)
			}
			if len(info.Strategies) != tt.strategies {
				t.Errorf("Expected %d strategies, got %d", tt.strategies, len(info.Strategies))
			}
		})
	}
}

func TestExtract_NilAndEmpty(t *testing.T) {
	if got := Extract(nil, "'a.b' | translate"); got != nil {
		t.Errorf("Expected nil for nil info, got %v", got)
	}
	if got := Extract(GetLanguageInfo("html"), ""); got != nil {
		t.Errorf("Expected nil for empty content, got %v", got)
	}
}

func TestExtract_OrderedByOffset(t *testing.T) {
	content := "{{ 'b.second' | translate }}\n{{ 'a.first' | translate }}"
	matches := Extract(GetLanguageInfo("html"), content)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(matches), matches)
	}
	if matches[0].Key != "b.second" || matches[1].Key != "a.first" {
		t.Errorf("Matches should follow source order, got %v", matches)
	}
	if matches[0].Offset >= matches[1].Offset {
		t.Errorf("Offsets should increase, got %d then %d", matches[0].Offset, matches[1].Offset)
	}
}

func TestIsDottedKey(t *testing.T) {
	tests := map[string]bool{
		"a.b":             true,
		"app.title-main":  true,
		"ERRORS.NETWORK":  true,
		"single":          false,
		"/api/users":      false,
		"a..b":            false,
		".a":              false,
		"a.b.":            false,
		"has space.x":     false,
		"country.code.21": true,
	}
	for s, want := range tests {
		if got := IsDottedKey(s); got != want {
			t.Errorf("IsDottedKey(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a.b"`, "a.b"},
		{`'a.b'`, "a.b"},
		{"`a.b`", "a.b"},
		{"a.b", "a.b"},
		{`"a.b'`, `"a.b'`},
		{`"`, `"`},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := trimQuotes(tt.input); got != tt.expected {
				t.Errorf("trimQuotes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
