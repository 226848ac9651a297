package pattern

import "testing"

func TestMatchesWildcard(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		pattern string
		want    bool
	}{
		{"exact", "app.title", "app.title", true},
		{"exact without wildcard differs", "app.title", "app.name", false},
		{"single star one segment", "debug.api", "debug.*", true},
		{"single star stops at dot", "debug.api.request", "debug.*", false},
		{"double star crosses dots", "debug.api.request", "debug.**", true},
		{"single star matches empty", "debug.", "debug.*", true},
		{"star in middle", "user.profile.name", "user.*.name", true},
		{"star in middle too deep", "user.a.b.name", "user.*.name", false},
		{"double star in middle", "user.a.b.name", "user.**.name", true},
		{"prefix star", "form.error.required", "*.error.required", true},
		{"metacharacters escaped", "a+b.c", "a+b.*", true},
		{"brackets escaped", "list[0].x", "list[0].*", true},
		{"no match", "other.key", "debug.*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesWildcard(tt.key, tt.pattern); got != tt.want {
				t.Errorf("MatchesWildcard(%q, %q) = %v, want %v", tt.key, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestKeyMatchesDynamicPattern(t *testing.T) {
	tests := []struct {
		key     string
		pattern string
		want    bool
	}{
		{"country.code.21", "country.code.*", true},
		{"country.code.", "country.code.*", false},
		{"country.code.21.extra", "country.code.*", false},
		{"errors.network.message", "errors.*.message", true},
		{"errors.message", "errors.*.message", false},
		{"status.active.label", "*.active.label", true},
		{"active.label", "*.active.label", false},
		{"active.label", "*.label", true},
		{"a.b", "a.b", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"~"+tt.pattern, func(t *testing.T) {
			if got := KeyMatchesDynamicPattern(tt.key, tt.pattern); got != tt.want {
				t.Errorf("KeyMatchesDynamicPattern(%q, %q) = %v, want %v", tt.key, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestWildcardAndDynamicDiffer(t *testing.T) {
	// The same pattern accepts an empty hole as an ignore rule but not as a dynamic key
	if !MatchesWildcard("prefix.", "prefix.*") {
		t.Error("ignore semantics should let * match the empty string")
	}
	if KeyMatchesDynamicPattern("prefix.", "prefix.*") {
		t.Error("dynamic semantics should require at least one character per hole")
	}
}

func TestIsUsableDynamic(t *testing.T) {
	tests := map[string]bool{
		"*":              false,
		"":               false,
		"a":              false,
		"a.b":            false,
		"country.code.*": true,
		"*.title":        true,
		"**":             true,
	}
	for p, want := range tests {
		if got := IsUsableDynamic(p); got != want {
			t.Errorf("IsUsableDynamic(%q) = %v, want %v", p, got, want)
		}
	}
}
