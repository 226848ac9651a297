package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jenian/i18ngrd/internal/ignore"
	"github.com/spf13/afero"
)

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return fs
}

func TestFlattenJSON(t *testing.T) {
	content := `{
  "app": { "title": "Title", "nested": { "deep": "x" } },
  "list": ["a", "b"],
  "empty": null,
  "count": 3,
  "flag": true,
  "none": {}
}`
	keys, err := flattenJSON([]byte(content))
	if err != nil {
		t.Fatalf("flattenJSON failed: %v", err)
	}

	expected := []string{"app.nested.deep", "app.title", "count", "empty", "flag", "list"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected %v, got %v", expected, keys)
	}
}

func TestFlattenJSON_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid":  `{"a": `,
		"array":    `["a", "b"]`,
		"scalar":   `"text"`,
		"top null": `null`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := flattenJSON([]byte(content)); err == nil {
				t.Errorf("Expected error for %s", content)
			}
		})
	}
}

func TestFlattenYAML(t *testing.T) {
	content := `
defaults: &defaults
  ok: OK
  cancel: Cancel
app:
  title: Title
  list:
    - a
    - b
  empty:
buttons: *defaults
`
	keys, err := flattenYAML([]byte(content))
	if err != nil {
		t.Fatalf("flattenYAML failed: %v", err)
	}

	expected := []string{
		"defaults.ok", "defaults.cancel",
		"app.title", "app.list", "app.empty",
		"buttons.ok", "buttons.cancel",
	}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected %v, got %v", expected, keys)
	}
}

func TestFlattenYAML_Errors(t *testing.T) {
	if _, err := flattenYAML([]byte("- a\n- b\n")); err == nil {
		t.Error("Expected error for top-level sequence")
	}
	if _, err := flattenYAML([]byte("a: [unclosed\n")); err == nil {
		t.Error("Expected error for invalid YAML")
	}
	keys, err := flattenYAML([]byte(""))
	if err != nil || len(keys) != 0 {
		t.Errorf("Expected no keys and no error for empty YAML, got %v, %v", keys, err)
	}
}

func TestLoader_Load(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/i18n/en.json":       `{"app": {"title": "Title", "subtitle": "Sub"}, "debug": {"api": "x"}}`,
		"/i18n/fr.json":       `{"app": {"title": "Titre"}}`,
		"/i18n/de.yaml":       "app:\n  title: Titel\n  subtitle: Untertitel\n",
		"/i18n/legacy.json":   `{"old": {"key": "x"}}`,
		"/i18n/broken.json":   `{"app": `,
		"/i18n/README.md":     "# docs",
		"/i18n/nested/x.json": `{"nested": "x"}`,
	})

	loader := NewLoader(fs)
	loader.SetRules(ignore.NewRuleSet(nil, []string{"debug.*"}, nil, []string{"legacy.json"}))

	cat, err := loader.Load("/i18n")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(cat.Keys(), []string{"app.subtitle", "app.title"}) {
		t.Errorf("Keys = %v", cat.Keys())
	}
	if !reflect.DeepEqual(cat.Ignored(), []string{"debug.api"}) {
		t.Errorf("Ignored = %v", cat.Ignored())
	}
	if !reflect.DeepEqual(cat.Languages(), []string{"de", "en", "fr"}) {
		t.Errorf("Languages = %v", cat.Languages())
	}
	if len(cat.Warnings) != 1 {
		t.Errorf("Expected 1 warning for broken.json, got %v", cat.Warnings)
	}

	gaps := cat.Gaps()
	if !reflect.DeepEqual(gaps, map[string][]string{"fr": {"app.subtitle"}}) {
		t.Errorf("Gaps = %v", gaps)
	}
}

func TestLoader_LanguageFilter(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/i18n/en-us.json": `{"a": {"b": "x"}}`,
		"/i18n/fr.json":    `{"a": {"c": "x"}}`,
	})

	loader := NewLoader(fs)
	loader.SetLanguages([]string{"en_US"})

	cat, err := loader.Load("/i18n")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cat.Languages(), []string{"en-US"}) {
		t.Errorf("Languages = %v", cat.Languages())
	}
	if !reflect.DeepEqual(cat.Keys(), []string{"a.b"}) {
		t.Errorf("Keys = %v", cat.Keys())
	}
	if len(cat.Gaps()) != 0 {
		t.Errorf("Single language should have no gaps, got %v", cat.Gaps())
	}
}

func TestLoader_EmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/i18n", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	cat, err := NewLoader(fs).Load("/i18n")
	if err != nil {
		t.Fatalf("Empty directory should not be an error: %v", err)
	}
	if !cat.Empty() {
		t.Error("Expected empty catalog")
	}
	if len(cat.Warnings) != 1 {
		t.Errorf("Expected a warning, got %v", cat.Warnings)
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load("/nope")
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestLoader_OsFs(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "en.json"), []byte(`{"a": {"b": "x"}}`), 0644); err != nil {
		t.Fatalf("Failed to write en.json: %v", err)
	}

	cat, err := NewLoader(nil).Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cat.Keys(), []string{"a.b"}) {
		t.Errorf("Keys = %v", cat.Keys())
	}
}

func TestLanguageFromFileName(t *testing.T) {
	tests := map[string]string{
		"en.json":       "en",
		"en-us.json":    "en-US",
		"pt_br.yaml":    "pt-BR",
		"zh-hans.yml":   "zh-Hans",
		"messages.json": "messages",
	}
	for name, want := range tests {
		if got := languageFromFileName(name); got != want {
			t.Errorf("languageFromFileName(%q) = %q, want %q", name, got, want)
		}
	}
}
