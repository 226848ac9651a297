package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func TestParser_TypeScript_StaticKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	code := `import { Component } from '@angular/core';

export class AppComponent {
  title = this.translate.instant('app.title');

  load() {
    this.translateService.get('app.loading').subscribe();
  }
}
`
	writeFile(t, fs, "/repo/src/app.component.ts", code)

	parser := NewParser(fs)
	usages, err := parser.ParseFile("/repo/src/app.component.ts", "typescript", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	expected := []analyzer.TranslationKey{
		{Key: "app.title", File: "src/app.component.ts", Line: 4, Column: 35, Context: analyzer.ContextStatic},
		{Key: "app.loading", File: "src/app.component.ts", Line: 7, Column: 32, Context: analyzer.ContextStatic},
	}
	if len(usages) != len(expected) {
		t.Fatalf("Expected %d usages, got %d: %+v", len(expected), len(usages), usages)
	}
	for i, want := range expected {
		if usages[i] != want {
			t.Errorf("usage %d = %+v, want %+v", i, usages[i], want)
		}
	}
}

func TestParser_DedupSameOccurrence(t *testing.T) {
	fs := afero.NewMemMapFs()
	// Matched by the service, flexible and standalone strategies
	writeFile(t, fs, "/repo/a.ts", `this.translate.instant('ERRORS.NETWORK');`)

	usages, err := NewParser(fs).ParseFile("/repo/a.ts", "", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 1 {
		t.Fatalf("Expected 1 usage, got %d: %+v", len(usages), usages)
	}
	if usages[0].Context != analyzer.ContextStatic {
		t.Errorf("Expected static context to win, got %q", usages[0].Context)
	}
}

func TestParser_KeepsOccurrencesOnDifferentLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/a.html", "{{ 'a.b' | translate }}\n{{ 'a.b' | translate }}\n")

	usages, err := NewParser(fs).ParseFile("/repo/a.html", "html", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("Expected 2 usages, got %d", len(usages))
	}
	if usages[0].Line != 1 || usages[1].Line != 2 {
		t.Errorf("Unexpected lines: %d, %d", usages[0].Line, usages[1].Line)
	}
}

func TestParser_KeepsRepeatsOnSameLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/a.html", "<p>{{ 'a.b' | translate }} / {{ 'a.b' | translate }}</p>\n")

	usages, err := NewParser(fs).ParseFile("/repo/a.html", "html", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("Expected 2 usages, got %d: %+v", len(usages), usages)
	}
	if usages[0].Line != 1 || usages[1].Line != 1 || usages[0].Column >= usages[1].Column {
		t.Errorf("Unexpected positions: %+v", usages)
	}
}

func TestParser_DynamicPattern(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/country.ts", "const label = this.translate.instant(`country.code.${code}`);\n")

	usages, err := NewParser(fs).ParseFile("/repo/country.ts", "typescript", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 1 {
		t.Fatalf("Expected 1 usage, got %d: %+v", len(usages), usages)
	}
	if usages[0].Key != "country.code.*" || !usages[0].IsDynamic() {
		t.Errorf("Expected dynamic country.code.*, got %+v", usages[0])
	}
}

func TestParser_BinaryFileSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/bin.ts", "'a.b' | translate\x00\x01")

	usages, err := NewParser(fs).ParseFile("/repo/bin.ts", "typescript", "/repo")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 0 {
		t.Errorf("Expected no usages from binary content, got %+v", usages)
	}
}

func TestParser_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/main.go", `package main`)

	parser := NewParser(fs)
	if _, err := parser.ParseFile("/repo/missing.ts", "typescript", "/repo"); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := parser.ParseFile("/repo/main.go", "", "/repo"); err == nil {
		t.Error("Expected error for unsupported language")
	}
}

func TestParser_OsFs(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(filePath, []byte(`<p translate="page.footer"></p>`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	usages, err := NewParser(nil).ParseFile(filePath, "html", tmpDir)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(usages) != 1 || usages[0].File != "page.html" {
		t.Errorf("Expected page.footer in page.html, got %+v", usages)
	}
}

func TestExtractKeys(t *testing.T) {
	usages := ExtractKeys("src/app/nav.component.html", "<nav>\n  <a>{{ 'nav.home' | translate }}</a>\n</nav>")
	if len(usages) != 1 {
		t.Fatalf("Expected 1 usage, got %d", len(usages))
	}
	got := usages[0]
	if got.Key != "nav.home" || got.File != "src/app/nav.component.html" || got.Line != 2 || got.Column != 10 {
		t.Errorf("Unexpected usage: %+v", got)
	}

	if usages := ExtractKeys("README.md", "'a.b' | translate"); len(usages) != 0 {
		t.Errorf("Expected no usages for unsupported file, got %+v", usages)
	}
}

func TestExtractKeys_ConcatenatedPipeIsDynamicOnly(t *testing.T) {
	content := "<b>{{ 'status.' + s + '.label' | translate }}</b>\n<i>{{ prefix + '.title' | translate }}</i>\n"

	var keys []string
	for _, u := range ExtractKeys("a.component.html", content) {
		if u.Context != analyzer.ContextDynamic {
			t.Errorf("Unexpected %s key %q", u.Context, u.Key)
		}
		keys = append(keys, u.Key)
	}
	if len(keys) != 2 || keys[0] != "status.*.label" || keys[1] != "*.title" {
		t.Errorf("Expected the two dynamic patterns, got %v", keys)
	}

	result := analyzer.Reconcile(analyzer.Input{
		CatalogKeys: []string{"status.active.label", "home.title"},
		Extracted:   ExtractKeys("a.component.html", content),
	})
	if len(result.MissingKeys) != 0 || len(result.UnusedKeys) != 0 {
		t.Errorf("Expected no issues, got missing=%v unused=%v", result.MissingKeys, result.UnusedKeys)
	}
}

func TestExtractKeys_GetOnOtherReceivers(t *testing.T) {
	content := "const user = this.cache.get(`user.${id}`);\n"
	if usages := ExtractKeys("a.service.ts", content); len(usages) != 0 {
		t.Fatalf("Expected no keys, got %+v", usages)
	}

	result := analyzer.Reconcile(analyzer.Input{
		CatalogKeys: []string{"user.profile"},
		Extracted:   ExtractKeys("a.service.ts", content),
	})
	if len(result.UnusedKeys) != 1 || result.UnusedKeys[0] != "user.profile" {
		t.Errorf("Expected user.profile unused, got %v", result.UnusedKeys)
	}
}

func TestExtractKeys_ConcatenationWithCall(t *testing.T) {
	content := "label = this.translate.instant('menu.' + getType(x));\n"

	result := analyzer.Reconcile(analyzer.Input{
		CatalogKeys: []string{"menu.file"},
		Extracted:   ExtractKeys("a.component.ts", content),
	})
	if len(result.UnusedKeys) != 0 {
		t.Errorf("Expected menu.file matched dynamically, got unused=%v", result.UnusedKeys)
	}
	if len(result.DynamicPatterns) != 1 || result.DynamicPatterns[0] != "menu.*" {
		t.Errorf("DynamicPatterns = %v", result.DynamicPatterns)
	}
}

func TestLanguageForFile(t *testing.T) {
	tests := map[string]string{
		"a.ts":           "typescript",
		"a.component.TS": "typescript",
		"a.js":           "javascript",
		"a.html":         "html",
		"a.go":           "",
		"Makefile":       "",
	}
	for path, want := range tests {
		if got := LanguageForFile(path); got != want {
			t.Errorf("LanguageForFile(%q) = %q, want %q", path, got, want)
		}
	}
}
