package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/jenian/i18ngrd/internal/languages"
	"github.com/spf13/afero"
)

// Parser reads source files and extracts translation key usages
type Parser struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewParser creates a new parser instance reading through fs.
// A nil fs reads from the operating system.
func NewParser(fs afero.Fs) *Parser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Parser{
		fs:     fs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used for debug output and per-file warnings
func (p *Parser) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// ParseFile parses a single file and extracts translation key usages.
// scanRoot is the root directory being scanned, used for calculating relative paths.
// An empty lang is detected from the file extension.
func (p *Parser) ParseFile(filePath string, lang string, scanRoot string) (usages []analyzer.TranslationKey, err error) {
	content, err := afero.ReadFile(p.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	if bytes.IndexByte(content, 0) >= 0 {
		p.logger.Debug("skipping binary file", "file", filePath)
		return []analyzer.TranslationKey{}, nil
	}

	if lang == "" {
		lang = LanguageForFile(filePath)
	}
	langInfo := languages.GetLanguageInfo(lang)
	if langInfo == nil {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	// A pathological file must not take the whole run down
	defer func() {
		if r := recover(); r != nil {
			usages = nil
			err = fmt.Errorf("failed to extract keys from %s: %v", filePath, r)
		}
	}()

	usages = extract(langInfo, relativePath(filePath, scanRoot), string(content))
	for _, u := range usages {
		p.logger.Debug("match", "file", u.File, "line", u.Line, "key", u.Key, "context", u.Context)
	}
	return usages, nil
}

// ExtractKeys extracts translation key usages from content. The language
// is detected from the extension of filePath, which is also used as the
// reported file name.
func ExtractKeys(filePath string, content string) []analyzer.TranslationKey {
	langInfo := languages.GetLanguageInfo(LanguageForFile(filePath))
	if langInfo == nil {
		return []analyzer.TranslationKey{}
	}
	return extract(langInfo, filePath, content)
}

func extract(langInfo *languages.LanguageInfo, file string, content string) []analyzer.TranslationKey {
	lines := newLineIndex(content)
	usages := []analyzer.TranslationKey{}
	seen := make(map[string]bool)

	for _, m := range languages.Extract(langInfo, content) {
		line, column := lines.position(m.Offset)

		// Strategies that find the same occurrence report the same offset
		usageKey := fmt.Sprintf("%s:%d", m.Key, m.Offset)
		if seen[usageKey] {
			continue
		}
		seen[usageKey] = true

		usages = append(usages, analyzer.TranslationKey{
			Key:     m.Key,
			File:    file,
			Line:    line,
			Column:  column,
			Context: m.Context,
		})
	}

	return usages
}

// relativePath returns filePath relative to scanRoot when possible
func relativePath(filePath, scanRoot string) string {
	if scanRoot == "" {
		return filepath.ToSlash(filePath)
	}
	absScanRoot, err1 := filepath.Abs(scanRoot)
	absFilePath, err2 := filepath.Abs(filePath)
	if err1 == nil && err2 == nil {
		if rel, err := filepath.Rel(absScanRoot, absFilePath); err == nil && rel != "" {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filePath)
}

// lineIndex converts byte offsets into 1-based line and column numbers
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{content: content, starts: starts}
}

func (li lineIndex) position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.content) {
		offset = len(li.content)
	}
	// Index of the last line start <= offset
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	column = utf8.RuneCountInString(li.content[li.starts[i]:offset]) + 1
	return i + 1, column
}
