package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jenian/i18ngrd/internal/parser"
	"github.com/spf13/afero"
)

// Language represents a source language the extractor understands
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageHTML       Language = "html"
	LanguageUnknown    Language = "unknown"
)

// DefaultPatterns are the source globs scanned when none are configured
var DefaultPatterns = []string{"**/*.ts", "**/*.html"}

// DefaultExcludeDirs are skipped unless the configuration replaces them
var DefaultExcludeDirs = []string{"node_modules", "dist", ".git", ".angular", "coverage"}

// FileInfo contains information about a file to be scanned
type FileInfo struct {
	Path     string
	Language Language
}

// Scanner handles file discovery and filtering
type Scanner struct {
	fs           afero.Fs
	logger       *slog.Logger
	excludeDirs  []string // Substrings that exclude any path containing them
	excludeGlobs []string
	includeGlobs []string // Base-name globs derived from the source patterns
}

// NewScanner creates a new scanner reading through fs with default
// patterns and exclusions. A nil fs reads from the operating system.
func NewScanner(fs afero.Fs) *Scanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s := &Scanner{
		fs:     fs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.SetPatterns(DefaultPatterns)
	s.SetExcludeDirs(DefaultExcludeDirs)
	return s
}

// SetLogger sets the logger used for walk warnings
func (s *Scanner) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetPatterns sets the source globs to scan, e.g. "**/*.ts" or
// "src/**/*.component.html". Only the last path segment is matched, so
// every pattern effectively selects files by name.
func (s *Scanner) SetPatterns(patterns []string) {
	s.includeGlobs = s.includeGlobs[:0]
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		if p == "" {
			continue
		}
		if i := strings.LastIndex(p, "/"); i >= 0 {
			p = p[i+1:]
		}
		s.includeGlobs = append(s.includeGlobs, p)
	}
}

// SetExcludeGlobs sets file name globs to exclude, e.g. "*.spec.ts"
func (s *Scanner) SetExcludeGlobs(globs []string) {
	s.excludeGlobs = globs
}

// SetExcludeDirs replaces the excluded directory list
func (s *Scanner) SetExcludeDirs(dirs []string) {
	s.excludeDirs = nil
	s.AddExcludeDirs(dirs)
}

// AddExcludeDirs adds additional directories to exclude from scanning.
// Any path containing one of them is skipped.
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		dir = strings.TrimSpace(filepath.ToSlash(dir))
		if dir != "" {
			s.excludeDirs = append(s.excludeDirs, dir)
		}
	}
}

// detectLanguage determines the language from file extension
func detectLanguage(path string) Language {
	if lang := parser.LanguageForFile(path); lang != "" {
		return Language(lang)
	}
	return LanguageUnknown
}

// isExcluded checks if a path relative to the scan root contains an
// excluded directory name
func (s *Scanner) isExcluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, dir := range s.excludeDirs {
		if strings.Contains(relPath, dir) {
			return true
		}
	}
	return false
}

// matchesGlob checks if a path matches any of the glob patterns
func matchesGlob(path string, globs []string) bool {
	for _, glob := range globs {
		matched, _ := filepath.Match(glob, filepath.Base(path))
		if matched {
			return true
		}
		// Also try matching against full path
		matched, _ = filepath.Match(glob, filepath.ToSlash(path))
		if matched {
			return true
		}
	}
	return false
}

// shouldInclude checks if a file should be included based on include/exclude globs
func (s *Scanner) shouldInclude(path string) bool {
	if len(s.excludeGlobs) > 0 && matchesGlob(path, s.excludeGlobs) {
		return false
	}
	return matchesGlob(path, s.includeGlobs)
}

// Scan recursively walks a directory and returns files to parse, sorted by path.
// An unreadable root is an error; unreadable subdirectories are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, rootPath string) ([]FileInfo, error) {
	var files []FileInfo

	info, err := s.fs.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path %s is not a directory", rootPath)
	}

	err = afero.Walk(s.fs, rootPath, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == rootPath {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			relPath = path
		}
		if relPath != "." && s.isExcluded(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !s.shouldInclude(path) {
			return nil
		}

		lang := detectLanguage(path)
		if lang == LanguageUnknown {
			s.logger.Debug("no extractor for file", "file", path)
			return nil
		}

		files = append(files, FileInfo{
			Path:     path,
			Language: lang,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source directory %s: %w", rootPath, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
