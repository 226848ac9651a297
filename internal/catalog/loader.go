package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jenian/i18ngrd/internal/ignore"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

// Loader handles loading and flattening translation catalog files
type Loader struct {
	fs        afero.Fs
	rules     *ignore.RuleSet
	languages map[string]bool
	logger    *slog.Logger
}

// NewLoader creates a new catalog loader reading through fs.
// A nil fs reads from the operating system.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{
		fs:     fs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetRules sets the ignore rules applied to file names and keys
func (l *Loader) SetRules(rules *ignore.RuleSet) {
	l.rules = rules
}

// SetLanguages restricts loading to the given languages. Names are
// compared after normalization, so "en_us" selects "en-US.json".
func (l *Loader) SetLanguages(langs []string) {
	l.languages = nil
	for _, lang := range langs {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		if l.languages == nil {
			l.languages = make(map[string]bool)
		}
		l.languages[normalizeLanguage(lang)] = true
	}
}

// SetLogger sets the logger used for per-file warnings
func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// findCatalogFiles lists the catalog files directly inside dir
func (l *Loader) findCatalogFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if detectFileType(name) == "" {
			continue
		}
		if l.rules.ShouldIgnoreFile(name) {
			l.logger.Debug("ignoring translation file", "file", name)
			continue
		}
		if l.languages != nil && !l.languages[languageFromFileName(name)] {
			l.logger.Debug("skipping translation file for unselected language", "file", name)
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// Load loads every catalog file in dir and merges their keys.
// An unreadable directory is an error; a directory without catalog files
// or a file that fails to parse only produces a warning.
func (l *Loader) Load(dir string) (*Catalog, error) {
	files, err := l.findCatalogFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory %s: %w", dir, err)
	}

	cat := newCatalog()
	if len(files) == 0 {
		cat.warn(l.logger, fmt.Sprintf("no translation files found in %s", dir))
		return cat, nil
	}

	for _, path := range files {
		content, err := afero.ReadFile(l.fs, path)
		if err != nil {
			cat.warn(l.logger, fmt.Sprintf("could not read %s: %v", filepath.Base(path), err))
			continue
		}

		keys, err := flattenCatalog(content, detectFileType(path))
		if err != nil {
			cat.warn(l.logger, fmt.Sprintf("could not parse %s: %v", filepath.Base(path), err))
			continue
		}

		kept, ignored := l.rules.Filter(keys)
		cat.add(File{
			Language: languageFromFileName(filepath.Base(path)),
			Path:     path,
			Keys:     kept,
		}, ignored)

		l.logger.Debug("processed translation file", "file", filepath.Base(path), "keys", len(kept), "ignored", len(ignored))
	}

	return cat, nil
}

func (c *Catalog) warn(logger *slog.Logger, msg string) {
	c.Warnings = append(c.Warnings, msg)
	logger.Warn(msg)
}

// languageFromFileName derives a language tag from a catalog file name:
// en.json -> en, pt_br.yaml -> pt-BR. Names that are not valid tags,
// such as messages.json, are kept as they are.
func languageFromFileName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return normalizeLanguage(stem)
}

func normalizeLanguage(name string) string {
	if tag, err := language.Parse(name); err == nil {
		return tag.String()
	}
	return name
}
