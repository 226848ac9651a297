// Package checker runs a complete analysis: it loads the catalogs, walks the
// source tree, extracts keys in parallel and reconciles the two sides.
package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/jenian/i18ngrd/internal/catalog"
	"github.com/jenian/i18ngrd/internal/config"
	"github.com/jenian/i18ngrd/internal/ignore"
	"github.com/jenian/i18ngrd/internal/parser"
	"github.com/jenian/i18ngrd/internal/scanner"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// maxWorkers bounds concurrent file reads and extraction
const maxWorkers = 10

// Checker wires the analysis pipeline over a filesystem
type Checker struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Outcome is the result of one run plus what was seen along the way
type Outcome struct {
	Result   analyzer.AnalysisResult
	Files    []scanner.FileInfo
	Catalog  *catalog.Catalog
	Warnings []string
}

// New creates a checker. A nil fs reads from the operating system and a nil
// logger discards output.
func New(fs afero.Fs, logger *slog.Logger) *Checker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{fs: fs, logger: logger}
}

// Run analyzes the project described by cfg, which must already be
// resolved to absolute paths. Reported file paths are relative to root.
// Unreadable locales or source directories are errors; per-file and
// per-rule problems are logged and collected as warnings.
func (c *Checker) Run(ctx context.Context, cfg config.Config, root string) (*Outcome, error) {
	out := &Outcome{}

	rules := cfg.RuleSet()
	for _, w := range rules.Warnings() {
		c.logger.Warn("skipping ignore rule", "error", w)
		out.Warnings = append(out.Warnings, w.Error())
	}

	loader := catalog.NewLoader(c.fs)
	loader.SetRules(rules)
	loader.SetLanguages(cfg.Languages)
	loader.SetLogger(c.logger)
	cat, err := loader.Load(cfg.LocalesPath)
	if err != nil {
		return nil, err
	}
	out.Catalog = cat
	out.Warnings = append(out.Warnings, cat.Warnings...)
	if cat.Empty() && len(cat.Files) > 0 {
		msg := fmt.Sprintf("translation files in %s define no keys", cfg.LocalesPath)
		c.logger.Warn(msg)
		out.Warnings = append(out.Warnings, msg)
	}

	fileScanner := scanner.NewScanner(c.fs)
	fileScanner.SetLogger(c.logger)
	if patterns := cfg.Patterns.All(); len(patterns) > 0 {
		fileScanner.SetPatterns(patterns)
	}
	fileScanner.SetExcludeDirs(cfg.ExcludeDirs)
	fileScanner.SetExcludeGlobs(cfg.ExcludeFiles)

	files, err := fileScanner.Scan(ctx, cfg.SrcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	out.Files = files
	c.logger.Info("scanned source tree", "path", cfg.SrcPath, "files", FileCounts(files))

	usages, warnings, err := c.parseFiles(ctx, files, root)
	if err != nil {
		return nil, err
	}
	out.Warnings = append(out.Warnings, warnings...)

	extracted, scanIgnored := c.filterUsages(usages, rules, cfg.IgnoreDynamicKeys)

	out.Result = analyzer.Reconcile(analyzer.Input{
		CatalogKeys:    cat.Keys(),
		Extracted:      extracted,
		Rules:          rules,
		CatalogIgnored: cat.Ignored(),
		ScanIgnored:    scanIgnored,
		Languages:      cat.Languages(),
		LanguageGaps:   cat.Gaps(),
	})
	return out, nil
}

// parseFiles extracts keys from every file with bounded parallelism.
// A file that fails contributes nothing and produces a warning.
func (c *Checker) parseFiles(ctx context.Context, files []scanner.FileInfo, root string) ([]analyzer.TranslationKey, []string, error) {
	p := parser.NewParser(c.fs)
	p.SetLogger(c.logger)

	var (
		mu       sync.Mutex
		usages   []analyzer.TranslationKey
		warnings []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		f := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found, err := p.ParseFile(f.Path, string(f.Language), root)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Warn("failed to parse file", "file", f.Path, "error", err)
				warnings = append(warnings, fmt.Sprintf("failed to parse %s: %v", f.Path, err))
				return nil
			}
			usages = append(usages, found...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sort.SliceStable(usages, func(i, j int) bool {
		if usages[i].File != usages[j].File {
			return usages[i].File < usages[j].File
		}
		if usages[i].Line != usages[j].Line {
			return usages[i].Line < usages[j].Line
		}
		return usages[i].Column < usages[j].Column
	})
	sort.Strings(warnings)
	return usages, warnings, nil
}

// filterUsages drops dynamic occurrences when disabled and moves static
// keys matched by an ignore rule out of the extracted set
func (c *Checker) filterUsages(usages []analyzer.TranslationKey, rules *ignore.RuleSet, skipDynamic bool) ([]analyzer.TranslationKey, []string) {
	kept := make([]analyzer.TranslationKey, 0, len(usages))
	seen := make(map[string]bool)
	var ignored []string

	for _, u := range usages {
		if u.IsDynamic() {
			if skipDynamic {
				continue
			}
			kept = append(kept, u)
			continue
		}
		if reason, rule := rules.Match(u.Key); reason != ignore.ReasonNone {
			if !seen[u.Key] {
				seen[u.Key] = true
				ignored = append(ignored, u.Key)
				c.logger.Debug("ignoring key", "key", u.Key, "reason", string(reason), "rule", rule, "file", u.File, "line", u.Line)
			}
			continue
		}
		kept = append(kept, u)
	}
	return kept, ignored
}

// FileCounts summarizes files per language, e.g. "3 files (html: 1, ts: 2)"
func FileCounts(files []scanner.FileInfo) string {
	counts := make(map[string]int)
	for _, f := range files {
		lang := string(f.Language)
		switch f.Language {
		case scanner.LanguageTypeScript:
			lang = "ts"
		case scanner.LanguageJavaScript:
			lang = "js"
		case "":
			lang = string(scanner.LanguageUnknown)
		}
		counts[lang]++
	}
	if len(counts) == 0 {
		return fmt.Sprintf("%d files", len(files))
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	parts := make([]string, 0, len(langs))
	for _, lang := range langs {
		parts = append(parts, fmt.Sprintf("%s: %d", lang, counts[lang]))
	}
	return fmt.Sprintf("%d files (%s)", len(files), strings.Join(parts, ", "))
}
