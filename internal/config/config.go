package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jenian/i18ngrd/internal/ignore"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultLocalesPath is used when no locales path is configured or detected
const DefaultLocalesPath = "src/assets/i18n"

// PackageJSONKey is the package.json entry that may hold the configuration
const PackageJSONKey = "angular-translation-checker"

// FileNames are the configuration files looked up in the project root, in order
var FileNames = []string{
	".i18ngrd.yaml",
	".i18ngrd.yml",
	"i18ngrd.config.json",
	"angular-translation-checker.config.json",
	"i18n-checker.config.json",
	"translation-checker.config.json",
}

// LocalesCandidates are tried in order when no locales path is configured
var LocalesCandidates = []string{
	"src/assets/i18n",
	"src/assets/locales",
	"public/i18n",
	"assets/i18n",
	"i18n",
	"locales",
}

// Output formats
var Formats = []string{"console", "json", "csv", "xml", "html"}

// Output sections
var Sections = []string{
	"summary", "dynamicPatterns", "ignored", "unused",
	"missing", "usedKeys", "translationKeys", "config",
}

// Patterns holds the source globs per language
type Patterns struct {
	TypeScript []string `yaml:"typescript" json:"typescript"`
	HTML       []string `yaml:"html" json:"html"`
	JavaScript []string `yaml:"javascript" json:"javascript"`
}

// All returns every configured glob
func (p Patterns) All() []string {
	all := make([]string, 0, len(p.TypeScript)+len(p.HTML)+len(p.JavaScript))
	all = append(all, p.TypeScript...)
	all = append(all, p.HTML...)
	all = append(all, p.JavaScript...)
	return all
}

// Config represents the i18ngrd configuration
type Config struct {
	LocalesPath string   `yaml:"localesPath" json:"localesPath"`
	SrcPath     string   `yaml:"srcPath" json:"srcPath"`
	Patterns    Patterns `yaml:"patterns" json:"patterns"`

	IgnoreKeys        []string `yaml:"ignoreKeys" json:"ignoreKeys"`
	IgnorePatterns    []string `yaml:"ignorePatterns" json:"ignorePatterns"`
	IgnoreRegex       []string `yaml:"ignoreRegex" json:"ignoreRegex"`
	IgnoreFiles       []string `yaml:"ignoreFiles" json:"ignoreFiles"`
	IgnoreDynamicKeys bool     `yaml:"ignoreDynamicKeys" json:"ignoreDynamicKeys"`

	ExcludeDirs  []string `yaml:"excludeDirs" json:"excludeDirs"`
	ExcludeFiles []string `yaml:"excludeFiles" json:"excludeFiles"` // File name globs, e.g. *.spec.ts
	Languages    []string `yaml:"languages" json:"languages"`

	OutputFormat   string   `yaml:"outputFormat" json:"outputFormat"`
	OutputSections []string `yaml:"outputSections" json:"outputSections"`
	OutputDir      string   `yaml:"outputDir" json:"outputDir,omitempty"`
	ExitOnIssues   bool     `yaml:"exitOnIssues" json:"exitOnIssues"`
	Verbose        bool     `yaml:"verbose" json:"verbose"`

	MetricsFile string `yaml:"metricsFile" json:"metricsFile,omitempty"`
	HistoryDB   string `yaml:"historyDB" json:"historyDB,omitempty"`
}

// ValidationError reports an explicit but invalid configuration value
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Default returns the default configuration. LocalesPath is left empty so
// that Resolve can auto-detect it.
func Default() Config {
	return Config{
		SrcPath: "src",
		Patterns: Patterns{
			TypeScript: []string{"**/*.ts"},
			HTML:       []string{"**/*.html"},
		},
		IgnoreKeys:     []string{},
		IgnorePatterns: []string{},
		IgnoreRegex:    []string{},
		IgnoreFiles:    []string{},
		ExcludeDirs:    []string{"node_modules", "dist", ".git", ".angular", "coverage"},
		ExcludeFiles:   []string{},
		Languages:      []string{},
		OutputFormat:   "console",
		OutputSections: []string{"summary", "dynamicPatterns", "ignored", "unused", "missing"},
	}
}

// Load returns the defaults merged with the configuration file found in
// rootPath, or with explicitPath when given. It returns the path of the
// file used, "" when none was found. A missing explicit file is an error;
// a missing auto-detected file is not.
func Load(fs afero.Fs, rootPath, explicitPath string) (Config, string, error) {
	cfg := Default()

	if explicitPath != "" {
		path := explicitPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootPath, path)
		}
		if _, err := fs.Stat(path); err != nil {
			return cfg, "", fmt.Errorf("configuration file not found: %s", path)
		}
		if err := loadFile(fs, path, &cfg); err != nil {
			return cfg, path, err
		}
		return cfg, path, cfg.Validate()
	}

	for _, name := range FileNames {
		path := filepath.Join(rootPath, name)
		if _, err := fs.Stat(path); err != nil {
			continue
		}
		if err := loadFile(fs, path, &cfg); err != nil {
			return cfg, path, err
		}
		return cfg, path, cfg.Validate()
	}

	path := filepath.Join(rootPath, "package.json")
	found, err := loadPackageJSON(fs, path, &cfg)
	if err != nil {
		return cfg, path, err
	}
	if found {
		return cfg, path, cfg.Validate()
	}

	return cfg, "", nil
}

// loadFile decodes a YAML or JSON configuration file over cfg. Fields
// absent from the file keep their current value.
func loadFile(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	// JSON is valid YAML, but tab-indented JSON is not
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadPackageJSON decodes the PackageJSONKey entry of package.json, if any
func loadPackageJSON(fs afero.Fs, path string, cfg *Config) (bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(data, &pkg); err != nil {
		// Not our file to validate
		return false, nil
	}
	raw, ok := pkg[PackageJSONKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return true, fmt.Errorf("failed to parse %q in %s: %w", PackageJSONKey, path, err)
	}
	return true, nil
}

// Validate checks enumerated fields. Ignore regexes are not checked here;
// invalid ones are skipped with a warning when the rules are built.
func (c Config) Validate() error {
	if !contains(Formats, c.OutputFormat) {
		return &ValidationError{
			Field:  "outputFormat",
			Reason: fmt.Sprintf("invalid value %q, valid options: %s", c.OutputFormat, strings.Join(Formats, ", ")),
		}
	}
	for _, section := range c.OutputSections {
		if !contains(Sections, section) {
			return &ValidationError{
				Field:  "outputSections",
				Reason: fmt.Sprintf("invalid section %q, valid options: %s", section, strings.Join(Sections, ", ")),
			}
		}
	}
	return nil
}

// Resolve makes SrcPath, LocalesPath and the report destinations absolute
// against rootPath. An
// empty LocalesPath is auto-detected among LocalesCandidates, falling back
// to DefaultLocalesPath. The second return value reports detection.
func (c Config) Resolve(fs afero.Fs, rootPath string) (Config, bool) {
	detected := false
	if c.LocalesPath == "" {
		c.LocalesPath = DefaultLocalesPath
		if found := DetectLocalesPath(fs, rootPath); found != "" {
			c.LocalesPath = found
			detected = true
		}
	}
	c.LocalesPath = resolvePath(rootPath, c.LocalesPath)
	c.SrcPath = resolvePath(rootPath, c.SrcPath)
	c.OutputDir = resolvePath(rootPath, c.OutputDir)
	c.MetricsFile = resolvePath(rootPath, c.MetricsFile)
	c.HistoryDB = resolvePath(rootPath, c.HistoryDB)
	return c, detected
}

// DetectLocalesPath returns the first existing candidate directory under
// rootPath, or "" if none exists
func DetectLocalesPath(fs afero.Fs, rootPath string) string {
	for _, candidate := range LocalesCandidates {
		if ok, _ := afero.DirExists(fs, filepath.Join(rootPath, candidate)); ok {
			return candidate
		}
	}
	return ""
}

// RuleSet builds the ignore rules described by the configuration
func (c Config) RuleSet() *ignore.RuleSet {
	return ignore.NewRuleSet(c.IgnoreKeys, c.IgnorePatterns, c.IgnoreRegex, c.IgnoreFiles)
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
