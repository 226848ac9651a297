package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds raw I18NGRD_* values. Pointers stay nil when the
// variable is unset so that only present values override the file.
type envOverrides struct {
	LocalesPath       *string  `env:"I18NGRD_LOCALES_PATH"`
	SrcPath           *string  `env:"I18NGRD_SRC_PATH"`
	IgnoreKeys        []string `env:"I18NGRD_IGNORE_KEYS" envSeparator:","`
	IgnorePatterns    []string `env:"I18NGRD_IGNORE_PATTERNS" envSeparator:","`
	IgnoreRegex       []string `env:"I18NGRD_IGNORE_REGEX" envSeparator:","`
	IgnoreDynamicKeys *bool    `env:"I18NGRD_IGNORE_DYNAMIC_KEYS"`
	ExcludeDirs       []string `env:"I18NGRD_EXCLUDE_DIRS" envSeparator:","`
	Languages         []string `env:"I18NGRD_LANGUAGES" envSeparator:","`
	OutputFormat      *string  `env:"I18NGRD_FORMAT"`
	OutputSections    []string `env:"I18NGRD_SECTIONS" envSeparator:","`
	OutputDir         *string  `env:"I18NGRD_OUTPUT_DIR"`
	ExitOnIssues      *bool    `env:"I18NGRD_EXIT_ON_ISSUES"`
	Verbose           *bool    `env:"I18NGRD_VERBOSE"`
	MetricsFile       *string  `env:"I18NGRD_METRICS_FILE"`
	HistoryDB         *string  `env:"I18NGRD_HISTORY_DB"`
}

// ApplyEnv overrides cfg with I18NGRD_* variables. A nil environ reads the
// process environment.
func ApplyEnv(cfg Config, environ map[string]string) (Config, error) {
	var e envOverrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	setString(&cfg.LocalesPath, e.LocalesPath)
	setString(&cfg.SrcPath, e.SrcPath)
	setString(&cfg.OutputFormat, e.OutputFormat)
	setString(&cfg.OutputDir, e.OutputDir)
	setString(&cfg.MetricsFile, e.MetricsFile)
	setString(&cfg.HistoryDB, e.HistoryDB)

	setBool(&cfg.IgnoreDynamicKeys, e.IgnoreDynamicKeys)
	setBool(&cfg.ExitOnIssues, e.ExitOnIssues)
	setBool(&cfg.Verbose, e.Verbose)

	setList(&cfg.IgnoreKeys, e.IgnoreKeys)
	setList(&cfg.IgnorePatterns, e.IgnorePatterns)
	setList(&cfg.IgnoreRegex, e.IgnoreRegex)
	setList(&cfg.ExcludeDirs, e.ExcludeDirs)
	setList(&cfg.Languages, e.Languages)
	setList(&cfg.OutputSections, e.OutputSections)

	return cfg, cfg.Validate()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}
