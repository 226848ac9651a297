package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jenian/i18ngrd/internal/checker"
	"github.com/jenian/i18ngrd/internal/config"
	"github.com/jenian/i18ngrd/internal/output"
	"github.com/jenian/i18ngrd/internal/report"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scanOptions holds the raw scan flags. Only flags set on the command line
// override the configuration.
type scanOptions struct {
	fs      afero.Fs
	version string

	configPath   string
	localesPath  string
	srcPath      string
	format       string
	sections     []string
	ignoreKeys   []string
	languages    []string
	exitOnIssues bool
	verbose      bool
	noDynamic    bool
	reportDir    string
	metricsFile  string
	historyDB    string

	silent   bool
	noHeader bool
	noColor  bool
}

func newScanCmd(fs afero.Fs, version string) *cobra.Command {
	o := &scanOptions{fs: fs, version: version}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project for unused and missing translation keys",
		Long:  "Recursively scan a project's source tree for translation key usages and compare them with its translation catalogs.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  o.run,
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Configuration file path")
	flags.StringVarP(&o.localesPath, "locales-path", "l", "", "Path to translation files directory")
	flags.StringVarP(&o.srcPath, "src-path", "s", "", "Path to source code directory")
	flags.StringVarP(&o.format, "format", "f", "", "Output format (console|json|csv|xml|html)")
	flags.StringSliceVarP(&o.sections, "output", "o", nil, "Output sections (comma-separated)")
	flags.StringSliceVar(&o.ignoreKeys, "ignore-keys", nil, "Keys to ignore (comma-separated)")
	flags.StringSliceVar(&o.languages, "languages", nil, "Languages to check (comma-separated)")
	flags.BoolVar(&o.exitOnIssues, "exit-on-issues", false, "Exit with code 1 when unused or missing keys are found")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging and list every key")
	flags.BoolVar(&o.noDynamic, "no-dynamic", false, "Disable dynamic key detection")
	flags.StringVar(&o.reportDir, "report-dir", "", "Directory to save timestamped reports in")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "Write a Prometheus textfile with the result counters")
	flags.StringVar(&o.historyDB, "history-db", "", "Record the run in a SQLite history database")
	flags.BoolVar(&o.silent, "silent", false, "Silent mode (exit code only)")
	flags.BoolVar(&o.noHeader, "no-header", false, "Skip printing the header")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored console output")

	return cmd
}

// applyFlags overrides cfg with the flags set on the command line
func (o *scanOptions) applyFlags(flags *pflag.FlagSet, cfg config.Config) (config.Config, error) {
	if flags.Changed("locales-path") {
		cfg.LocalesPath = o.localesPath
	}
	if flags.Changed("src-path") {
		cfg.SrcPath = o.srcPath
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.format
	}
	if flags.Changed("output") {
		cfg.OutputSections = o.sections
	}
	if flags.Changed("ignore-keys") {
		cfg.IgnoreKeys = o.ignoreKeys
	}
	if flags.Changed("languages") {
		cfg.Languages = o.languages
	}
	if flags.Changed("exit-on-issues") {
		cfg.ExitOnIssues = o.exitOnIssues
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if flags.Changed("no-dynamic") {
		cfg.IgnoreDynamicKeys = o.noDynamic
	}
	if flags.Changed("report-dir") {
		cfg.OutputDir = o.reportDir
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if flags.Changed("history-db") {
		cfg.HistoryDB = o.historyDB
	}
	return cfg, cfg.Validate()
}

// loadConfig merges defaults, the configuration file, I18NGRD_* variables
// and flags, then resolves paths against root
func (o *scanOptions) loadConfig(flags *pflag.FlagSet, root string) (config.Config, string, bool, error) {
	cfg, cfgPath, err := config.Load(o.fs, root, o.configPath)
	if err != nil {
		return cfg, cfgPath, false, err
	}
	cfg, err = config.ApplyEnv(cfg, nil)
	if err != nil {
		return cfg, cfgPath, false, err
	}
	cfg, err = o.applyFlags(flags, cfg)
	if err != nil {
		return cfg, cfgPath, false, err
	}
	cfg, detected := cfg.Resolve(o.fs, root)
	return cfg, cfgPath, detected, nil
}

func (o *scanOptions) run(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	root, err := projectRoot(o.fs, path)
	if err != nil {
		return err
	}

	cfg, cfgPath, detected, err := o.loadConfig(cmd.Flags(), root)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := newLogger(stderr, cfg.Verbose, o.silent)
	if cfgPath != "" {
		logger.Debug("loaded configuration", "file", cfgPath)
	}
	if detected {
		logger.Debug("detected locales directory", "path", cfg.LocalesPath)
	}

	console := cfg.OutputFormat == "console"
	if !o.noHeader && !o.silent && console {
		printHeader(stdout, o.version)
	}
	if !o.silent {
		fmt.Fprintf(stderr, "Scanning %s...\n", relPath(root, cfg.SrcPath))
	}

	started := time.Now().UTC()
	outcome, err := checker.New(o.fs, logger).Run(cmd.Context(), cfg, root)
	if err != nil {
		return err
	}
	if !o.silent {
		fmt.Fprintf(stderr, "Found %s\n", checker.FileCounts(outcome.Files))
	}

	run := report.Run{
		ID:          uuid.NewString(),
		StartedAt:   started,
		Version:     o.version,
		Format:      cfg.OutputFormat,
		Extension:   output.Extension(cfg.OutputFormat),
		SrcPath:     relPath(root, cfg.SrcPath),
		LocalesPath: relPath(root, cfg.LocalesPath),
	}

	formatted, err := output.Format(outcome.Result, cfg.OutputFormat, cfg.OutputSections, output.Options{
		Color:   console && !o.noColor && stdout == io.Writer(os.Stdout) && output.ColorSupported(),
		Verbose: cfg.Verbose,
		Meta: output.Meta{
			GeneratedAt: run.StartedAt,
			RunID:       run.ID,
			Version:     run.Version,
			SrcPath:     run.SrcPath,
			LocalesPath: run.LocalesPath,
		},
		Config: &cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	reporters, closeAll := o.reporters(cfg, stdout, logger)
	defer closeAll()
	for _, r := range reporters {
		if err := r.Report(cmd.Context(), run, outcome.Result, formatted); err != nil {
			logger.Error("reporter failed", "reporter", fmt.Sprintf("%T", r), "error", err)
		}
	}

	if cfg.ExitOnIssues && outcome.Result.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}

// reporters builds the sinks enabled by cfg. A sink that cannot be opened
// is logged and left out.
func (o *scanOptions) reporters(cfg config.Config, stdout io.Writer, logger *slog.Logger) ([]report.Reporter, func()) {
	var reporters []report.Reporter
	closeAll := func() {}

	if !o.silent {
		reporters = append(reporters, report.NewStdout(stdout))
	}
	if cfg.OutputDir != "" {
		files := report.NewFiles(o.fs, cfg.OutputDir)
		files.SetLogger(logger)
		reporters = append(reporters, files)
	}
	if cfg.MetricsFile != "" {
		reporters = append(reporters, report.NewMetrics(cfg.MetricsFile))
	}
	if cfg.HistoryDB != "" {
		history, err := report.OpenHistory(cfg.HistoryDB)
		if err != nil {
			logger.Error("failed to open history database", "path", cfg.HistoryDB, "error", err)
		} else {
			reporters = append(reporters, history)
			closeAll = func() {
				if err := history.Close(); err != nil {
					logger.Warn("failed to close history database", "error", err)
				}
			}
		}
	}
	return reporters, closeAll
}

// projectRoot returns path as an absolute, existing directory
func projectRoot(fs afero.Fs, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	info, err := fs.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %s", absPath)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", absPath)
	}
	return absPath, nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
