package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jenian/i18ngrd/internal/config"
	"github.com/jenian/i18ngrd/internal/report"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newHistoryCmd(fs afero.Fs) *cobra.Command {
	var (
		configPath string
		historyDB  string
		limit      int
		runID      string
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "List recorded analysis runs",
		Long:  "List the analysis runs recorded in the history database, newest first, or the issues of a single run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			root, err := projectRoot(fs, path)
			if err != nil {
				return err
			}

			dbPath := historyDB
			if dbPath == "" {
				cfg, _, err := config.Load(fs, root, configPath)
				if err != nil {
					return err
				}
				if cfg, err = config.ApplyEnv(cfg, nil); err != nil {
					return err
				}
				cfg, _ = cfg.Resolve(fs, root)
				dbPath = cfg.HistoryDB
			}
			if dbPath == "" {
				return fmt.Errorf("no history database configured, set historyDB or pass --history-db")
			}

			history, err := report.OpenHistory(dbPath)
			if err != nil {
				return err
			}
			defer history.Close()

			if runID != "" {
				issues, err := history.Issues(cmd.Context(), runID)
				if err != nil {
					return err
				}
				printIssues(cmd, runID, issues)
				return nil
			}

			runs, err := history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRuns(cmd, runs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&historyDB, "history-db", "", "History database path (default: historyDB from the configuration)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show the unused and missing keys recorded for a run")

	return cmd
}

func printRuns(cmd *cobra.Command, runs []report.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tTOTAL\tUSED\tDYNAMIC\tIGNORED\tUNUSED\tMISSING\tCOVERAGE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d%%\n",
			r.ID, r.StartedAt.Format(time.RFC3339),
			r.TotalKeys, r.UsedKeys, r.DynamicMatchedKeys, r.IgnoredKeys,
			r.UnusedKeys, r.MissingKeys, r.Coverage)
	}
	_ = tw.Flush()
}

func printIssues(cmd *cobra.Command, runID string, issues []report.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No issues recorded for run %s\n", runID)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tKEY")
	for _, issue := range issues {
		fmt.Fprintf(tw, "%s\t%s\n", issue.Kind, issue.Key)
	}
	_ = tw.Flush()
}
