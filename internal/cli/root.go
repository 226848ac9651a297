// Package cli implements the i18ngrd command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned by scan when exitOnIssues is set and the
// analysis reported unused or missing keys
var ErrIssuesFound = errors.New("translation issues found")

// NewRootCmd builds the i18ngrd command tree backed by the OS filesystem
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(afero.NewOsFs(), version)
}

func newRootCmd(fs afero.Fs, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "i18ngrd",
		Short:         "Find unused and missing translation keys",
		Long:          "A CLI tool that scans Angular-style projects for translation key usages and compares them with the translation catalogs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newScanCmd(fs, version))
	rootCmd.AddCommand(newInitConfigCmd(fs))
	rootCmd.AddCommand(newHistoryCmd(fs))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of i18ngrd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return rootCmd
}

// newLogger returns a text logger on w: debug when verbose, warn otherwise,
// nothing at all when silent
func newLogger(w io.Writer, verbose, silent bool) *slog.Logger {
	if silent {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printHeader(w io.Writer, version string) {
	header := ` __ ___  _  _  ___  ____  ____
 || |/ \ || \|| // \\ || \\ || \\
 || ||(| ||\\|| (( ___ ||_// ||  ))
 ||  \_/ || \||  \\_|| || \\ ||_//

`
	fmt.Fprint(w, header)
	fmt.Fprintf(w, "Version: %s\n\n", version)
}
