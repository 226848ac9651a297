package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jenian/i18ngrd/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInitConfigCmd(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Create a " + config.ExampleFileName + " file",
		Long:  "Creates a " + config.ExampleFileName + " file with the default configuration in the given directory (default: current directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			configPath := filepath.Join(dir, config.ExampleFileName)

			if exists, err := afero.Exists(fs, configPath); err != nil {
				return fmt.Errorf("failed to check %s: %w", configPath, err)
			} else if exists {
				return fmt.Errorf("%s already exists in %s", config.ExampleFileName, dir)
			}

			if err := afero.WriteFile(fs, configPath, []byte(config.ExampleConfig), 0644); err != nil {
				return fmt.Errorf("failed to create %s: %w", config.ExampleFileName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
			return nil
		},
	}
}
