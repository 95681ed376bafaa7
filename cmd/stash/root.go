package main

import (
	"github.com/spf13/cobra"

	"stash/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Stash is an ephemeral in-memory file cache served over HTTP",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				cmd.PrintErrln(warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newUploadCmd(cfg, &jsonOutput),
		newGetCmd(cfg),
		newListCmd(cfg, &jsonOutput),
		newRmCmd(cfg, &jsonOutput),
		newClearCmd(cfg, &jsonOutput),
		newStatsCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
	)

	return cmd
}
