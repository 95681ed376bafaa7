package main

import (
	"github.com/spf13/cobra"

	"stash/internal/api"
	"stash/internal/config"
)

func newStatsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CacheStats(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				stats := resp.Stats
				if err := writePlain("files: %d\n", stats.TotalFiles); err != nil {
					return err
				}
				if err := writePlain("size: %d bytes (%s MB)\n", stats.TotalSizeBytes, stats.TotalSizeMB); err != nil {
					return err
				}
				for fileType, count := range stats.FileTypes {
					if err := writePlain("%s: %d\n", fileType, count); err != nil {
						return err
					}
				}
				return writePlain("uptime: %.0fs\n", stats.UptimeSeconds)
			})
		},
	}
}
