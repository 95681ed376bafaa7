package main

import (
	"github.com/spf13/cobra"

	"stash/internal/api"
	"stash/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ListFiles(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				for _, file := range resp.Files {
					if err := writePlain("%s\t%s\t%d\t%s\n", file.ID, file.Type, file.Size, file.OriginalName); err != nil {
						return err
					}
				}
				return writePlain("%d file(s), %d bytes\n", resp.CacheInfo.TotalFiles, resp.CacheInfo.TotalSizeBytes)
			})
		},
	}
}
