package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"stash/internal/api"
	"stash/internal/config"
)

func newGetCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a cached file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if id == "" {
				return errors.New("file id is required")
			}

			return withClient(cfg, func(client *api.Client) error {
				out := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					out = f
				}

				_, err := client.Download(cmd.Context(), id, out)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the file here instead of stdout")
	return cmd
}
