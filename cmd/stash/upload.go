package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stash/internal/api"
	"stash/internal/config"
)

type uploadCmdOptions struct {
	manifestPath string
	contentType  string
}

func newUploadCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &uploadCmdOptions{}
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to the cache as one batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, cfg, opts, jsonOutput, args)
		},
	}

	cmd.Flags().StringVar(&opts.manifestPath, "manifest", "", "YAML manifest describing the files to upload")
	cmd.Flags().StringVar(&opts.contentType, "content-type", "", "content type for every uploaded file (default: derived from extension)")
	return cmd
}

func runUpload(cmd *cobra.Command, cfg *config.Config, opts *uploadCmdOptions, jsonOutput *bool, args []string) error {
	if opts.manifestPath == "" && len(args) == 0 {
		return errors.New("at least one file path or --manifest is required")
	}
	if opts.manifestPath != "" && len(args) > 0 {
		return errors.New("pass file paths or --manifest, not both")
	}

	var files []api.UploadFile
	var err error
	if opts.manifestPath != "" {
		files, err = loadManifestFiles(opts.manifestPath)
	} else {
		files, err = loadPathFiles(args, opts.contentType)
	}
	if err != nil {
		return err
	}

	return withClient(cfg, func(client *api.Client) error {
		resp, err := client.Upload(cmd.Context(), files)
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
		return writePlain("%s\n", resp.Message)
	})
}

func loadPathFiles(paths []string, contentType string) ([]api.UploadFile, error) {
	files := make([]api.UploadFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		fileType := contentType
		if fileType == "" {
			fileType = mime.TypeByExtension(filepath.Ext(path))
		}
		files = append(files, api.UploadFile{
			Name:        filepath.Base(path),
			ContentType: fileType,
			Data:        data,
		})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	return files, nil
}
