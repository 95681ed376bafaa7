package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"stash/internal/cache"
	"stash/internal/config"
	"stash/internal/server"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the stash cache server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			store, err := newStore(cfg, logger)
			if err != nil {
				return err
			}

			srv := server.New(addr, store, logger, server.Options{
				MaxFileBytes:       cfg.Uploads.MaxFileBytes,
				MaxFiles:           cfg.Uploads.MaxFiles,
				MultipartMaxMemory: cfg.Uploads.MultipartMaxMemory,
			})
			return srv.ListenAndServe()
		},
	}
}

func newStore(cfg *config.Config, logger *slog.Logger) (cache.Store, error) {
	limits := cache.Limits{
		MaxTotalBytes: cfg.Cache.MaxTotalBytes,
		MaxEntries:    cfg.Cache.MaxEntries,
	}

	switch cfg.Storage {
	case config.StorageDisk:
		logger.Info("using disk storage", "root", cfg.DiskRoot)
		return cache.NewDisk(cfg.DiskRoot, limits)
	default:
		return cache.NewMemory(limits), nil
	}
}
