package main

import (
	"stash/internal/api"
	"stash/internal/config"
)

// withClient runs fn against the configured API endpoint. Commands do not
// start a server themselves: an auto-started server would be killed when
// the command exits and take the whole cache with it.
func withClient(cfg *config.Config, fn func(*api.Client) error) error {
	client := api.NewClient(cfg.APIURL)
	return fn(client)
}
