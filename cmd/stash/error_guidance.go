package main

import (
	"context"
	"errors"
	"net"

	"stash/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "resource_exhausted":
			lines = append(lines, "hint: retry shortly or reduce concurrent uploads.")
		case "capacity_exceeded":
			lines = append(lines, "hint: the cache is full; remove files with 'stash rm' or 'stash clear', or raise cache.max_total_bytes / cache.max_entries.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return lines
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase STASH_HTTP_TIMEOUT.")
		return lines
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a stash server is running at STASH_API_URL.",
			"hint: start a local server with: stash srv",
		)
	}

	return lines
}
