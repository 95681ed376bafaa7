package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for a cached file. UUIDv7 combines a
// millisecond timestamp with random bits, so ids sort by insertion time and
// stay collision-free even when a batch asks for many ids in the same
// millisecond. The string form contains only hex digits and dashes and is
// safe to use in URLs.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate file id: %w", err)
	}
	return id.String(), nil
}
