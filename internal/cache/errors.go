package cache

import "errors"

var (
	// ErrNotFound reports a lookup or delete for an id with no live record.
	ErrNotFound = errors.New("file not found in cache")

	// ErrCapacityExceeded reports an insert that would push the cache past a
	// configured total-size or entry-count ceiling.
	ErrCapacityExceeded = errors.New("cache capacity exceeded")
)
