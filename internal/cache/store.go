package cache

import (
	"context"
	"io"

	"stash/internal/models"
)

// PutRequest describes one file to insert. Data is consumed by the store;
// callers must not retain or modify it after a successful insert.
type PutRequest struct {
	OriginalName string
	ContentType  string
	Category     models.FileCategory
	Data         []byte
}

// Stats is an aggregate snapshot over all live records.
type Stats struct {
	Count      int
	TotalBytes int64
	ByCategory map[models.FileCategory]int
}

// Limits bounds total cache growth. Zero values mean unbounded.
type Limits struct {
	MaxTotalBytes int64
	MaxEntries    int
}

// Store is the byte-storage abstraction behind the HTTP gateway. Stores are
// ephemeral: content does not survive a process restart.
//
// All operations are linearizable with respect to each other. PutBatch is
// atomic: either every request in the batch is inserted or none is.
type Store interface {
	Put(ctx context.Context, req PutRequest) (models.FileRecord, error)
	PutBatch(ctx context.Context, reqs []PutRequest) ([]models.FileRecord, error)
	Get(ctx context.Context, id string) (models.FileRecord, io.ReadCloser, error)
	List(ctx context.Context) ([]models.FileRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) (int, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Disk)(nil)
)
