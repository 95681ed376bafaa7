package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"stash/internal/models"
)

// Disk is the disk-backed store variant: file bytes live under a managed
// directory named by id, while the index stays in memory. The cache is
// still ephemeral — a restart abandons the index, and files left behind by
// a previous run are swept when the store is opened.
type Disk struct {
	root string

	mu         sync.RWMutex
	records    map[string]models.FileRecord
	order      []string
	totalBytes int64
	limits     Limits
	now        func() time.Time
}

// NewDisk opens a disk store rooted at root, creating the directory and
// removing any stray files from earlier runs.
func NewDisk(root string, limits Limits) (*Disk, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("disk store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	d := &Disk{
		root:    abs,
		records: make(map[string]models.FileRecord),
		limits:  limits,
		now:     time.Now,
	}
	if err := d.sweep(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Disk) sweep() error {
	dirEntries, err := os.ReadDir(d.root)
	if err != nil {
		return err
	}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(d.root, dirEntry.Name())); err != nil {
			return fmt.Errorf("sweep stale cache file: %w", err)
		}
	}
	return nil
}

func (d *Disk) Put(ctx context.Context, req PutRequest) (models.FileRecord, error) {
	records, err := d.PutBatch(ctx, []PutRequest{req})
	if err != nil {
		return models.FileRecord{}, err
	}
	return records[0], nil
}

// PutBatch writes every file or none. The index lock is held across the
// writes so the capacity check and the inserts are one atomic step; writes
// that fail part-way remove the files written so far.
func (d *Disk) PutBatch(ctx context.Context, reqs []PutRequest) ([]models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(reqs))
	for i := range reqs {
		id, err := NewID()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	var batchBytes int64
	for _, req := range reqs {
		batchBytes += int64(len(req.Data))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.limits.MaxEntries > 0 && len(d.records)+len(reqs) > d.limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries + %d new exceeds max %d",
			ErrCapacityExceeded, len(d.records), len(reqs), d.limits.MaxEntries)
	}
	if d.limits.MaxTotalBytes > 0 && d.totalBytes+batchBytes > d.limits.MaxTotalBytes {
		return nil, fmt.Errorf("%w: %d bytes + %d new exceeds max %d",
			ErrCapacityExceeded, d.totalBytes, batchBytes, d.limits.MaxTotalBytes)
	}

	written := make([]string, 0, len(reqs))
	undo := func() {
		for _, id := range written {
			_ = os.Remove(d.path(id))
		}
	}

	uploadedAt := d.now().UTC()
	records := make([]models.FileRecord, 0, len(reqs))
	for i, req := range reqs {
		if err := os.WriteFile(d.path(ids[i]), req.Data, 0o644); err != nil {
			undo()
			return nil, fmt.Errorf("write cache file: %w", err)
		}
		written = append(written, ids[i])
		records = append(records, models.FileRecord{
			ID:           ids[i],
			OriginalName: req.OriginalName,
			ContentType:  req.ContentType,
			SizeBytes:    int64(len(req.Data)),
			Category:     req.Category,
			UploadedAt:   uploadedAt,
		})
	}

	for _, record := range records {
		d.records[record.ID] = record
		d.order = append(d.order, record.ID)
		d.totalBytes += record.SizeBytes
	}

	return records, nil
}

func (d *Disk) Get(ctx context.Context, id string) (models.FileRecord, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return models.FileRecord{}, nil, err
	}

	d.mu.RLock()
	record, ok := d.records[id]
	d.mu.RUnlock()
	if !ok {
		return models.FileRecord{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	f, err := os.Open(d.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.FileRecord{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return models.FileRecord{}, nil, err
	}
	return record, f, nil
}

func (d *Disk) List(ctx context.Context) ([]models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	records := make([]models.FileRecord, 0, len(d.order))
	for _, id := range d.order {
		records = append(records, d.records[id])
	}
	return records, nil
}

func (d *Disk) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	record, ok := d.records[id]
	if !ok {
		return false, nil
	}
	if err := os.Remove(d.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	delete(d.records, id)
	d.order = removeID(d.order, id)
	d.totalBytes -= record.SizeBytes
	return true, nil
}

func (d *Disk) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	count := len(d.records)
	for id := range d.records {
		if err := os.Remove(d.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, err
		}
	}
	d.records = make(map[string]models.FileRecord)
	d.order = nil
	d.totalBytes = 0
	return count, nil
}

func (d *Disk) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := Stats{
		Count:      len(d.records),
		TotalBytes: d.totalBytes,
		ByCategory: make(map[models.FileCategory]int),
	}
	for _, record := range d.records {
		stats.ByCategory[record.Category]++
	}
	return stats, nil
}

func (d *Disk) path(id string) string {
	return filepath.Join(d.root, id)
}
