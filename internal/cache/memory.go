package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"stash/internal/models"
)

type memoryEntry struct {
	record models.FileRecord
	data   []byte
}

// Memory is the in-memory blob store. A single RWMutex guards the id→entry
// map; entries are immutable once inserted, so readers that obtained an
// entry under the lock may read its bytes without holding it.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	order      []string
	totalBytes int64
	limits     Limits
	now        func() time.Time
}

// NewMemory creates an empty in-memory store with the given limits.
func NewMemory(limits Limits) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		limits:  limits,
		now:     time.Now,
	}
}

// Put inserts a single file. Equivalent to a one-element PutBatch.
func (m *Memory) Put(ctx context.Context, req PutRequest) (models.FileRecord, error) {
	records, err := m.PutBatch(ctx, []PutRequest{req})
	if err != nil {
		return models.FileRecord{}, err
	}
	return records[0], nil
}

// PutBatch inserts all requests or none. Capacity is checked for the batch
// as a whole before any entry is created.
func (m *Memory) PutBatch(ctx context.Context, reqs []PutRequest) ([]models.FileRecord, error) {
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

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCapacityLocked(len(reqs), batchBytes); err != nil {
		return nil, err
	}

	uploadedAt := m.now().UTC()
	records := make([]models.FileRecord, 0, len(reqs))
	for i, req := range reqs {
		data := make([]byte, len(req.Data))
		copy(data, req.Data)

		record := models.FileRecord{
			ID:           ids[i],
			OriginalName: req.OriginalName,
			ContentType:  req.ContentType,
			SizeBytes:    int64(len(data)),
			Category:     req.Category,
			UploadedAt:   uploadedAt,
		}
		m.entries[record.ID] = memoryEntry{record: record, data: data}
		m.order = append(m.order, record.ID)
		m.totalBytes += record.SizeBytes
		records = append(records, record)
	}

	return records, nil
}

func (m *Memory) checkCapacityLocked(addCount int, addBytes int64) error {
	if m.limits.MaxEntries > 0 && len(m.entries)+addCount > m.limits.MaxEntries {
		return fmt.Errorf("%w: %d entries + %d new exceeds max %d",
			ErrCapacityExceeded, len(m.entries), addCount, m.limits.MaxEntries)
	}
	if m.limits.MaxTotalBytes > 0 && m.totalBytes+addBytes > m.limits.MaxTotalBytes {
		return fmt.Errorf("%w: %d bytes + %d new exceeds max %d",
			ErrCapacityExceeded, m.totalBytes, addBytes, m.limits.MaxTotalBytes)
	}
	return nil
}

// Get returns the record and a reader over its bytes. The reader stays
// valid after the call because entries are never mutated in place.
func (m *Memory) Get(ctx context.Context, id string) (models.FileRecord, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return models.FileRecord{}, nil, err
	}

	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return models.FileRecord{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry.record, io.NopCloser(bytes.NewReader(entry.data)), nil
}

// List returns a metadata snapshot of all records in insertion order.
func (m *Memory) List(ctx context.Context) ([]models.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]models.FileRecord, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, m.entries[id].record)
	}
	return records, nil
}

// Delete removes one record and reports whether it existed.
func (m *Memory) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return false, nil
	}
	delete(m.entries, id)
	m.order = removeID(m.order, id)
	m.totalBytes -= entry.record.SizeBytes
	return true, nil
}

// Clear removes every record and returns how many were removed.
func (m *Memory) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.entries)
	m.entries = make(map[string]memoryEntry)
	m.order = nil
	m.totalBytes = 0
	return count, nil
}

// Stats aggregates over a consistent snapshot of the cache.
func (m *Memory) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{
		Count:      len(m.entries),
		TotalBytes: m.totalBytes,
		ByCategory: make(map[models.FileCategory]int),
	}
	for _, entry := range m.entries {
		stats.ByCategory[entry.record.Category]++
	}
	return stats, nil
}

func removeID(order []string, id string) []string {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
