package server

import (
	"context"
	"fmt"

	"stash/internal/cache"
	"stash/internal/models"
)

const fallbackContentType = "application/octet-stream"

// UploadPart is one fully-buffered multipart file awaiting validation.
type UploadPart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadService runs the two-phase upload flow: every part of a batch is
// validated before the store is touched, then the whole batch is committed
// with a single atomic insert. A batch that fails validation leaves the
// cache exactly as it was.
type UploadService struct {
	store        cache.Store
	maxFileBytes int64
	maxFiles     int
}

// NewUploadService constructs an UploadService with per-request limits.
func NewUploadService(store cache.Store, maxFileBytes int64, maxFiles int) *UploadService {
	return &UploadService{
		store:        store,
		maxFileBytes: maxFileBytes,
		maxFiles:     maxFiles,
	}
}

// ValidateAndStore validates all parts, then inserts them as one batch.
func (s *UploadService) ValidateAndStore(ctx context.Context, parts []UploadPart) ([]models.FileRecord, error) {
	if s == nil || s.store == nil {
		return nil, internalError(fmt.Errorf("upload service is not configured"))
	}
	if len(parts) == 0 {
		return nil, badRequestCode(fmt.Errorf("no files uploaded"), ErrCodeNoFilesProvided)
	}
	if len(parts) > s.maxFiles {
		return nil, badRequestCode(
			fmt.Errorf("too many files: %d exceeds limit of %d", len(parts), s.maxFiles),
			ErrCodeTooManyFiles)
	}

	reqs := make([]cache.PutRequest, 0, len(parts))
	for _, part := range parts {
		category, ok := models.Classify(part.Filename)
		if !ok {
			return nil, badRequestCode(
				fmt.Errorf("unsupported file type %q: only images and documents are allowed", part.Filename),
				ErrCodeUnsupportedFileType)
		}
		if int64(len(part.Data)) > s.maxFileBytes {
			return nil, badRequestCode(
				fmt.Errorf("file %q exceeds size limit of %d bytes", part.Filename, s.maxFileBytes),
				ErrCodeFileTooLarge)
		}
		contentType := part.ContentType
		if contentType == "" {
			contentType = fallbackContentType
		}
		reqs = append(reqs, cache.PutRequest{
			OriginalName: part.Filename,
			ContentType:  contentType,
			Category:     category,
			Data:         part.Data,
		})
	}

	records, err := s.store.PutBatch(ctx, reqs)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return records, nil
}
