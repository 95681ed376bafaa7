package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"stash/internal/api"
	"stash/internal/models"
)

// uploadFieldName is the multipart form field carrying file parts. Parts
// under any other field name are ignored.
const uploadFieldName = "files"

// multipartOverheadBytes covers part boundaries and headers on top of the
// file payload budget.
const multipartOverheadBytes = 1 << 20

var errPartTooLarge = errors.New("file part exceeds size limit")

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.acquireLimiter(s.uploadLimiter, w, r, "upload") {
		return
	}
	defer s.releaseLimiter(s.uploadLimiter)

	maxBody := int64(s.maxFiles)*s.maxFileBytes + multipartOverheadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(s.multipartMaxMemory); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
		return
	}

	parts, err := s.collectParts(r.MultipartForm)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	records, err := s.service.ValidateAndStore(r.Context(), parts)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	cacheInfo, err := s.cacheInfo(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.UploadResponse{
		Success:   true,
		Message:   fmt.Sprintf("%d file(s) uploaded successfully", len(records)),
		Files:     fileInfos(records),
		CacheInfo: cacheInfo,
	})
}

// collectParts buffers every file part before any validation verdict, so a
// later rejection can discard the batch without touching the store.
func (s *Server) collectParts(form *multipart.Form) ([]UploadPart, error) {
	if form == nil || len(form.File[uploadFieldName]) == 0 {
		return nil, badRequestCode(fmt.Errorf("no files uploaded"), ErrCodeNoFilesProvided)
	}

	headers := form.File[uploadFieldName]
	if len(headers) > s.maxFiles {
		return nil, badRequestCode(
			fmt.Errorf("too many files: %d exceeds limit of %d", len(headers), s.maxFiles),
			ErrCodeTooManyFiles)
	}

	parts := make([]UploadPart, 0, len(headers))
	for _, header := range headers {
		data, err := readPart(header, s.maxFileBytes)
		if err != nil {
			if errors.Is(err, errPartTooLarge) {
				return nil, badRequestCode(
					fmt.Errorf("file %q exceeds size limit of %d bytes", header.Filename, s.maxFileBytes),
					ErrCodeFileTooLarge)
			}
			return nil, internalError(fmt.Errorf("read upload part %q: %w", header.Filename, err))
		}

		contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
		if contentType == "" && len(data) > 0 {
			contentType = http.DetectContentType(data[:min(len(data), 512)])
		}

		parts = append(parts, UploadPart{
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return parts, nil
}

func readPart(header *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errPartTooLarge
	}
	return data, nil
}

func classifyMultipartError(err error) error {
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.Contains(strings.ToLower(err.Error()), "request body too large") {
		return badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge)
	}
	return badRequestCode(err, ErrCodeInvalidArgument)
}

func fileInfos(records []models.FileRecord) []api.FileInfo {
	infos := make([]api.FileInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, fileInfo(record))
	}
	return infos
}

func fileInfo(record models.FileRecord) api.FileInfo {
	return api.FileInfo{
		ID:           record.ID,
		Filename:     generatedFilename(record),
		OriginalName: record.OriginalName,
		Size:         record.SizeBytes,
		Type:         string(record.Category),
		Mimetype:     record.ContentType,
		URL:          "/file/" + record.ID,
		UploadedAt:   record.UploadedAt,
	}
}

// generatedFilename is a display name combining the id with the original
// extension, mirroring the URL the file is served under.
func generatedFilename(record models.FileRecord) string {
	name := "file-" + record.ID
	if dot := strings.LastIndex(record.OriginalName, "."); dot >= 0 {
		name += strings.ToLower(record.OriginalName[dot:])
	}
	return name
}
