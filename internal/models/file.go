package models

import (
	"path"
	"strings"
	"time"
)

// FileCategory is the coarse classification derived from a file's extension
// at upload time.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
)

var imageExtensions = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"svg":  {},
}

var documentExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"txt":  {},
	"xls":  {},
	"xlsx": {},
	"ppt":  {},
	"pptx": {},
	"zip":  {},
	"rar":  {},
}

// Classify maps a filename to its category by extension, case-insensitively.
// Filenames whose extension is in neither allow-list are rejected.
func Classify(filename string) (FileCategory, bool) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return "", false
	}
	if _, ok := imageExtensions[ext]; ok {
		return CategoryImage, true
	}
	if _, ok := documentExtensions[ext]; ok {
		return CategoryDocument, true
	}
	return "", false
}

// FileRecord is the metadata for one cached file. Records are immutable
// after insertion; the bytes themselves are owned by the store.
type FileRecord struct {
	ID           string       `json:"id"`
	OriginalName string       `json:"original_name"`
	ContentType  string       `json:"content_type"`
	SizeBytes    int64        `json:"size_bytes"`
	Category     FileCategory `json:"category"`
	UploadedAt   time.Time    `json:"uploaded_at"`
}
