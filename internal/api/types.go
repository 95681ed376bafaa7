package api

import "time"

// FileInfo is the per-file metadata returned by upload and list endpoints.
// The raw bytes are never part of a JSON response.
type FileInfo struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	Mimetype     string    `json:"mimetype"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// CacheInfo summarizes the cache alongside every mutating response.
// Ephemeral is always true: cache content does not survive a restart.
type CacheInfo struct {
	TotalFiles     int   `json:"totalFiles"`
	TotalSizeBytes int64 `json:"totalSizeBytes"`
	Ephemeral      bool  `json:"ephemeral"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Files     []FileInfo `json:"files"`
	CacheInfo CacheInfo  `json:"cacheInfo"`
}

// ListResponse is returned by GET /files.
type ListResponse struct {
	Success   bool       `json:"success"`
	Files     []FileInfo `json:"files"`
	CacheInfo CacheInfo  `json:"cacheInfo"`
}

// MessageResponse is returned by delete and clear-cache endpoints.
type MessageResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CacheInfo CacheInfo `json:"cacheInfo"`
}

// CacheStats is the aggregate counter block of GET /cache-stats.
type CacheStats struct {
	TotalFiles     int            `json:"totalFiles"`
	TotalSizeBytes int64          `json:"totalSizeBytes"`
	TotalSizeMB    string         `json:"totalSizeMB"`
	FileTypes      map[string]int `json:"fileTypes"`
	UptimeSeconds  float64        `json:"uptimeSeconds"`
}

// StatsResponse is returned by GET /cache-stats.
type StatsResponse struct {
	Success bool       `json:"success"`
	Stats   CacheStats `json:"stats"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	CacheInfo     CacheInfo `json:"cacheInfo"`
}

// ErrorResponse is the generic JSON error wrapper.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}
