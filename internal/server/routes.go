package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /health", s.handleHealth)

	// Upload and retrieval.
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /file/{id}", s.handleGetFile)
	mux.HandleFunc("GET /files", s.handleListFiles)

	// Cache maintenance.
	mux.HandleFunc("DELETE /delete/{id}", s.handleDeleteFile)
	mux.HandleFunc("DELETE /clear-cache", s.handleClearCache)
	mux.HandleFunc("GET /cache-stats", s.handleCacheStats)

	return s.withRequestLogging(mux)
}
