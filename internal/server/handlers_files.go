package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stash/internal/api"
)

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	record, rc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, classifyStoreError(err))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", record.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(record.SizeBytes, 10))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`inline; filename="%s"`, sanitizeDispositionName(record.OriginalName)))
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, rc); err != nil {
		s.log().Error("stream file", "id", id, "error", err)
	}
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, classifyStoreError(err))
		return
	}

	cacheInfo, err := s.cacheInfo(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.ListResponse{
		Success:   true,
		Files:     fileInfos(records),
		CacheInfo: cacheInfo,
	})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	existed, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, classifyStoreError(err))
		return
	}
	if !existed {
		s.writeErrorReq(w, r, http.StatusNotFound, notFound(fmt.Errorf("file not found in cache: %s", id)))
		return
	}

	cacheInfo, err := s.cacheInfo(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.MessageResponse{
		Success:   true,
		Message:   "file deleted successfully",
		CacheInfo: cacheInfo,
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Clear(r.Context())
	if err != nil {
		s.writeServiceError(w, r, classifyStoreError(err))
		return
	}

	cacheInfo, err := s.cacheInfo(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.MessageResponse{
		Success:   true,
		Message:   fmt.Sprintf("cache cleared: %d file(s) removed", count),
		CacheInfo: cacheInfo,
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, classifyStoreError(err))
		return
	}

	fileTypes := make(map[string]int, len(stats.ByCategory))
	for category, count := range stats.ByCategory {
		fileTypes[string(category)] = count
	}

	s.writeJSON(w, http.StatusOK, api.StatsResponse{
		Success: true,
		Stats: api.CacheStats{
			TotalFiles:     stats.Count,
			TotalSizeBytes: stats.TotalBytes,
			TotalSizeMB:    fmt.Sprintf("%.2f", float64(stats.TotalBytes)/(1024*1024)),
			FileTypes:      fileTypes,
			UptimeSeconds:  time.Since(s.startTime).Seconds(),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cacheInfo, err := s.cacheInfo(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		CacheInfo:     cacheInfo,
	})
}

func (s *Server) cacheInfo(r *http.Request) (api.CacheInfo, error) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		return api.CacheInfo{}, classifyStoreError(err)
	}
	return api.CacheInfo{
		TotalFiles:     stats.Count,
		TotalSizeBytes: stats.TotalBytes,
		Ephemeral:      true,
	}, nil
}

func sanitizeDispositionName(name string) string {
	name = strings.NewReplacer(`\`, `_`, `"`, `_`, "\r", "_", "\n", "_").Replace(name)
	return name
}
