package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTimeoutFromEnv(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", defaultHTTPTimeout},
		{"duration", "5s", 5 * time.Second},
		{"minutes", "2m", 2 * time.Minute},
		{"bare seconds", "45", 45 * time.Second},
		{"zero", "0", defaultHTTPTimeout},
		{"negative", "-3s", defaultHTTPTimeout},
		{"garbage", "soon", defaultHTTPTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(httpTimeoutEnvKey, tc.value)
			if got := httpTimeoutFromEnv(); got != tc.want {
				t.Errorf("httpTimeoutFromEnv() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClientUpload(t *testing.T) {
	var gotFilenames []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for _, header := range r.MultipartForm.File["files"] {
			gotFilenames = append(gotFilenames, header.Filename)
		}
		json.NewEncoder(w).Encode(UploadResponse{
			Success: true,
			Message: "2 file(s) uploaded successfully",
			Files:   []FileInfo{{ID: "id-1"}, {ID: "id-2"}},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	resp, err := client.Upload(context.Background(), []UploadFile{
		{Name: "a.png", ContentType: "image/png", Data: []byte("png")},
		{Name: "b.pdf", Data: []byte("pdf")},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !resp.Success || len(resp.Files) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(gotFilenames) != 2 || gotFilenames[0] != "a.png" || gotFilenames[1] != "b.pdf" {
		t.Fatalf("unexpected filenames received: %v", gotFilenames)
	}
}

func TestClientDownload(t *testing.T) {
	content := []byte("stored bytes")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file/some-id" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(content)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(ts.URL)
	contentType, err := client.Download(context.Background(), "some-id", &buf)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %q", contentType)
	}
	if !bytes.Equal(buf.Bytes(), content) {
		t.Errorf("expected %q, got %q", content, buf.Bytes())
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{
			Success:   false,
			Error:     "file not found in cache: some-id",
			Code:      "not_found",
			ErrorCode: 2001,
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Download(context.Background(), "some-id", io.Discard)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "not_found" || apiErr.ErrorCode != 2001 {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClientErrorWithoutJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	err := client.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", apiErr.Status)
	}
}

func TestClientListDeleteClearStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /files":
			json.NewEncoder(w).Encode(ListResponse{Success: true, Files: []FileInfo{{ID: "x"}}})
		case "DELETE /delete/x":
			json.NewEncoder(w).Encode(MessageResponse{Success: true, Message: "file deleted successfully"})
		case "DELETE /clear-cache":
			json.NewEncoder(w).Encode(MessageResponse{Success: true, Message: "cache cleared: 1 file(s) removed"})
		case "GET /cache-stats":
			json.NewEncoder(w).Encode(StatsResponse{Success: true, Stats: CacheStats{TotalFiles: 1}})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	ctx := context.Background()

	list, err := client.ListFiles(ctx)
	if err != nil || len(list.Files) != 1 {
		t.Fatalf("ListFiles: %v %+v", err, list)
	}
	if _, err := client.DeleteFile(ctx, "x"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := client.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	stats, err := client.CacheStats(ctx)
	if err != nil || stats.Stats.TotalFiles != 1 {
		t.Fatalf("CacheStats: %v %+v", err, stats)
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escapeQuotes(`a"b\c`); got != `a\"b\\c` {
		t.Errorf("escapeQuotes = %q", got)
	}
}
