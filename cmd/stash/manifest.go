package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stash/internal/api"
)

// uploadManifest describes a batch of files to upload:
//
//	files:
//	  - path: diagrams/arch.png
//	  - path: notes/summary.txt
//	    name: summary-2026.txt
//	    content_type: text/plain
type uploadManifest struct {
	Files []manifestEntry `yaml:"files"`
}

type manifestEntry struct {
	Path        string `yaml:"path"`
	Name        string `yaml:"name"`
	ContentType string `yaml:"content_type"`
}

func loadManifestFiles(path string) ([]api.UploadFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest uploadManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(manifest.Files) == 0 {
		return nil, fmt.Errorf("manifest %s lists no files", path)
	}

	baseDir := filepath.Dir(path)
	files := make([]api.UploadFile, 0, len(manifest.Files))
	for i, entry := range manifest.Files {
		if strings.TrimSpace(entry.Path) == "" {
			return nil, fmt.Errorf("manifest entry %d: path is required", i+1)
		}

		entryPath := entry.Path
		if !filepath.IsAbs(entryPath) {
			entryPath = filepath.Join(baseDir, entryPath)
		}
		data, err := os.ReadFile(entryPath)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = filepath.Base(entry.Path)
		}
		contentType := strings.TrimSpace(entry.ContentType)
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(name))
		}

		files = append(files, api.UploadFile{
			Name:        name,
			ContentType: contentType,
			Data:        data,
		})
	}
	return files, nil
}
