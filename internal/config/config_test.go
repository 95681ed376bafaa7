package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigDir(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default api_url, got %q", cfg.APIURL)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("expected memory storage, got %q", cfg.Storage)
	}
	if cfg.Uploads.MaxFileBytes != DefaultMaxFileBytes {
		t.Errorf("expected default max_file_bytes, got %d", cfg.Uploads.MaxFileBytes)
	}
	if cfg.Uploads.MaxFiles != DefaultMaxFiles {
		t.Errorf("expected default max_files, got %d", cfg.Uploads.MaxFiles)
	}
	if cfg.Cache.MaxTotalBytes != 0 || cfg.Cache.MaxEntries != 0 {
		t.Errorf("expected unbounded cache defaults, got %+v", cfg.Cache)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfigDir(t, `
api_url = "http://127.0.0.1:9999"
log_level = "debug"

[uploads]
max_file_bytes = 2048
max_files = 3

[cache]
max_total_bytes = 1048576
max_entries = 50
`)
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9999" {
		t.Errorf("unexpected api_url %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log_level %q", cfg.LogLevel)
	}
	if cfg.Uploads.MaxFileBytes != 2048 || cfg.Uploads.MaxFiles != 3 {
		t.Errorf("unexpected uploads config %+v", cfg.Uploads)
	}
	if cfg.Cache.MaxTotalBytes != 1048576 || cfg.Cache.MaxEntries != 50 {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeConfigDir(t, `api_url = "http://127.0.0.1:9999"`)
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "http://127.0.0.1:7777")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:7777" {
		t.Errorf("expected env override, got %q", cfg.APIURL)
	}
}

func TestLoadDiskStorage(t *testing.T) {
	dir := writeConfigDir(t, `
storage = "disk"
disk_root = "/tmp/stash-cache"
`)
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != StorageDisk {
		t.Errorf("expected disk storage, got %q", cfg.Storage)
	}
	if cfg.DiskRoot != "/tmp/stash-cache" {
		t.Errorf("unexpected disk_root %q", cfg.DiskRoot)
	}
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	dir := writeConfigDir(t, `storage = "s3"`)
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid storage backend")
	}
}

func TestLoadRejectsDiskWithoutRoot(t *testing.T) {
	dir := writeConfigDir(t, `storage = "disk"`)
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(storageEnvKey, "")
	t.Setenv(diskRootEnvKey, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when disk storage has no disk_root")
	}
}

func TestGetRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cache.MaxEntries = 7

	for _, key := range AllowedKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q): %v", key, err)
		}
	}
	if got, _ := cfg.Get("cache.max_entries"); got != "7" {
		t.Errorf("expected 7, got %q", got)
	}
	if _, err := cfg.Get("nonexistent"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSetKeyWritesNestedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)

	if err := SetKey(path, "uploads.max_files", "5"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if err := SetKey(path, "api_url", "http://127.0.0.1:9000"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "max_files = 5") {
		t.Errorf("expected max_files in file, got:\n%s", content)
	}
	if !strings.Contains(content, `api_url = "http://127.0.0.1:9000"`) {
		t.Errorf("expected api_url in file, got:\n%s", content)
	}
}

func TestSetKeyValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)

	cases := []struct {
		key   string
		value string
	}{
		{"bogus", "x"},
		{"uploads.max_files", "0"},
		{"uploads.max_file_bytes", "-1"},
		{"cache.max_entries", "nope"},
		{"storage", "s3"},
	}
	for _, tc := range cases {
		if err := SetKey(path, tc.key, tc.value); err == nil {
			t.Errorf("SetKey(%q, %q): expected error", tc.key, tc.value)
		}
	}
}
