package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL   = "http://127.0.0.1:8888"
	DefaultLogLevel = "info"
	DefaultStorage  = "memory"

	DefaultMaxFileBytes       int64 = 10 * 1024 * 1024
	DefaultMaxFiles                 = 10
	DefaultMultipartMaxMemory int64 = 8 * 1024 * 1024

	StorageMemory = "memory"
	StorageDisk   = "disk"

	configFileName  = ".stash.toml"
	configDirEnvKey = "STASH_CONFIG_DIR"
	apiURLEnvKey    = "STASH_API_URL"
	storageEnvKey   = "STASH_STORAGE"
	diskRootEnvKey  = "STASH_DISK_ROOT"
)

// UploadConfig bounds a single upload request.
type UploadConfig struct {
	MaxFileBytes       int64 `toml:"max_file_bytes"`
	MaxFiles           int   `toml:"max_files"`
	MultipartMaxMemory int64 `toml:"multipart_max_memory"`
}

// CacheConfig bounds total cache growth. Zero means unbounded; unbounded
// growth is an accepted resource-exhaustion risk of the default setup.
type CacheConfig struct {
	MaxTotalBytes int64 `toml:"max_total_bytes"`
	MaxEntries    int   `toml:"max_entries"`
}

// Config defines runtime configuration for stash.
type Config struct {
	APIURL   string       `toml:"api_url"`
	LogLevel string       `toml:"log_level"`
	Storage  string       `toml:"storage"`
	DiskRoot string       `toml:"disk_root"`
	Uploads  UploadConfig `toml:"uploads"`
	Cache    CacheConfig  `toml:"cache"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		Storage:  DefaultStorage,
		Uploads: UploadConfig{
			MaxFileBytes:       DefaultMaxFileBytes,
			MaxFiles:           DefaultMaxFiles,
			MultipartMaxMemory: DefaultMultipartMaxMemory,
		},
	}
}

// Load reads config files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}
		if cwd, err := os.Getwd(); err == nil {
			if err := loadFile(filepath.Join(cwd, configFileName), &cfg); err != nil {
				return nil, err
			}
		}
	}

	if apiURL := strings.TrimSpace(os.Getenv(apiURLEnvKey)); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if storage := strings.TrimSpace(os.Getenv(storageEnvKey)); storage != "" {
		cfg.Storage = storage
	}
	if diskRoot := strings.TrimSpace(os.Getenv(diskRootEnvKey)); diskRoot != "" {
		cfg.DiskRoot = diskRoot
	}

	cfg.normalizeDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func (c *Config) normalizeDefaults() {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = DefaultStorage
	}
	if c.Uploads.MaxFileBytes <= 0 {
		c.Uploads.MaxFileBytes = DefaultMaxFileBytes
	}
	if c.Uploads.MaxFiles <= 0 {
		c.Uploads.MaxFiles = DefaultMaxFiles
	}
	if c.Uploads.MultipartMaxMemory <= 0 {
		c.Uploads.MultipartMaxMemory = DefaultMultipartMaxMemory
	}
	if c.Cache.MaxTotalBytes < 0 {
		c.Cache.MaxTotalBytes = 0
	}
	if c.Cache.MaxEntries < 0 {
		c.Cache.MaxEntries = 0
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory, StorageDisk:
	default:
		return fmt.Errorf("invalid storage backend %q (expected %q or %q)", c.Storage, StorageMemory, StorageDisk)
	}
	if c.Storage == StorageDisk && strings.TrimSpace(c.DiskRoot) == "" {
		return fmt.Errorf("disk_root is required when storage is %q", StorageDisk)
	}
	return nil
}

var allowedKeys = []string{
	"api_url",
	"log_level",
	"storage",
	"disk_root",
	"uploads.max_file_bytes",
	"uploads.max_files",
	"uploads.multipart_max_memory",
	"cache.max_total_bytes",
	"cache.max_entries",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "log_level":
		return c.LogLevel, nil
	case "storage":
		return c.Storage, nil
	case "disk_root":
		return c.DiskRoot, nil
	case "uploads.max_file_bytes":
		return strconv.FormatInt(c.Uploads.MaxFileBytes, 10), nil
	case "uploads.max_files":
		return strconv.Itoa(c.Uploads.MaxFiles), nil
	case "uploads.multipart_max_memory":
		return strconv.FormatInt(c.Uploads.MultipartMaxMemory, 10), nil
	case "cache.max_total_bytes":
		return strconv.FormatInt(c.Cache.MaxTotalBytes, 10), nil
	case "cache.max_entries":
		return strconv.Itoa(c.Cache.MaxEntries), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the per-directory config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "uploads.max_file_bytes", "uploads.multipart_max_memory":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "uploads.max_files":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "cache.max_total_bytes":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer", key)
		}
		return parsed, nil
	case "cache.max_entries":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer", key)
		}
		return parsed, nil
	case "storage":
		normalized := strings.ToLower(value)
		if normalized != StorageMemory && normalized != StorageDisk {
			return nil, fmt.Errorf("storage must be %q or %q", StorageMemory, StorageDisk)
		}
		return normalized, nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}
