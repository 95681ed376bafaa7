package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"stash/internal/cache"
)

const (
	allowRemoteEnvKey = "STASH_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 60 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second

	uploadConcurrencyLimit = 8

	defaultMaxFileBytes       = 10 << 20
	defaultMaxFiles           = 10
	defaultMultipartMaxMemory = 8 << 20
)

// Options carries per-request upload limits into the server.
type Options struct {
	MaxFileBytes       int64
	MaxFiles           int
	MultipartMaxMemory int64
}

// Server wraps HTTP handlers for the stash cache API.
type Server struct {
	addr               string
	store              cache.Store
	service            *UploadService
	logger             *slog.Logger
	startTime          time.Time
	maxFileBytes       int64
	maxFiles           int
	multipartMaxMemory int64
	uploadLimiter      chan struct{}
}

// New creates a new server instance around a store.
func New(addr string, store cache.Store, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = defaultMaxFileBytes
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaultMaxFiles
	}
	if opts.MultipartMaxMemory <= 0 {
		opts.MultipartMaxMemory = defaultMultipartMaxMemory
	}

	return &Server{
		addr:               addr,
		store:              store,
		service:            NewUploadService(store, opts.MaxFileBytes, opts.MaxFiles),
		logger:             logger,
		startTime:          time.Now(),
		maxFileBytes:       opts.MaxFileBytes,
		maxFiles:           opts.MaxFiles,
		multipartMaxMemory: opts.MultipartMaxMemory,
		uploadLimiter:      make(chan struct{}, uploadConcurrencyLimit),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr, "storage", fmt.Sprintf("%T", s.store))
	s.log().Info("cache is ephemeral: content does not survive a restart")
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) acquireLimiter(limiter chan struct{}, w http.ResponseWriter, r *http.Request, name string) bool {
	if limiter == nil {
		return true
	}
	select {
	case limiter <- struct{}{}:
		return true
	default:
		err := apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many concurrent %s requests", name),
		}
		s.writeErrorReq(w, r, http.StatusTooManyRequests, err)
		return false
	}
}

func (s *Server) releaseLimiter(limiter chan struct{}) {
	if limiter == nil {
		return
	}
	select {
	case <-limiter:
	default:
	}
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
