package document

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"
)

// Loader fetches grid documents from files, an fs.FS, or HTTP.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions is the resolved loader configuration. The zero value reads
// files only.
type LoaderOptions struct {
	// FileSystem serves SourceFromFS sources.
	FileSystem fs.FS

	// HTTPClient fetches SourceFromURL sources. Without it, and without
	// AllowHTTPFallback, URL sources are refused.
	HTTPClient *http.Client

	// AllowHTTPFallback fetches URLs with a plain client when HTTPClient is nil.
	AllowHTTPFallback bool

	// RequestTimeout bounds each fetch, including the body read.
	RequestTimeout time.Duration

	// MaxDocumentSize caps the payload read from any source. Zero means
	// DefaultMaxDocumentSize.
	MaxDocumentSize int64

	// Logger receives debug records for each load. Nil disables logging.
	Logger *slog.Logger
}

// DefaultMaxDocumentSize bounds grid documents when no explicit limit is set.
const DefaultMaxDocumentSize int64 = 4 << 20

// LoaderOption sets one field of LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem serves SourceFromFS names from files, typically an embed.FS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient fetches URL sources with client. The client is copied.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback allows URL sources through a plain client bounded by
// timeout. Zero means no timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithDefaultSources allows URL sources unless a client or fallback was
// already configured.
func WithDefaultSources() LoaderOption {
	return func(opts *LoaderOptions) {
		if !opts.AllowHTTPFallback && opts.HTTPClient == nil {
			opts.AllowHTTPFallback = true
		}
	}
}

// WithMaxDocumentSize caps how many bytes a single document may hold.
func WithMaxDocumentSize(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentSize = limit
	}
}

// WithLogger routes loader diagnostics to logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// NewLoaderOptions resolves options in order.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
