package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-paramgrid/pkg/document"
)

const acceptGridDocuments = "application/yaml, application/json;q=0.9, */*;q=0.5"

// Loader implements document.Loader for files, fs.FS entries and HTTP URLs.
// Every payload is capped at the configured document size.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
	logger  *slog.Logger
}

var _ document.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. HTTP stays disabled
// unless a client or the fallback is configured.
func New(options document.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	limit := options.MaxDocumentSize
	if limit <= 0 {
		limit = document.DefaultMaxDocumentSize
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Loader{
		files:   options.FileSystem,
		client:  client,
		timeout: timeout,
		limit:   limit,
		logger:  logger,
	}
}

// Load reads the document behind src. The format comes from the HTTP
// Content-Type when the server declares one, otherwise from the location.
func (l *Loader) Load(ctx context.Context, src document.Source) (document.Document, error) {
	if src == nil {
		return document.Document{}, errors.New("grid loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return document.Document{}, err
	}

	data, declared, err := l.read(ctx, src)
	if err != nil {
		l.logger.DebugContext(ctx, "grid document load failed",
			"kind", src.Kind(), "location", src.Location(), "error", err)
		return document.Document{}, err
	}

	doc, err := document.NewDocument(src, data)
	if err != nil {
		return document.Document{}, fmt.Errorf("grid loader: %s: %w", src.Location(), err)
	}
	doc = doc.WithFormat(declared)

	l.logger.DebugContext(ctx, "grid document loaded",
		"kind", src.Kind(), "location", src.Location(), "format", doc.Format(), "bytes", len(data))
	return doc, nil
}

func (l *Loader) read(ctx context.Context, src document.Source) ([]byte, document.Format, error) {
	location := src.Location()
	if location == "" {
		return nil, document.FormatUnknown, fmt.Errorf("grid loader: %s location is required", src.Kind())
	}

	switch src.Kind() {
	case document.SourceKindFile:
		f, err := os.Open(location)
		if err != nil {
			return nil, document.FormatUnknown, err
		}
		defer f.Close()
		data, err := l.readAll(f, location)
		return data, document.FormatUnknown, err

	case document.SourceKindFS:
		if l.files == nil {
			return nil, document.FormatUnknown, errors.New("grid loader: no fs.FS configured")
		}
		f, err := l.files.Open(location)
		if err != nil {
			return nil, document.FormatUnknown, err
		}
		defer f.Close()
		data, err := l.readAll(f, location)
		return data, document.FormatUnknown, err

	case document.SourceKindURL:
		if l.client == nil {
			return nil, document.FormatUnknown, errors.New("grid loader: http support disabled")
		}
		return l.fetch(ctx, location)

	default:
		return nil, document.FormatUnknown, fmt.Errorf("grid loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, document.Format, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, document.FormatUnknown, err
	}
	req.Header.Set("Accept", acceptGridDocuments)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, document.FormatUnknown, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, document.FormatUnknown, fmt.Errorf("grid loader: %s: unexpected status %s", location, resp.Status)
	}
	if resp.ContentLength > l.limit {
		return nil, document.FormatUnknown, l.tooLarge(location)
	}

	data, err := l.readAll(resp.Body, location)
	return data, document.FormatFromMediaType(resp.Header.Get("Content-Type")), err
}

// readAll reads one byte past the limit so an oversized payload is reported
// instead of silently truncated.
func (l *Loader) readAll(r io.Reader, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.limit {
		return nil, l.tooLarge(location)
	}
	return data, nil
}

func (l *Loader) tooLarge(location string) error {
	return fmt.Errorf("grid loader: %s exceeds %d bytes", location, l.limit)
}
