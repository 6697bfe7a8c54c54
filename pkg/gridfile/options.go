package gridfile

import (
	"strings"

	"github.com/goliatone/go-paramgrid/pkg/document"
)

// DefaultMaxNodes bounds how many values a document may decode into once
// aliases are expanded.
const DefaultMaxNodes = 100_000

// Option configures decoding.
type Option func(*config)

type config struct {
	source         string
	format         document.Format
	allowDuplicate bool
	maxNodes       int
}

// WithSourceName names the document in error messages, usually its path.
func WithSourceName(name string) Option {
	return func(cfg *config) {
		cfg.source = strings.TrimSpace(name)
	}
}

// WithFormat declares the document encoding. JSON and YAML decode the same
// way; the format only changes diagnostics.
func WithFormat(format document.Format) Option {
	return func(cfg *config) {
		cfg.format = format
	}
}

// WithDuplicateKeys lets a later key overwrite an earlier one in the same
// mapping instead of failing. The key keeps its first position.
func WithDuplicateKeys() Option {
	return func(cfg *config) {
		cfg.allowDuplicate = true
	}
}

// WithMaxNodes overrides DefaultMaxNodes. Values below one keep the default.
func WithMaxNodes(limit int) Option {
	return func(cfg *config) {
		if limit > 0 {
			cfg.maxNodes = limit
		}
	}
}

func newConfig(options ...Option) config {
	cfg := config{maxNodes: DefaultMaxNodes}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
