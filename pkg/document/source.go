package document

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a grid document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the places a grid document can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type origin struct {
	kind     SourceKind
	location string
}

func (o origin) Kind() SourceKind { return o.kind }

func (o origin) Location() string { return o.location }

func (o origin) String() string { return string(o.kind) + ":" + o.location }

// SourceFromFile points at a grid document on disk.
func SourceFromFile(path string) Source {
	return origin{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at an entry of the loader's fs.FS.
func SourceFromFS(name string) Source {
	return origin{kind: SourceKindFS, location: name}
}

// ParseURLSource validates raw as an absolute http(s) URL.
func ParseURLSource(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("document: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("document: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("document: unsupported URL scheme %q", u.Scheme)
	}
	return origin{kind: SourceKindURL, location: raw}, nil
}

// SourceFromURL is like ParseURLSource but panics on a malformed URL, which
// suits sources fixed at compile time.
func SourceFromURL(raw string) Source {
	src, err := ParseURLSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}
