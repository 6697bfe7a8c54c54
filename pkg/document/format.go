package document

import (
	"encoding/json"
	"mime"
	"net/url"
	"path"
	"strings"
)

// Format names the encoding of a grid document.
type Format string

const (
	FormatUnknown Format = ""
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
)

// String returns the upper-case label used in diagnostics.
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return strings.ToUpper(string(f))
}

// FormatFromPath maps a file extension to a Format. URL locations are
// matched on their path, ignoring query and fragment.
func FormatFromPath(location string) Format {
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		location = u.Path
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatUnknown
}

// FormatFromMediaType maps an HTTP Content-Type to a Format. Structured
// suffixes such as application/vnd.grid+json are recognised.
func FormatFromMediaType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return FormatJSON
	case mediaType == "application/yaml", mediaType == "application/x-yaml",
		mediaType == "text/yaml", mediaType == "text/x-yaml", strings.HasSuffix(mediaType, "+yaml"):
		return FormatYAML
	}
	return FormatUnknown
}

// DetectFormat inspects a payload. Anything that is not valid JSON is
// treated as YAML.
func DetectFormat(raw []byte) Format {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return FormatUnknown
	}
	if json.Valid(raw) {
		return FormatJSON
	}
	return FormatYAML
}
