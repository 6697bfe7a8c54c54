package document

import "errors"

// Document is a raw grid payload together with its origin and encoding.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument copies raw and records where it came from. The format is taken
// from the location's extension, falling back to inspecting the payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("document: raw document is empty")
	}

	format := FormatFromPath(src.Location())
	if format == FormatUnknown {
		format = DetectFormat(raw)
	}
	return Document{source: src, raw: append([]byte(nil), raw...), format: format}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// WithFormat returns a copy of d declaring format, typically taken from a
// Content-Type header. FormatUnknown leaves d unchanged.
func (d Document) WithFormat(format Format) Document {
	if format != FormatUnknown {
		d.format = format
	}
	return d
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Format() Format { return d.format }

// Location returns the origin's location, or "" for a zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
