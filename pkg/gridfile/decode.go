package gridfile

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/grid"
)

// Parse decodes a document whose root is a single mapping.
func Parse(data []byte, options ...Option) (*grid.Map, error) {
	d := newDecoder(options...)
	root, err := d.parseRoot(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, d.errorf(root, "expected a mapping at the document root, got %s", kindName(root))
	}
	return d.decodeMapping(root)
}

// ParseSet decodes a document whose root is either a mapping (one grid) or a
// sequence of mappings (one grid per element).
func ParseSet(data []byte, options ...Option) ([]*grid.Map, error) {
	d := newDecoder(options...)
	root, err := d.parseRoot(data)
	if err != nil {
		return nil, err
	}

	switch root.Kind {
	case yaml.MappingNode:
		m, err := d.decodeMapping(root)
		if err != nil {
			return nil, err
		}
		return []*grid.Map{m}, nil
	case yaml.SequenceNode:
		out := make([]*grid.Map, 0, len(root.Content))
		for i, item := range root.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, d.errorf(item, "grid %d: expected a mapping, got %s", i, kindName(item))
			}
			m, err := d.decodeMapping(item)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, d.errorf(root, "expected a mapping or a sequence of mappings at the document root, got %s", kindName(root))
	}
}

// decoder walks one document. yaml.v3 guards alias expansion only when
// decoding into Go values, so node walks keep their own budget and track the
// collections being expanded to reject self-referencing anchors.
type decoder struct {
	config
	expanding map[*yaml.Node]struct{}
	nodes     int
}

func newDecoder(options ...Option) *decoder {
	return &decoder{
		config:    newConfig(options...),
		expanding: make(map[*yaml.Node]struct{}),
	}
}

func (d *decoder) parseRoot(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("gridfile: document is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gridfile: parse%s: %w", d.describe(), err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("gridfile: document is empty")
	}
	return resolveAlias(doc.Content[0]), nil
}

// describe renders " <source> as <FORMAT>" with whichever parts are known.
func (d *decoder) describe() string {
	var out string
	if d.source != "" {
		out += " " + d.source
	}
	if d.format != document.FormatUnknown {
		out += " as " + d.format.String()
	}
	return out
}

func (d *decoder) decodeMapping(node *yaml.Node) (*grid.Map, error) {
	if err := d.enter(node); err != nil {
		return nil, err
	}
	defer delete(d.expanding, node)

	out := grid.NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, d.errorf(keyNode, "mapping keys must be scalars, got %s", kindName(keyNode))
		}
		var key any
		if err := keyNode.Decode(&key); err != nil {
			return nil, d.errorf(keyNode, "decode key: %v", err)
		}
		if key == nil {
			return nil, d.errorf(keyNode, "mapping keys must not be null")
		}
		if _, exists := out.Get(key); exists && !d.allowDuplicate {
			return nil, d.errorf(keyNode, "duplicate key %v", key)
		}

		value, err := d.decodeValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		out.Set(key, value)
	}
	return out, nil
}

func (d *decoder) decodeValue(node *yaml.Node) (any, error) {
	alias := node
	node = resolveAlias(node)
	if _, cycle := d.expanding[node]; cycle {
		return nil, d.errorf(alias, "alias *%s refers to an enclosing node", alias.Value)
	}

	switch node.Kind {
	case yaml.MappingNode:
		return d.decodeMapping(node)
	case yaml.SequenceNode:
		if err := d.enter(node); err != nil {
			return nil, err
		}
		defer delete(d.expanding, node)

		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := d.decodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.ScalarNode:
		if err := d.count(node); err != nil {
			return nil, err
		}
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, d.errorf(node, "decode scalar: %v", err)
		}
		return value, nil
	default:
		return nil, d.errorf(node, "unsupported node %s", kindName(node))
	}
}

// enter marks a collection as being expanded and charges it to the budget.
func (d *decoder) enter(node *yaml.Node) error {
	if err := d.count(node); err != nil {
		return err
	}
	d.expanding[node] = struct{}{}
	return nil
}

func (d *decoder) count(node *yaml.Node) error {
	d.nodes++
	if d.nodes > d.maxNodes {
		return d.errorf(node, "document expands to more than %d values", d.maxNodes)
	}
	return nil
}

func (d *decoder) errorf(node *yaml.Node, format string, args ...any) error {
	return &SyntaxError{
		Source:  d.source,
		Line:    node.Line,
		Column:  node.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + node.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
