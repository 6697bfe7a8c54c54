package gridfile

import (
	"bytes"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramgrid/pkg/grid"
)

// Encode renders m as YAML, keeping key order. It works for grids and for the
// combinations they produce.
func Encode(m *grid.Map) ([]byte, error) {
	node, err := encodeMapping(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("gridfile: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("gridfile: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeMapping(m *grid.Map) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for key, value := range m.All() {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, fmt.Errorf("gridfile: encode key %v: %w", key, err)
		}
		valueNode, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("gridfile: encode %v: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func encodeValue(value any) (*yaml.Node, error) {
	if nested, ok := value.(*grid.Map); ok {
		return encodeMapping(nested)
	}

	if value != nil {
		rv := reflect.ValueOf(value)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
			for i := 0; i < rv.Len(); i++ {
				item, err := encodeValue(rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				if item.Kind != yaml.ScalarNode {
					node.Style = 0
				}
				node.Content = append(node.Content, item)
			}
			return node, nil
		}
	}

	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}
