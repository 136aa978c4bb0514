// Package yaml provides a YAML codec implementation.
package yaml

import (
	"errors"
	"fmt"

	"github.com/zoobzio/dossier"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements dossier.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec. *dossier.Mapping values are written and read
// through yaml.Node so key order survives.
func New() dossier.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(*dossier.Mapping)
	if !ok || m == nil {
		return yaml.Marshal(v)
	}
	node, err := mappingNode(m)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*dossier.Mapping)
	if !ok {
		return yaml.Unmarshal(data, v)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return errors.New("yaml: empty document")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("yaml: expected mapping, got %s", root.Tag)
	}
	return fillMapping(m, root)
}

func mappingNode(m *dossier.Mapping) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m.Entries() {
		val, err := valueNode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *dossier.Mapping:
		if x != nil {
			return mappingNode(x)
		}
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			n, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func fillMapping(m *dossier.Mapping, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Tag == "!!merge" {
			if err := mergeMapping(m, resolve(node.Content[i+1])); err != nil {
				return err
			}
			continue
		}

		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		val, err := nodeValue(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		m.Set(key, val)
	}
	return nil
}

// mergeMapping applies a "<<" merge key. Keys already present win.
func mergeMapping(m *dossier.Mapping, node *yaml.Node) error {
	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}
	for _, src := range sources {
		src = resolve(src)
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("yaml: cannot merge %s", src.Tag)
		}
		merged := dossier.NewMapping()
		if err := fillMapping(merged, src); err != nil {
			return err
		}
		for _, e := range merged.Entries() {
			if _, ok := m.Get(e.Key); !ok {
				m.Set(e.Key, e.Value)
			}
		}
	}
	return nil
}

func nodeValue(node *yaml.Node) (any, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.MappingNode:
		m := dossier.NewMapping()
		if err := fillMapping(m, node); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
