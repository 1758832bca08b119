package schema

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/siZaiMou/evoschema/evoerrors"
)

// Parse builds a schema tree from YAML or JSON bytes. JSON documents parse
// through the YAML reader, so both formats take the same entry point.
//
// Unlike [FromMap], Parse preserves the document's declared property order.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &evoerrors.MalformedInputError{Message: "invalid document", Cause: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, evoerrors.NewMalformedInput("", "", "empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, evoerrors.NewMalformedInput("", "", "document root must be a mapping")
	}
	return parseMapping("", root)
}

// parseMapping converts one schema mapping node, walking nested mappings in
// declaration order. It decodes the mapping to a plain map for the keyword
// fields and rebuilds the property order from the YAML node structure.
func parseMapping(path string, mapping *yaml.Node) (*Node, error) {
	var m map[string]any
	if err := mapping.Decode(&m); err != nil {
		return nil, &evoerrors.MalformedInputError{Path: path, Message: "invalid mapping", Cause: err}
	}

	node, err := fromMapAt(path, m)
	if err != nil {
		return nil, err
	}

	// Rebuild object trees from the YAML structure so nested property order
	// survives; fromMapAt already validated the shapes.
	if node.Kind == KindObject {
		if props := mappingValue(mapping, "properties"); props != nil {
			node.Properties = make(map[string]*Node, len(props.Content)/2)
			node.PropOrder = node.PropOrder[:0]
			for i := 0; i+1 < len(props.Content); i += 2 {
				name := props.Content[i].Value
				child, err := parseMapping(JoinPath(path, name), props.Content[i+1])
				if err != nil {
					return nil, err
				}
				node.SetProperty(name, child)
			}
		}
	} else if node.Kind == KindArray && node.Items != nil {
		if items := mappingValue(mapping, "items"); items != nil {
			item, err := parseMapping(path+itemSuffix, items)
			if err != nil {
				return nil, err
			}
			node.Items = item
		}
	}

	return node, nil
}

// mappingValue returns the value node for the given key of a mapping node,
// or nil when absent or not itself a mapping.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			v := mapping.Content[i+1]
			if v.Kind == yaml.MappingNode {
				return v
			}
			return nil
		}
	}
	return nil
}

// ToMap serializes the tree back to a plain document mapping using the
// dialect's "type" spelling. The result round-trips through [FromMap].
func (n *Node) ToMap() map[string]any {
	m := map[string]any{"type": string(n.Kind)}
	switch n.Kind {
	case KindObject:
		props := make(map[string]any, len(n.Properties))
		for name, child := range n.Properties {
			props[name] = child.ToMap()
		}
		m["properties"] = props
		if len(n.Required) > 0 {
			req := make([]any, len(n.Required))
			for i, r := range n.Required {
				req[i] = r
			}
			m["required"] = req
		}
	case KindArray:
		if n.Items != nil {
			m["items"] = n.Items.ToMap()
		}
		if n.MinItems != nil {
			m["minItems"] = *n.MinItems
		}
		if n.MaxItems != nil {
			m["maxItems"] = *n.MaxItems
		}
		if n.UniqueItems {
			m["uniqueItems"] = true
		}
	default:
		if len(n.Enum) > 0 {
			m["enum"] = append([]any(nil), n.Enum...)
		}
		if n.Minimum != nil {
			m["minimum"] = *n.Minimum
		}
		if n.Maximum != nil {
			m["maximum"] = *n.Maximum
		}
		if n.MaxLength != nil {
			m["maxLength"] = *n.MaxLength
		}
		if n.Pattern != "" {
			m["pattern"] = n.Pattern
		}
		if n.Format != "" {
			m["format"] = n.Format
		}
	}
	if len(n.Conditionals) > 0 {
		blocks := make([]any, len(n.Conditionals))
		for i, b := range n.Conditionals {
			blocks[i] = b
		}
		m["allOf"] = blocks
	}
	return m
}

// String returns a short description of the node for logs and errors.
func (n *Node) String() string {
	switch n.Kind {
	case KindObject:
		return fmt.Sprintf("object(%d properties)", len(n.Properties))
	case KindArray:
		if n.Items != nil {
			return fmt.Sprintf("array(%s)", n.Items.Kind)
		}
		return "array"
	default:
		return string(n.Kind)
	}
}
