package schema

import (
	"fmt"
	"sort"

	"github.com/siZaiMou/evoschema/evoerrors"
)

// Kind identifies the shape of a schema node.
type Kind string

const (
	// KindObject is a node with named child properties
	KindObject Kind = "object"
	// KindArray is a node with a single item schema
	KindArray Kind = "array"
	// KindString is a string scalar
	KindString Kind = "string"
	// KindInteger is an integer scalar
	KindInteger Kind = "integer"
	// KindNumber is a floating point scalar
	KindNumber Kind = "number"
	// KindBoolean is a boolean scalar
	KindBoolean Kind = "boolean"
)

// IsScalar reports whether k is one of the primitive scalar kinds.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindInteger, KindNumber, KindBoolean:
		return true
	}
	return false
}

// Node is one node of a schema tree. Exactly one of the three shapes is
// meaningful per node, selected by Kind: Object fields, Array fields, or
// scalar constraint fields. The zero value is a string scalar.
type Node struct {
	// Kind selects the node shape
	Kind Kind

	// Scalar constraints
	Enum      []any
	Minimum   *float64
	Maximum   *float64
	Pattern   string
	Format    string
	MaxLength *int

	// Object shape. Properties is keyed by field name; PropOrder preserves
	// the field declaration order. Required lists field names that must be
	// present; names not found in Properties are tolerated (mutations can
	// transiently produce them) and treated as an empty intersection.
	Properties map[string]*Node
	PropOrder  []string
	Required   []string

	// Array shape
	Items       *Node
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Conditional validation rules attached at the root ("allOf" blocks).
	// Carried through copy and serialization as opaque data; never diffed.
	Conditionals []map[string]any
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, Properties: make(map[string]*Node)}
}

// NewScalar returns a scalar node of the given kind.
func NewScalar(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewArray returns an array node with the given item schema.
func NewArray(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// Property returns the child node for the given field name, or nil.
func (n *Node) Property(name string) *Node {
	return n.Properties[name]
}

// HasProperty reports whether the object has a field with the given name.
func (n *Node) HasProperty(name string) bool {
	_, ok := n.Properties[name]
	return ok
}

// PropertyNames returns the field names in declaration order.
// The returned slice is a copy.
func (n *Node) PropertyNames() []string {
	names := make([]string, len(n.PropOrder))
	copy(names, n.PropOrder)
	return names
}

// NumProperties returns the number of fields on an object node.
func (n *Node) NumProperties() int {
	return len(n.Properties)
}

// SetProperty adds or replaces the field with the given name.
// New fields are appended to the declaration order.
func (n *Node) SetProperty(name string, child *Node) {
	if n.Properties == nil {
		n.Properties = make(map[string]*Node)
	}
	if _, exists := n.Properties[name]; !exists {
		n.PropOrder = append(n.PropOrder, name)
	}
	n.Properties[name] = child
}

// RemoveProperty removes the field with the given name, its position in the
// declaration order, and its required entry if present.
func (n *Node) RemoveProperty(name string) {
	if _, ok := n.Properties[name]; !ok {
		return
	}
	delete(n.Properties, name)
	n.PropOrder = removeString(n.PropOrder, name)
	n.Required = removeString(n.Required, name)
}

// RenameProperty renames a field in place, keeping its position in the
// declaration order and transferring required membership. It reports whether
// the rename was applied.
func (n *Node) RenameProperty(oldName, newName string) bool {
	child, ok := n.Properties[oldName]
	if !ok || oldName == newName {
		return false
	}
	if _, taken := n.Properties[newName]; taken {
		return false
	}
	delete(n.Properties, oldName)
	n.Properties[newName] = child
	for i, name := range n.PropOrder {
		if name == oldName {
			n.PropOrder[i] = newName
			break
		}
	}
	for i, name := range n.Required {
		if name == oldName {
			n.Required[i] = newName
			break
		}
	}
	return true
}

// IsRequired reports whether the given field name is in the required set.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AddRequired adds a field name to the required set if not already present.
func (n *Node) AddRequired(name string) {
	if !n.IsRequired(name) {
		n.Required = append(n.Required, name)
	}
}

// DropRequired removes a field name from the required set.
func (n *Node) DropRequired(name string) {
	n.Required = removeString(n.Required, name)
}

// CountFields returns the recursive field count of the tree: direct object
// properties, plus the fields of object-valued properties and of arrays
// whose items are objects.
func (n *Node) CountFields() int {
	if n == nil || n.Kind != KindObject {
		return 0
	}
	count := len(n.Properties)
	for _, name := range n.PropOrder {
		child := n.Properties[name]
		switch {
		case child.Kind == KindObject:
			count += child.CountFields()
		case child.Kind == KindArray && child.Items != nil && child.Items.Kind == KindObject:
			count += child.Items.CountFields()
		}
	}
	return count
}

// FromMap builds a schema tree from a parsed document mapping.
// It accepts both "type" and "bsonType" keyword spellings; BSON numeric
// aliases (int, long, double, decimal) normalize onto the dialect's integer
// and number kinds. A missing type defaults to object when "properties" is
// present, array when "items" is present, and string otherwise.
//
// Because Go maps carry no ordering, property order is normalized to the
// sorted field names; use Parse to preserve a document's declared order.
func FromMap(doc map[string]any) (*Node, error) {
	return fromMapAt("", doc)
}

func fromMapAt(path string, m map[string]any) (*Node, error) {
	node := &Node{Kind: declaredKind(m)}

	switch node.Kind {
	case KindObject:
		if raw, ok := m["properties"]; ok {
			props, ok := raw.(map[string]any)
			if !ok {
				return nil, evoerrors.NewMalformedInput(path, "properties",
					fmt.Sprintf("expected a mapping, got %T", raw))
			}
			node.Properties = make(map[string]*Node, len(props))
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				childMap, ok := props[name].(map[string]any)
				if !ok {
					return nil, evoerrors.NewMalformedInput(JoinPath(path, name), "properties",
						fmt.Sprintf("expected a mapping, got %T", props[name]))
				}
				child, err := fromMapAt(JoinPath(path, name), childMap)
				if err != nil {
					return nil, err
				}
				node.Properties[name] = child
				node.PropOrder = append(node.PropOrder, name)
			}
		} else {
			node.Properties = make(map[string]*Node)
		}
		req, err := stringList(path, "required", m["required"])
		if err != nil {
			return nil, err
		}
		node.Required = req

	case KindArray:
		if raw, ok := m["items"]; ok {
			itemMap, ok := raw.(map[string]any)
			if !ok {
				return nil, evoerrors.NewMalformedInput(path, "items",
					fmt.Sprintf("expected a mapping, got %T", raw))
			}
			item, err := fromMapAt(path+itemSuffix, itemMap)
			if err != nil {
				return nil, err
			}
			node.Items = item
		}
		var err error
		if node.MinItems, err = intField(path, "minItems", m["minItems"]); err != nil {
			return nil, err
		}
		if node.MaxItems, err = intField(path, "maxItems", m["maxItems"]); err != nil {
			return nil, err
		}
		if b, ok := m["uniqueItems"].(bool); ok {
			node.UniqueItems = b
		}

	default:
		if raw, ok := m["enum"]; ok {
			values, ok := raw.([]any)
			if !ok {
				return nil, evoerrors.NewMalformedInput(path, "enum",
					fmt.Sprintf("expected a list, got %T", raw))
			}
			node.Enum = append(node.Enum, values...)
		}
		var err error
		if node.Minimum, err = floatField(path, "minimum", m["minimum"]); err != nil {
			return nil, err
		}
		if node.Maximum, err = floatField(path, "maximum", m["maximum"]); err != nil {
			return nil, err
		}
		if node.MaxLength, err = intField(path, "maxLength", m["maxLength"]); err != nil {
			return nil, err
		}
		if s, ok := m["pattern"].(string); ok {
			node.Pattern = s
		}
		if s, ok := m["format"].(string); ok {
			node.Format = s
		}
	}

	// Conditional rules only appear at the root in practice, but accepting
	// them anywhere keeps round-trips lossless.
	if raw, ok := m["allOf"]; ok {
		if blocks, ok := raw.([]any); ok {
			for _, b := range blocks {
				if block, ok := b.(map[string]any); ok {
					node.Conditionals = append(node.Conditionals, block)
				}
			}
		}
	}

	return node, nil
}

// declaredKind resolves the node kind from "type"/"bsonType", falling back
// on shape keywords when no type is declared.
func declaredKind(m map[string]any) Kind {
	raw, ok := m["type"]
	if !ok {
		raw, ok = m["bsonType"]
	}
	if ok {
		switch t := raw.(type) {
		case string:
			return normalizeKind(t)
		case []any:
			// BSON validators declare numeric unions like ["int","long"];
			// the first non-null entry decides the dialect kind.
			for _, v := range t {
				if s, ok := v.(string); ok && s != "null" {
					return normalizeKind(s)
				}
			}
		}
	}
	if _, ok := m["properties"]; ok {
		return KindObject
	}
	if _, ok := m["items"]; ok {
		return KindArray
	}
	return KindString
}

func normalizeKind(s string) Kind {
	switch s {
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "integer", "int", "long":
		return KindInteger
	case "number", "double", "decimal":
		return KindNumber
	case "boolean", "bool":
		return KindBoolean
	default:
		return KindString
	}
}

func stringList(path, field string, raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, evoerrors.NewMalformedInput(path, field,
			fmt.Sprintf("expected a list, got %T", raw))
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, evoerrors.NewMalformedInput(path, field,
				fmt.Sprintf("expected a string entry, got %T", v))
		}
		out = append(out, s)
	}
	return out, nil
}

func floatField(path, field string, raw any) (*float64, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case uint64:
		f := float64(v)
		return &f, nil
	default:
		return nil, evoerrors.NewMalformedInput(path, field,
			fmt.Sprintf("expected a number, got %T", raw))
	}
}

func intField(path, field string, raw any) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case int:
		return &v, nil
	case int64:
		i := int(v)
		return &i, nil
	case uint64:
		i := int(v)
		return &i, nil
	case float64:
		i := int(v)
		return &i, nil
	default:
		return nil, evoerrors.NewMalformedInput(path, field,
			fmt.Sprintf("expected an integer, got %T", raw))
	}
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
