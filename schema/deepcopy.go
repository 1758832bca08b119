package schema

// DeepCopy returns a complete copy of the tree sharing no mutable state with
// the original. Every evolution step copies before applying changes so that
// emitted snapshots stay immutable.
func (n *Node) DeepCopy() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Kind:        n.Kind,
		Pattern:     n.Pattern,
		Format:      n.Format,
		UniqueItems: n.UniqueItems,
	}
	if n.Minimum != nil {
		v := *n.Minimum
		cp.Minimum = &v
	}
	if n.Maximum != nil {
		v := *n.Maximum
		cp.Maximum = &v
	}
	if n.MaxLength != nil {
		v := *n.MaxLength
		cp.MaxLength = &v
	}
	if n.MinItems != nil {
		v := *n.MinItems
		cp.MinItems = &v
	}
	if n.MaxItems != nil {
		v := *n.MaxItems
		cp.MaxItems = &v
	}
	if n.Enum != nil {
		cp.Enum = make([]any, len(n.Enum))
		for i, v := range n.Enum {
			cp.Enum[i] = copyValue(v)
		}
	}
	if n.Properties != nil {
		cp.Properties = make(map[string]*Node, len(n.Properties))
		for name, child := range n.Properties {
			cp.Properties[name] = child.DeepCopy()
		}
	}
	if n.PropOrder != nil {
		cp.PropOrder = make([]string, len(n.PropOrder))
		copy(cp.PropOrder, n.PropOrder)
	}
	if n.Required != nil {
		cp.Required = make([]string, len(n.Required))
		copy(cp.Required, n.Required)
	}
	cp.Items = n.Items.DeepCopy()
	if n.Conditionals != nil {
		cp.Conditionals = make([]map[string]any, len(n.Conditionals))
		for i, block := range n.Conditionals {
			cp.Conditionals[i] = copyValue(block).(map[string]any)
		}
	}
	return cp
}

// copyValue deep-copies the plain-data values that appear in enum lists and
// conditional blocks: scalars, []any, and map[string]any.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = copyValue(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = copyValue(val)
		}
		return cp
	default:
		return v
	}
}
