package differ

import "github.com/siZaiMou/evoschema/schema"

// classifyTypeChange compares the declared kinds of two nodes at the same
// path. Matching kinds are a no-op (nil). Array transitions are a distinct,
// common evolution pattern (cardinality change), so they classify as ToArray
// and ToScalar rather than as ordinary coercions.
func classifyTypeChange(path string, source, target *schema.Node) *Operation {
	if source.Kind == target.Kind {
		return nil
	}
	if target.Kind == schema.KindArray {
		return &Operation{Op: OpToArray, Path: path}
	}
	if source.Kind == schema.KindArray {
		return &Operation{Op: OpToScalar, Path: path}
	}
	return &Operation{
		Op:   OpChangeType,
		Path: path,
		From: string(source.Kind),
		To:   string(target.Kind),
	}
}
