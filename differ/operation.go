package differ

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Op discriminates the operation variants emitted by the diff engine and
// described by the mutation engine. The same vocabulary covers both
// directions, so diff output can serve as a benchmark oracle for generated
// evolution sequences.
type Op string

// Structural operations change field existence or addressing.
const (
	// OpAddField is a field that exists only in the target snapshot
	OpAddField Op = "AddField"
	// OpDropField is a field that exists only in the source snapshot
	OpDropField Op = "DropField"
	// OpRenameField is a matched pair with the same parent and a new leaf name
	OpRenameField Op = "RenameField"
	// OpMoveField is a matched pair with a new parent and the same leaf name
	OpMoveField Op = "MoveField"
)

// Type operations change a node's declared kind at a fixed path.
const (
	// OpChangeType is a generic kind coercion (e.g. string to integer)
	OpChangeType Op = "ChangeType"
	// OpToArray is a cardinality change from a scalar or object to an array
	OpToArray Op = "ToArray"
	// OpToScalar is a cardinality change from an array to a scalar or object
	OpToScalar Op = "ToScalar"
)

// Constraint operations change validation rules at a fixed path.
const (
	OpAddRequired   Op = "AddRequired"
	OpDropRequired  Op = "DropRequired"
	OpAddRange      Op = "AddRange"
	OpModifyRange   Op = "ModifyRange"
	OpDropRange     Op = "DropRange"
	OpAddEnum       Op = "AddEnum"
	OpModifyEnum    Op = "ModifyEnum"
	OpDropEnum      Op = "DropEnum"
	OpAddPattern    Op = "AddPattern"
	OpModifyPattern Op = "ModifyPattern"
)

// Operation is one emitted schema-evolution operation. It is pure data: the
// Op discriminator plus the payload fields meaningful for that variant.
// Serialization uses an "op" discriminator with omitted empty payloads,
// which is the canonical interchange format for downstream tooling.
type Operation struct {
	// Op discriminates the variant
	Op Op `json:"op"`
	// Path addresses the affected node (unset for rename/move, which carry
	// From and To instead)
	Path string `json:"path,omitempty"`
	// From is the prior value: a path for moves and renames, a kind for
	// ChangeType, a bounds mapping for ModifyRange, a value list for ModifyEnum,
	// a pattern for ModifyPattern
	From any `json:"from,omitempty"`
	// To is the new value, symmetric with From
	To any `json:"to,omitempty"`
	// Values carries the full value list for AddEnum
	Values []any `json:"values,omitempty"`
	// Spec carries the added bounds for AddRange
	Spec map[string]any `json:"spec,omitempty"`
	// DType is the declared kind of an added field
	DType string `json:"dtype,omitempty"`
	// Pattern carries the added pattern for AddPattern
	Pattern string `json:"pattern,omitempty"`
}

// String returns a human-readable one-line description of the operation.
func (o Operation) String() string {
	switch o.Op {
	case OpAddField:
		return fmt.Sprintf("%s %s (type: %s)", o.Op, o.Path, o.DType)
	case OpRenameField, OpMoveField:
		return fmt.Sprintf("%s %v -> %v", o.Op, o.From, o.To)
	case OpChangeType:
		return fmt.Sprintf("%s %s: %v -> %v", o.Op, o.Path, o.From, o.To)
	case OpModifyRange, OpModifyEnum, OpModifyPattern:
		return fmt.Sprintf("%s %s: %v -> %v", o.Op, o.Path, o.From, o.To)
	case OpAddEnum:
		return fmt.Sprintf("%s %s: %v", o.Op, o.Path, o.Values)
	case OpAddRange:
		return fmt.Sprintf("%s %s: %v", o.Op, o.Path, o.Spec)
	case OpAddPattern:
		return fmt.Sprintf("%s %s: %q", o.Op, o.Path, o.Pattern)
	default:
		return fmt.Sprintf("%s %s", o.Op, o.Path)
	}
}

// MarshalOperations serializes an operation list as a JSON array.
func MarshalOperations(ops []Operation) ([]byte, error) {
	return json.Marshal(ops)
}

// sortPath is the path used for deterministic ordering: the source-side path
// for moves and renames, Path otherwise.
func (o Operation) sortPath() string {
	if o.Path != "" {
		return o.Path
	}
	if from, ok := o.From.(string); ok {
		return from
	}
	return ""
}

// IsStructural reports whether the operation changes field existence or
// addressing rather than constraints or types.
func (o Operation) IsStructural() bool {
	switch o.Op {
	case OpAddField, OpDropField, OpRenameField, OpMoveField:
		return true
	}
	return false
}

// IsTypeChange reports whether the operation changes a node's declared kind.
func (o Operation) IsTypeChange() bool {
	switch o.Op {
	case OpChangeType, OpToArray, OpToScalar:
		return true
	}
	return false
}
