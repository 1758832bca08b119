package differ

import (
	"fmt"
	"sort"

	"github.com/siZaiMou/evoschema/schema"
)

// compareConstraints emits range, enum, and pattern operations for two nodes
// at the same path. Output order is fixed (range, enum, pattern) so identical
// inputs always yield identical results.
func compareConstraints(path string, source, target *schema.Node) []Operation {
	var ops []Operation
	ops = append(ops, rangeOps(path, source, target)...)
	ops = append(ops, enumOps(path, source, target)...)
	ops = append(ops, patternOps(path, source, target)...)
	return ops
}

// rangeOps compares minimum/maximum bounds. AddRange fires when no bound
// existed before and one does now; DropRange when bounds existed and none
// remain; ModifyRange when bounds exist on both sides with different values.
func rangeOps(path string, source, target *schema.Node) []Operation {
	srcHas := source.Minimum != nil || source.Maximum != nil
	dstHas := target.Minimum != nil || target.Maximum != nil
	switch {
	case !srcHas && dstHas:
		return []Operation{{
			Op:   OpAddRange,
			Path: path,
			Spec: boundsMap(target.Minimum, target.Maximum),
		}}
	case srcHas && !dstHas:
		return []Operation{{Op: OpDropRange, Path: path}}
	case srcHas && dstHas:
		if !floatEqual(source.Minimum, target.Minimum) || !floatEqual(source.Maximum, target.Maximum) {
			return []Operation{{
				Op:   OpModifyRange,
				Path: path,
				From: boundsMap(source.Minimum, source.Maximum),
				To:   boundsMap(target.Minimum, target.Maximum),
			}}
		}
	}
	return nil
}

// enumOps compares enum value lists. Comparison is order-insensitive;
// ModifyEnum carries both full value lists.
func enumOps(path string, source, target *schema.Node) []Operation {
	srcHas := len(source.Enum) > 0
	dstHas := len(target.Enum) > 0
	switch {
	case !srcHas && dstHas:
		return []Operation{{
			Op:     OpAddEnum,
			Path:   path,
			Values: append([]any(nil), target.Enum...),
		}}
	case srcHas && !dstHas:
		return []Operation{{Op: OpDropEnum, Path: path}}
	case srcHas && dstHas:
		if !sameValueSet(source.Enum, target.Enum) {
			return []Operation{{
				Op:   OpModifyEnum,
				Path: path,
				From: append([]any(nil), source.Enum...),
				To:   append([]any(nil), target.Enum...),
			}}
		}
	}
	return nil
}

// patternOps compares pattern constraints: AddPattern when none existed,
// ModifyPattern when both exist and differ. A dropped pattern emits nothing.
func patternOps(path string, source, target *schema.Node) []Operation {
	switch {
	case source.Pattern == "" && target.Pattern != "":
		return []Operation{{Op: OpAddPattern, Path: path, Pattern: target.Pattern}}
	case source.Pattern != "" && target.Pattern != "" && source.Pattern != target.Pattern:
		return []Operation{{Op: OpModifyPattern, Path: path, From: source.Pattern, To: target.Pattern}}
	}
	return nil
}

// requiredOps diffs two object nodes' required sets at object granularity,
// emitting one AddRequired or DropRequired per symmetric-difference member
// in sorted order. The renames mapping (old leaf name to new leaf name, for
// accepted rename pairs under this object) is applied to the source set
// first, so a renamed field does not churn the required diff. Required names
// that never resolve against properties still participate; the engine
// tolerates such states rather than rejecting them.
func requiredOps(path string, source, target *schema.Node, renames map[string]string) []Operation {
	if source.Kind != schema.KindObject || target.Kind != schema.KindObject {
		return nil
	}
	srcSet := make(map[string]bool, len(source.Required))
	for _, name := range source.Required {
		if to, ok := renames[name]; ok {
			name = to
		}
		srcSet[name] = true
	}
	dstSet := make(map[string]bool, len(target.Required))
	for _, name := range target.Required {
		dstSet[name] = true
	}

	var addNames, dropNames []string
	for name := range dstSet {
		if !srcSet[name] {
			addNames = append(addNames, name)
		}
	}
	for name := range srcSet {
		if !dstSet[name] {
			dropNames = append(dropNames, name)
		}
	}
	sort.Strings(addNames)
	sort.Strings(dropNames)

	ops := make([]Operation, 0, len(addNames)+len(dropNames))
	for _, name := range addNames {
		ops = append(ops, Operation{Op: OpAddRequired, Path: schema.JoinPath(path, name)})
	}
	for _, name := range dropNames {
		ops = append(ops, Operation{Op: OpDropRequired, Path: schema.JoinPath(path, name)})
	}
	return ops
}

func boundsMap(minimum, maximum *float64) map[string]any {
	m := make(map[string]any, 2)
	if minimum != nil {
		m["minimum"] = *minimum
	}
	if maximum != nil {
		m["maximum"] = *maximum
	}
	return m
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sameValueSet compares two value lists order-insensitively by their
// canonical string forms.
func sameValueSet(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	keysA := make([]string, len(a))
	keysB := make([]string, len(b))
	for i, v := range a {
		keysA[i] = fmt.Sprintf("%v", v)
	}
	for i, v := range b {
		keysB[i] = fmt.Sprintf("%v", v)
	}
	sort.Strings(keysA)
	sort.Strings(keysB)
	for i := range keysA {
		if keysA[i] != keysB[i] {
			return false
		}
	}
	return true
}
