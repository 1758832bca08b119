package mutator

import (
	"fmt"

	"github.com/siZaiMou/evoschema/schema"
)

// applySplitField replaces one field with two "_part1"/"_part2" halves of the
// same kind, carrying the required status over to both.
func applySplitField(root *schema.Node, step *stepContext) string {
	name := step.pick(stringProps(root))
	field := root.Property(name)
	wasRequired := root.IsRequired(name)

	first := name + "_part1"
	second := name + "_part2"
	root.SetProperty(first, field.DeepCopy())
	root.SetProperty(second, field.DeepCopy())
	root.RemoveProperty(name)
	if wasRequired {
		root.AddRequired(first)
		root.AddRequired(second)
	}
	return fmt.Sprintf("split field %q into %q and %q", name, first, second)
}

// applyMergeFields replaces two scalar fields with a single "_merged" string
// field, required when either source was.
func applyMergeFields(root *schema.Node, step *stepContext) string {
	pair := step.sample(scalarProps(root), 2)
	merged := pair[0] + "_" + pair[1] + "_merged"
	wasRequired := root.IsRequired(pair[0]) || root.IsRequired(pair[1])

	root.RemoveProperty(pair[0])
	root.RemoveProperty(pair[1])
	root.SetProperty(merged, schema.NewScalar(schema.KindString))
	if wasRequired {
		root.AddRequired(merged)
	}
	return fmt.Sprintf("merged fields %q and %q into %q", pair[0], pair[1], merged)
}

// conditionalConsts are the trigger values used by conditional rules.
var conditionalConsts = []string{"true", "false", "yes", "no", "required", "optional"}

// applyAddConditional appends an if/then rule to the root: when one field
// holds a constant value, another becomes required.
func applyAddConditional(root *schema.Node, step *stepContext) string {
	pair := step.sample(root.PropertyNames(), 2)
	trigger, consequence := pair[0], pair[1]
	value := step.pick(conditionalConsts)

	root.Conditionals = append(root.Conditionals, map[string]any{
		"if": map[string]any{
			"properties": map[string]any{
				trigger: map[string]any{"const": value},
			},
		},
		"then": map[string]any{
			"required": []any{consequence},
		},
	})
	return fmt.Sprintf("added conditional rule: %q == %q requires %q", trigger, value, consequence)
}
