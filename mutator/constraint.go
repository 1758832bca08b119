package mutator

import (
	"fmt"

	"github.com/siZaiMou/evoschema/schema"
)

// applyChangeRequired toggles the required status of one top-level field.
func applyChangeRequired(root *schema.Node, step *stepContext) string {
	if len(root.Required) > 0 && step.roll(0.5) {
		name := step.pick(root.Required)
		root.DropRequired(name)
		return fmt.Sprintf("made field %q optional", name)
	}
	var optional []string
	for _, name := range root.PropOrder {
		if !root.IsRequired(name) {
			optional = append(optional, name)
		}
	}
	if len(optional) == 0 {
		return "no optional field to require"
	}
	name := step.pick(optional)
	root.AddRequired(name)
	return fmt.Sprintf("made field %q required", name)
}

// applyChangeEnumOptions grows, shrinks, replaces, or introduces the enum
// list of a string field.
func applyChangeEnumOptions(root *schema.Node, step *stepContext) string {
	if withEnum := enumProps(root); len(withEnum) > 0 {
		name := step.pick(withEnum)
		field := root.Property(name)
		switch step.pick([]string{"add", "remove", "replace_all"}) {
		case "add":
			if len(field.Enum) < 10 {
				field.Enum = append(field.Enum, fmt.Sprintf("option_v%d", step.version))
				return fmt.Sprintf("added enum option to field %q", name)
			}
			return fmt.Sprintf("enum of field %q already at capacity", name)
		case "remove":
			if len(field.Enum) > 1 {
				i := step.rng.Intn(len(field.Enum))
				field.Enum = append(field.Enum[:i], field.Enum[i+1:]...)
				return fmt.Sprintf("removed enum option from field %q", name)
			}
			return fmt.Sprintf("enum of field %q too small to shrink", name)
		default:
			count := step.intRange(1, 5)
			fresh := make([]any, count)
			for i := range fresh {
				fresh[i] = fmt.Sprintf("new_opt_%d", i)
			}
			field.Enum = fresh
			return fmt.Sprintf("replaced enum options of field %q", name)
		}
	}

	// No enum anywhere yet: introduce one on a string field.
	strings := stringProps(root)
	if len(strings) == 0 {
		return "no field suitable for an enum"
	}
	name := step.pick(strings)
	count := step.intRange(2, 5)
	values := make([]any, count)
	for i := range values {
		values[i] = fmt.Sprintf("choice_%d", i)
	}
	root.Property(name).Enum = values
	return fmt.Sprintf("added enum constraint to field %q", name)
}

// applyChangeMinMax tightens, loosens, or introduces the numeric bounds of a
// number or integer field.
func applyChangeMinMax(root *schema.Node, step *stepContext) string {
	name := step.pick(numericProps(root))
	field := root.Property(name)

	if field.Minimum == nil && field.Maximum == nil {
		lo := float64(step.intRange(0, 50))
		hi := float64(step.intRange(51, 200))
		field.Minimum = &lo
		field.Maximum = &hi
		return fmt.Sprintf("added range constraint to field %q", name)
	}

	switch step.pick([]string{"tighten", "loosen", "shift"}) {
	case "tighten":
		if field.Minimum != nil {
			v := *field.Minimum + float64(step.intRange(1, 10))
			field.Minimum = &v
		}
		if field.Maximum != nil {
			v := *field.Maximum - float64(step.intRange(1, 10))
			field.Maximum = &v
		}
		return fmt.Sprintf("tightened range of field %q", name)
	case "loosen":
		if field.Minimum != nil {
			v := *field.Minimum - float64(step.intRange(1, 10))
			field.Minimum = &v
		}
		if field.Maximum != nil {
			v := *field.Maximum + float64(step.intRange(1, 10))
			field.Maximum = &v
		}
		return fmt.Sprintf("loosened range of field %q", name)
	default:
		delta := float64(step.intRange(-20, 20))
		if field.Minimum != nil {
			v := *field.Minimum + delta
			field.Minimum = &v
		}
		if field.Maximum != nil {
			v := *field.Maximum + delta
			field.Maximum = &v
		}
		return fmt.Sprintf("shifted range of field %q", name)
	}
}

// patternChoices are the regexes the pattern operator cycles through.
var patternChoices = []string{
	"^[A-Za-z]+$",
	"^[0-9]+$",
	"^[A-Za-z0-9_]+$",
	"^[a-z]+(-[a-z]+)*$",
	"^[A-Z]{2,5}-[0-9]{3,6}$",
}

// applyChangePattern sets or replaces the regex pattern of a string field,
// always landing on a pattern different from the current one when replacing.
func applyChangePattern(root *schema.Node, step *stepContext) string {
	name := step.pick(stringProps(root))
	field := root.Property(name)

	if field.Pattern == "" {
		field.Pattern = step.pick(patternChoices)
		return fmt.Sprintf("added pattern constraint to field %q", name)
	}
	var others []string
	for _, p := range patternChoices {
		if p != field.Pattern {
			others = append(others, p)
		}
	}
	field.Pattern = step.pick(others)
	return fmt.Sprintf("changed pattern constraint of field %q", name)
}
