package mutator

import (
	"fmt"
	"strings"

	"github.com/siZaiMou/evoschema/schema"
)

var (
	fieldKinds    = []string{"string", "integer", "number", "boolean", "object", "array"}
	itemKinds     = []string{"string", "integer", "number", "boolean", "object"}
	stringFormats = []string{"email", "date-time", "uri", "hostname", ""}
	baseNames     = []string{"field", "property", "attr", "item", "running_case"}
)

// applyAddField adds a new top-level field with a randomly drawn kind and,
// depending on the kind, range, format, pattern, or item constraints.
func applyAddField(root *schema.Node, step *stepContext) string {
	kind := schema.Kind(step.pick(fieldKinds))
	name := fmt.Sprintf("%s_%d", step.pick(baseNames), step.version)

	var child *schema.Node
	switch kind {
	case schema.KindString:
		child = schema.NewScalar(schema.KindString)
		child.Format = step.pick(stringFormats)
		if step.roll(0.7) {
			n := step.intRange(5, 100)
			child.MaxLength = &n
		}
		if step.roll(0.8) {
			child.Pattern = "^[A-Za-z0-9]+$"
		}
	case schema.KindInteger, schema.KindNumber:
		child = schema.NewScalar(kind)
		if step.roll(0.5) {
			v := float64(step.intRange(0, 100))
			child.Minimum = &v
		}
		if step.roll(0.5) {
			v := float64(step.intRange(101, 200))
			child.Maximum = &v
		}
	case schema.KindArray:
		child = schema.NewArray(schema.NewScalar(schema.Kind(step.pick(itemKinds))))
		if child.Items.Kind == schema.KindObject {
			child.Items.Properties = make(map[string]*schema.Node)
		}
		if step.roll(0.5) {
			n := step.intRange(1, 5)
			child.MinItems = &n
		}
		if step.roll(0.5) {
			n := step.intRange(6, 20)
			child.MaxItems = &n
		}
	case schema.KindObject:
		child = schema.NewObject()
		child.SetProperty(fmt.Sprintf("nested_%d_1", step.version), schema.NewScalar(schema.KindString))
		child.SetProperty(fmt.Sprintf("nested_%d_2", step.version), schema.NewScalar(schema.KindInteger))
	default:
		child = schema.NewScalar(kind)
	}

	root.SetProperty(name, child)
	if step.roll(0.5) {
		root.AddRequired(name)
	}
	return fmt.Sprintf("added field %q (type: %s)", name, kind)
}

// applyRemoveField drops a top-level field, preferring optional fields so
// required data survives longer across versions.
func applyRemoveField(root *schema.Node, step *stepContext) string {
	candidates := filterProps(root, func(*schema.Node) bool { return true })
	var optional []string
	for _, name := range candidates {
		if !root.IsRequired(name) {
			optional = append(optional, name)
		}
	}
	if len(optional) > 0 {
		candidates = optional
	}
	if len(candidates) == 0 {
		return "no field to remove"
	}
	name := step.pick(candidates)
	root.RemoveProperty(name)
	return fmt.Sprintf("removed field %q", name)
}

// applyRenameField renames a top-level field, transferring required
// membership and declaration position.
func applyRenameField(root *schema.Node, step *stepContext) string {
	name := step.pick(root.PropOrder)
	newName := fmt.Sprintf("%s_renamed_v%d", name, step.version)
	root.RenameProperty(name, newName)
	return fmt.Sprintf("renamed field %q -> %q", name, newName)
}

// typeConversions lists the plausible coercion targets per scalar kind.
var typeConversions = map[schema.Kind][]string{
	schema.KindString:  {"integer", "number", "boolean"},
	schema.KindInteger: {"string", "number"},
	schema.KindNumber:  {"string", "integer"},
	schema.KindBoolean: {"string"},
}

// applyChangeFieldType coerces a scalar field to a different scalar kind,
// dropping constraints that no longer apply.
func applyChangeFieldType(root *schema.Node, step *stepContext) string {
	name := step.pick(scalarProps(root))
	old := root.Property(name)
	targets := typeConversions[old.Kind]
	if len(targets) == 0 {
		targets = []string{"string"}
	}
	newKind := schema.Kind(step.pick(targets))

	replacement := schema.NewScalar(newKind)
	if newKind == schema.KindString && old.MaxLength != nil {
		// Length limits survive a coercion back to string.
		v := *old.MaxLength
		replacement.MaxLength = &v
	}
	root.Properties[name] = replacement
	return fmt.Sprintf("changed field %q type: %s -> %s", name, old.Kind, newKind)
}

// applyNestFields gathers two to three top-level fields under a new object.
func applyNestFields(root *schema.Node, step *stepContext) string {
	names := step.sample(root.PropertyNames(), 3)
	nestName := fmt.Sprintf("nested_object_v%d", step.version)

	nested := schema.NewObject()
	for _, name := range names {
		nested.SetProperty(name, root.Property(name))
		root.RemoveProperty(name)
	}
	root.SetProperty(nestName, nested)
	if step.roll(0.5) {
		root.AddRequired(nestName)
	}
	return fmt.Sprintf("nested fields %s under new object %q", strings.Join(names, ", "), nestName)
}

// applyUnnestField lifts a random subset of a nested object's fields to the
// top level, removing the object if it empties out.
func applyUnnestField(root *schema.Node, step *stepContext) string {
	objName := step.pick(objectProps(root))
	obj := root.Property(objName)
	wasRequired := root.IsRequired(objName)

	lifted := step.sample(obj.PropertyNames(), step.intRange(1, obj.NumProperties()))
	for _, name := range lifted {
		root.SetProperty(name, obj.Property(name))
		obj.RemoveProperty(name)
		if wasRequired && step.roll(0.5) {
			root.AddRequired(name)
		}
	}
	if obj.NumProperties() == 0 {
		root.RemoveProperty(objName)
	}
	return fmt.Sprintf("unnested fields %s from %q", strings.Join(lifted, ", "), objName)
}

// applyPromoteField lifts one nested field to the top level under a
// "parent_child" name, removing the parent object if it empties out.
func applyPromoteField(root *schema.Node, step *stepContext) string {
	objName := step.pick(objectProps(root))
	obj := root.Property(objName)

	fieldName := step.pick(obj.PropertyNames())
	newName := objName + "_" + fieldName
	root.SetProperty(newName, obj.Property(fieldName))
	obj.RemoveProperty(fieldName)
	if root.IsRequired(objName) && step.roll(0.5) {
		root.AddRequired(newName)
	}
	if obj.NumProperties() == 0 {
		root.RemoveProperty(objName)
	}
	return fmt.Sprintf("promoted field %q from %q as %q", fieldName, objName, newName)
}

// applyDemoteField pushes a top-level scalar into a nested object, creating
// the object when none exists yet.
func applyDemoteField(root *schema.Node, step *stepContext) string {
	var target string
	if objects := objectProps(root); len(objects) > 0 {
		target = step.pick(objects)
	} else {
		target = fmt.Sprintf("nested_object_v%d", step.version)
		root.SetProperty(target, schema.NewObject())
	}
	obj := root.Property(target)

	candidates := filterProps(root, func(n *schema.Node) bool { return n.Kind != schema.KindObject })
	candidates = removeName(candidates, target)
	if len(candidates) == 0 {
		return "no field suitable for demotion"
	}
	name := step.pick(candidates)
	wasRequired := root.IsRequired(name)
	obj.SetProperty(name, root.Property(name))
	root.RemoveProperty(name)
	if wasRequired && step.roll(0.5) {
		obj.AddRequired(name)
	}
	return fmt.Sprintf("demoted field %q into %q", name, target)
}

// applyChangeArrayStructure edits one array field: its item kind, its item
// count bounds, or its uniqueness flag.
func applyChangeArrayStructure(root *schema.Node, step *stepContext) string {
	name := step.pick(arrayProps(root))
	arr := root.Property(name)

	switch step.pick([]string{"change_item_type", "add_min_max_items", "make_unique_items"}) {
	case "change_item_type":
		oldKind := schema.KindString
		if arr.Items != nil {
			oldKind = arr.Items.Kind
		}
		newKind := schema.Kind(step.pick(itemKinds))
		item := schema.NewScalar(newKind)
		if newKind == schema.KindObject {
			item = schema.NewObject()
		}
		arr.Items = item
		return fmt.Sprintf("changed array %q item type: %s -> %s", name, oldKind, newKind)
	case "add_min_max_items":
		if step.roll(0.5) {
			n := step.intRange(1, 5)
			arr.MinItems = &n
		}
		if step.roll(0.5) {
			n := step.intRange(6, 20)
			arr.MaxItems = &n
		}
		return fmt.Sprintf("added item count bounds to array %q", name)
	default:
		arr.UniqueItems = true
		return fmt.Sprintf("required unique items for array %q", name)
	}
}

func removeName(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
