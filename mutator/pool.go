package mutator

import (
	"math/rand"

	"github.com/siZaiMou/evoschema/schema"
)

// Category tags the evolution flavor of an operator.
type Category string

const (
	// CategoryStructural operators change field existence, nesting, or types
	CategoryStructural Category = "structural"
	// CategoryConstraint operators change validation rules on existing fields
	CategoryConstraint Category = "constraint"
	// CategorySemantic operators model meaning-level changes (splits, merges,
	// conditional rules)
	CategorySemantic Category = "semantic"
)

// Operator catalog names.
const (
	OpAddField             = "add_field"
	OpRemoveField          = "remove_field"
	OpRenameField          = "rename_field"
	OpChangeFieldType      = "change_field_type"
	OpNestFields           = "nest_fields"
	OpUnnestField          = "unnest_field"
	OpPromoteField         = "promote_field"
	OpDemoteField          = "demote_field"
	OpChangeArrayStructure = "change_array_structure"
	OpChangeRequired       = "change_required_constraint"
	OpChangeEnumOptions    = "change_enum_options"
	OpChangeMinMax         = "change_min_max_constraint"
	OpChangePattern        = "change_pattern_constraint"
	OpSplitField           = "split_field"
	OpMergeFields          = "merge_fields"
	OpAddConditional       = "add_conditional_validation"
)

// stepContext carries the per-step randomness and version counter that
// operators draw from. All random choices go through it so a seeded run is
// fully reproducible.
type stepContext struct {
	rng     *rand.Rand
	version int
}

// pick returns a uniformly chosen entry of a non-empty list.
func (s *stepContext) pick(list []string) string {
	return list[s.rng.Intn(len(list))]
}

// sample returns k distinct entries of the list in random order.
func (s *stepContext) sample(list []string, k int) []string {
	if k > len(list) {
		k = len(list)
	}
	perm := s.rng.Perm(len(list))
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = list[perm[i]]
	}
	return out
}

// roll reports whether a uniform draw exceeds the threshold.
func (s *stepContext) roll(threshold float64) bool {
	return s.rng.Float64() > threshold
}

// intRange returns a uniform integer in [lo, hi].
func (s *stepContext) intRange(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Operator is one entry of the mutation catalog: a weighted, viability-gated
// transformation of a schema tree. Every operator works on a deep copy made
// by the engine (never its input), keeps each object's required list
// consistent with surviving property names, and returns a human-readable
// description of what it did.
type Operator struct {
	// Name is the catalog identifier
	Name string
	// Category is the evolution flavor
	Category Category
	// Weight is the static sampling weight
	Weight int

	viable func(root *schema.Node) bool
	apply  func(root *schema.Node, step *stepContext) string
}

// Pool is the fixed operator catalog the engine samples from.
type Pool struct {
	operators []Operator
}

// NewPool returns the default catalog.
func NewPool() *Pool {
	return &Pool{operators: []Operator{
		{Name: OpAddField, Category: CategoryStructural, Weight: 15,
			viable: func(root *schema.Node) bool { return root.NumProperties() < 20 },
			apply:  applyAddField},
		{Name: OpRemoveField, Category: CategoryStructural, Weight: 10,
			viable: func(root *schema.Node) bool { return root.NumProperties() > 3 },
			apply:  applyRemoveField},
		{Name: OpRenameField, Category: CategoryStructural, Weight: 8,
			viable: func(root *schema.Node) bool { return root.NumProperties() > 0 },
			apply:  applyRenameField},
		{Name: OpChangeFieldType, Category: CategoryStructural, Weight: 5,
			viable: func(root *schema.Node) bool { return len(scalarProps(root)) > 0 },
			apply:  applyChangeFieldType},
		{Name: OpNestFields, Category: CategoryStructural, Weight: 5,
			viable: func(root *schema.Node) bool { return root.NumProperties() >= 2 },
			apply:  applyNestFields},
		{Name: OpUnnestField, Category: CategoryStructural, Weight: 5,
			viable: func(root *schema.Node) bool { return len(objectProps(root)) > 0 },
			apply:  applyUnnestField},
		{Name: OpPromoteField, Category: CategoryStructural, Weight: 4,
			viable: func(root *schema.Node) bool { return len(objectProps(root)) > 0 },
			apply:  applyPromoteField},
		{Name: OpDemoteField, Category: CategoryStructural, Weight: 4,
			viable: func(root *schema.Node) bool { return len(scalarProps(root)) >= 2 },
			apply:  applyDemoteField},
		{Name: OpChangeArrayStructure, Category: CategoryStructural, Weight: 4,
			viable: func(root *schema.Node) bool { return len(arrayProps(root)) > 0 },
			apply:  applyChangeArrayStructure},
		{Name: OpChangeRequired, Category: CategoryConstraint, Weight: 8,
			viable: func(root *schema.Node) bool { return len(root.Required) > 0 },
			apply:  applyChangeRequired},
		{Name: OpChangeEnumOptions, Category: CategoryConstraint, Weight: 6,
			viable: func(root *schema.Node) bool {
				return len(enumProps(root)) > 0 || len(stringProps(root)) > 0
			},
			apply: applyChangeEnumOptions},
		{Name: OpChangeMinMax, Category: CategoryConstraint, Weight: 7,
			viable: func(root *schema.Node) bool { return len(numericProps(root)) > 0 },
			apply:  applyChangeMinMax},
		{Name: OpChangePattern, Category: CategoryConstraint, Weight: 4,
			viable: func(root *schema.Node) bool { return len(stringProps(root)) > 0 },
			apply:  applyChangePattern},
		{Name: OpSplitField, Category: CategorySemantic, Weight: 3,
			viable: func(root *schema.Node) bool { return len(stringProps(root)) > 0 },
			apply:  applySplitField},
		{Name: OpMergeFields, Category: CategorySemantic, Weight: 3,
			viable: func(root *schema.Node) bool { return len(scalarProps(root)) >= 2 },
			apply:  applyMergeFields},
		{Name: OpAddConditional, Category: CategorySemantic, Weight: 4,
			viable: func(root *schema.Node) bool { return root.NumProperties() >= 2 },
			apply:  applyAddConditional},
	}}
}

// Size returns the number of operators in the catalog.
func (p *Pool) Size() int {
	return len(p.operators)
}

// Operators returns a copy of the catalog entries.
func (p *Pool) Operators() []Operator {
	out := make([]Operator, len(p.operators))
	copy(out, p.operators)
	return out
}

// Names returns every catalog operator name in catalog order.
func (p *Pool) Names() []string {
	names := make([]string, len(p.operators))
	for i, op := range p.operators {
		names[i] = op.Name
	}
	return names
}

// Viable returns the operators whose precondition holds for the given tree.
// Viability is recomputed once per version; it only changes after a mutation
// is applied.
func (p *Pool) Viable(root *schema.Node) []Operator {
	var out []Operator
	for _, op := range p.operators {
		if op.viable(root) {
			out = append(out, op)
		}
	}
	return out
}

// Top-level property selectors used by viability predicates and operators.
// Candidate lists derive from the declaration order so seeded runs are
// deterministic regardless of map iteration order.

func scalarProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool { return n.Kind.IsScalar() })
}

func stringProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool { return n.Kind == schema.KindString })
}

func numericProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool {
		return n.Kind == schema.KindInteger || n.Kind == schema.KindNumber
	})
}

func arrayProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool { return n.Kind == schema.KindArray })
}

func objectProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool {
		return n.Kind == schema.KindObject && n.NumProperties() > 0
	})
}

func enumProps(root *schema.Node) []string {
	return filterProps(root, func(n *schema.Node) bool { return len(n.Enum) > 0 })
}

func filterProps(root *schema.Node, keep func(*schema.Node) bool) []string {
	var out []string
	for _, name := range root.PropOrder {
		if keep(root.Properties[name]) {
			out = append(out, name)
		}
	}
	return out
}
