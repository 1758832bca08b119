package differ

import (
	"fmt"
	"sort"

	"github.com/siZaiMou/evoschema/evoerrors"
	"github.com/siZaiMou/evoschema/schema"
)

// Warning is a non-fatal, informational finding attached to a diff result.
// The only current kind is the ambiguous match: an accepted pair whose parent
// and leaf name both changed, for which the engine emits both a MoveField and
// a RenameField referencing the same two paths. Downstream interpretation of
// that double emission is intentionally left to the consumer.
type Warning struct {
	// From is the removed-side path of the ambiguous pair
	From string
	// To is the added-side path of the ambiguous pair
	To string
	// Score is the similarity score that matched the pair
	Score float64
}

// Message returns a human-readable description of the warning.
func (w Warning) Message() string {
	return fmt.Sprintf("ambiguous match %s -> %s (score %.2f): emitted as both MoveField and RenameField", w.From, w.To, w.Score)
}

// DiffResult contains the ordered operation log relating two snapshots,
// plus derived counts and the snapshot fingerprints.
type DiffResult struct {
	// Operations is the ordered operation log: structural operations sorted
	// by path, then per-path constraint and type operations sorted by path.
	// Identical inputs always yield byte-identical operation logs.
	Operations []Operation
	// Warnings lists non-fatal findings (ambiguous move/rename pairs)
	Warnings []Warning
	// SourceFingerprint is the content hash of the source snapshot
	SourceFingerprint string
	// TargetFingerprint is the content hash of the target snapshot
	TargetFingerprint string
	// StructuralCount is the number of Add/Drop/Rename/Move operations
	StructuralCount int
	// TypeChangeCount is the number of ChangeType/ToArray/ToScalar operations
	TypeChangeCount int
	// ConstraintCount is the number of range/enum/required/pattern operations
	ConstraintCount int
}

// HasChanges reports whether any operations were emitted.
func (r *DiffResult) HasChanges() bool {
	return len(r.Operations) > 0
}

// Differ computes the minimal structural-operation sequence relating two
// schema snapshots. The zero value is usable; New applies defaults.
type Differ struct {
	// Logger receives diagnostic output; defaults to a nop logger
	Logger schema.Logger
}

// New creates a new Differ instance with default settings.
func New() *Differ {
	return &Differ{Logger: schema.NopLogger{}}
}

// Option is a function that configures a diff operation.
type Option func(*diffConfig) error

type diffConfig struct {
	source *schema.Node
	target *schema.Node
	logger schema.Logger
}

// DiffWithOptions compares two schema snapshots using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceBytes(v1),
//	    differ.WithTargetBytes(v2),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg := &diffConfig{logger: schema.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.source == nil {
		return nil, evoerrors.NewConfig("source", "a source snapshot is required (use WithSource or WithSourceBytes)")
	}
	if cfg.target == nil {
		return nil, evoerrors.NewConfig("target", "a target snapshot is required (use WithTarget or WithTargetBytes)")
	}
	d := &Differ{Logger: cfg.logger}
	return d.Diff(cfg.source, cfg.target)
}

// WithSource specifies an already-built tree as the source snapshot.
func WithSource(n *schema.Node) Option {
	return func(cfg *diffConfig) error {
		cfg.source = n
		return nil
	}
}

// WithTarget specifies an already-built tree as the target snapshot.
func WithTarget(n *schema.Node) Option {
	return func(cfg *diffConfig) error {
		cfg.target = n
		return nil
	}
}

// WithSourceBytes parses YAML or JSON bytes as the source snapshot.
func WithSourceBytes(data []byte) Option {
	return func(cfg *diffConfig) error {
		n, err := schema.Parse(data)
		if err != nil {
			return fmt.Errorf("differ: parse source: %w", err)
		}
		cfg.source = n
		return nil
	}
}

// WithTargetBytes parses YAML or JSON bytes as the target snapshot.
func WithTargetBytes(data []byte) Option {
	return func(cfg *diffConfig) error {
		n, err := schema.Parse(data)
		if err != nil {
			return fmt.Errorf("differ: parse target: %w", err)
		}
		cfg.target = n
		return nil
	}
}

// WithLogger sets the logger for diagnostic output.
func WithLogger(logger schema.Logger) Option {
	return func(cfg *diffConfig) error {
		if logger == nil {
			return evoerrors.NewConfig("logger", "logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// Diff flattens both snapshots, aligns their path sets, and emits one
// ordered operation log: structural operations first (path-sorted), then
// constraint and type operations for every path present in both trees
// (path-sorted). Neither input tree is mutated.
func (d *Differ) Diff(source, target *schema.Node) (*DiffResult, error) {
	if source == nil || target == nil {
		return nil, evoerrors.NewConfig("", "source and target snapshots must not be nil")
	}
	logger := d.Logger
	if logger == nil {
		logger = schema.NopLogger{}
	}

	idxSrc := source.Flatten()
	idxDst := target.Flatten()

	// Array-item placeholder paths follow their parent field; they never
	// independently add or remove.
	var removed, added, common []string
	for _, p := range idxSrc.Paths() {
		if _, ok := idxDst[p]; ok {
			common = append(common, p)
		} else if !schema.IsItemPath(p) {
			removed = append(removed, p)
		}
	}
	for _, p := range idxDst.Paths() {
		if _, ok := idxSrc[p]; !ok && !schema.IsItemPath(p) {
			added = append(added, p)
		}
	}

	pairs := alignPaths(removed, added, idxSrc, idxDst)
	logger.Debug("aligned path sets",
		"removed", len(removed), "added", len(added), "common", len(common), "matched", len(pairs))

	result := &DiffResult{
		SourceFingerprint: source.Fingerprint(),
		TargetFingerprint: target.Fingerprint(),
	}

	consumedRemoved := make(map[string]bool, len(pairs))
	consumedAdded := make(map[string]bool, len(pairs))
	// renamesByParent translates old leaf names when diffing required sets,
	// keyed by the object path that contains the renamed field.
	renamesByParent := make(map[string]map[string]string)

	var structural []Operation
	for _, pair := range pairs {
		consumedRemoved[pair.removed] = true
		consumedAdded[pair.added] = true

		oldParent, newParent := schema.ParentPath(pair.removed), schema.ParentPath(pair.added)
		oldLeaf, newLeaf := schema.LeafName(pair.removed), schema.LeafName(pair.added)
		switch {
		case oldParent == newParent && oldLeaf != newLeaf:
			structural = append(structural, Operation{Op: OpRenameField, From: pair.removed, To: pair.added})
			if renamesByParent[oldParent] == nil {
				renamesByParent[oldParent] = make(map[string]string)
			}
			renamesByParent[oldParent][oldLeaf] = newLeaf
		case oldParent != newParent && oldLeaf == newLeaf:
			structural = append(structural, Operation{Op: OpMoveField, From: pair.removed, To: pair.added})
		default:
			// Parent and leaf both changed: emit both operations for the
			// same pair and surface the ambiguity as a warning.
			structural = append(structural,
				Operation{Op: OpMoveField, From: pair.removed, To: pair.added},
				Operation{Op: OpRenameField, From: pair.removed, To: pair.added})
			result.Warnings = append(result.Warnings, Warning{From: pair.removed, To: pair.added, Score: pair.score})
			logger.Warn("ambiguous match", "from", pair.removed, "to", pair.added, "score", pair.score)
		}
	}
	for _, p := range removed {
		if !consumedRemoved[p] {
			structural = append(structural, Operation{Op: OpDropField, Path: p})
		}
	}
	for _, p := range added {
		if !consumedAdded[p] {
			structural = append(structural, Operation{Op: OpAddField, Path: p, DType: string(idxDst[p].Kind)})
		}
	}
	sort.Slice(structural, func(i, j int) bool {
		if structural[i].sortPath() != structural[j].sortPath() {
			return structural[i].sortPath() < structural[j].sortPath()
		}
		return structural[i].Op < structural[j].Op
	})
	result.Operations = append(result.Operations, structural...)
	result.StructuralCount = len(structural)

	for _, p := range common {
		src, dst := idxSrc[p], idxDst[p]
		if op := classifyTypeChange(p, src, dst); op != nil {
			result.Operations = append(result.Operations, *op)
			result.TypeChangeCount++
		}
		constraint := compareConstraints(p, src, dst)
		constraint = append(constraint, requiredOps(p, src, dst, renamesByParent[p])...)
		result.Operations = append(result.Operations, constraint...)
		result.ConstraintCount += len(constraint)
	}

	logger.Debug("diff complete",
		"operations", len(result.Operations),
		"structural", result.StructuralCount,
		"type", result.TypeChangeCount,
		"constraint", result.ConstraintCount,
		"warnings", len(result.Warnings))
	return result, nil
}

// DiffChain diffs every adjacent pair in an evolution history, returning one
// result per pair. At least two snapshots are required.
func DiffChain(snapshots ...*schema.Node) ([]*DiffResult, error) {
	if len(snapshots) < 2 {
		return nil, evoerrors.NewConfig("snapshots", "at least two snapshots are required")
	}
	d := New()
	results := make([]*DiffResult, 0, len(snapshots)-1)
	for i := 0; i+1 < len(snapshots); i++ {
		r, err := d.Diff(snapshots[i], snapshots[i+1])
		if err != nil {
			return nil, fmt.Errorf("differ: chain step %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}
