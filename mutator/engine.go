package mutator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/siZaiMou/evoschema/evoerrors"
	"github.com/siZaiMou/evoschema/schema"
)

const defaultVersions = 10

// Version is one snapshot in an evolution run. Index 0 holds the untouched
// baseline; every later index records the operator that produced it.
type Version struct {
	// Index is the version number, starting at 0 for the baseline
	Index int `json:"index"`
	// Schema is the tree as of this version
	Schema *schema.Node `json:"schema"`
	// Operator names the catalog entry that produced this version
	Operator string `json:"operator,omitempty"`
	// Category is the operator's evolution flavor
	Category Category `json:"category,omitempty"`
	// Description says in plain words what changed
	Description string `json:"description"`
	// Fingerprint is the content hash of Schema
	Fingerprint string `json:"fingerprint"`
}

// RunResult holds every version produced by one evolution run.
type RunResult struct {
	// RunID uniquely identifies the run
	RunID string `json:"run_id"`
	// Seed is the randomness seed the run used
	Seed int64 `json:"seed"`
	// Versions are the baseline plus one entry per evolution step
	Versions []Version `json:"versions"`
}

// Final returns the last version's schema.
func (r *RunResult) Final() *schema.Node {
	return r.Versions[len(r.Versions)-1].Schema
}

// ChangeLog renders the run as one line per evolution step.
func (r *RunResult) ChangeLog() string {
	var b strings.Builder
	for _, v := range r.Versions[1:] {
		fmt.Fprintf(&b, "v%d: %s: %s\n", v.Index, v.Category, v.Description)
	}
	return b.String()
}

// Engine evolves a schema through a fixed number of versions by repeatedly
// sampling the operator pool. Runs are reproducible: the same seed and input
// always yield the same version chain.
type Engine struct {
	pool     *Pool
	rng      *rand.Rand
	seed     int64
	versions int
	logger   schema.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithSeed fixes the randomness seed, making the run reproducible.
func WithSeed(seed int64) EngineOption {
	return func(e *Engine) error {
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithRand supplies the random source directly. The seed recorded in the
// RunResult is not meaningful in this mode.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) error {
		if rng == nil {
			return evoerrors.NewConfig("WithRand", "rand source must not be nil")
		}
		e.rng = rng
		return nil
	}
}

// WithVersions sets how many evolution steps a run performs.
func WithVersions(n int) EngineOption {
	return func(e *Engine) error {
		if n < 1 {
			return evoerrors.NewConfig("WithVersions", fmt.Sprintf("version count must be positive, got %d", n))
		}
		e.versions = n
		return nil
	}
}

// WithLogger sets the logger for run progress.
func WithLogger(logger schema.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			return evoerrors.NewConfig("WithLogger", "logger must not be nil")
		}
		e.logger = logger
		return nil
	}
}

// New builds an Engine with the default pool. Without WithSeed or WithRand
// the engine seeds itself from the clock.
func New(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		pool:     NewPool(),
		seed:     time.Now().UnixNano(),
		versions: defaultVersions,
		logger:   schema.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.seed))
	}
	return e, nil
}

// Run evolves the given root schema through the configured number of
// versions. The input tree is never modified; every version holds its own
// deep copy. Steps where no operator is viable still advance the version
// counter with an unchanged snapshot.
func (e *Engine) Run(root *schema.Node) (*RunResult, error) {
	if root == nil {
		return nil, evoerrors.NewMalformedInput("", "", "schema must not be nil")
	}
	if root.Kind != schema.KindObject {
		return nil, evoerrors.NewMalformedInput("", "type",
			fmt.Sprintf("evolution requires an object schema at the root, got %s", root.Kind))
	}

	result := &RunResult{RunID: uuid.NewString(), Seed: e.seed}
	current := root.DeepCopy()
	result.Versions = append(result.Versions, Version{
		Index:       0,
		Schema:      current,
		Description: "initial schema",
		Fingerprint: current.Fingerprint(),
	})
	e.logger.Info("starting evolution run",
		"run_id", result.RunID, "versions", e.versions, "fields", current.NumProperties())

	used := make(map[string]bool, e.pool.Size())
	for i := 1; i <= e.versions; i++ {
		next := current.DeepCopy()
		step := &stepContext{rng: e.rng, version: i}

		op, ok := e.pickOperator(next, used)
		if !ok {
			e.logger.Warn("no viable operator, version unchanged", "version", i)
			result.Versions = append(result.Versions, Version{
				Index:       i,
				Schema:      next,
				Description: "no viable mutation",
				Fingerprint: next.Fingerprint(),
			})
			current = next
			continue
		}

		desc := op.apply(next, step)
		used[op.Name] = true
		e.logger.Debug("applied mutation",
			"version", i, "operator", op.Name, "category", op.Category, "change", desc)

		result.Versions = append(result.Versions, Version{
			Index:       i,
			Schema:      next,
			Operator:    op.Name,
			Category:    op.Category,
			Description: desc,
			Fingerprint: next.Fingerprint(),
		})
		current = next
	}

	e.logger.Info("evolution run complete",
		"run_id", result.RunID, "versions", len(result.Versions)-1, "operators_used", len(used))
	return result, nil
}

// pickOperator weight-samples one operator among those viable for the tree.
// While any viable operator has not yet run this run, sampling is restricted
// to those, so long runs exercise the whole catalog instead of circling the
// heavy-weight entries.
func (e *Engine) pickOperator(root *schema.Node, used map[string]bool) (Operator, bool) {
	viable := e.pool.Viable(root)
	if len(viable) == 0 {
		return Operator{}, false
	}

	candidates := viable[:0:0]
	for _, op := range viable {
		if !used[op.Name] {
			candidates = append(candidates, op)
		}
	}
	if len(candidates) == 0 {
		candidates = viable
	}

	total := 0
	for _, op := range candidates {
		total += op.Weight
	}
	draw := e.rng.Intn(total)
	for _, op := range candidates {
		draw -= op.Weight
		if draw < 0 {
			return op, true
		}
	}
	return candidates[len(candidates)-1], true
}
