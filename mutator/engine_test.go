package mutator

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siZaiMou/evoschema/differ"
	"github.com/siZaiMou/evoschema/evoerrors"
	"github.com/siZaiMou/evoschema/schema"
)

func seedSchema(t *testing.T) *schema.Node {
	t.Helper()
	node, err := schema.Parse([]byte(`
type: object
properties:
  user_id: {type: string}
  name: {type: string}
  age: {type: integer, minimum: 0, maximum: 120}
  status:
    type: string
    enum: [active, inactive]
  tags:
    type: array
    items: {type: string}
  address:
    type: object
    properties:
      city: {type: string}
      zip: {type: string}
required: [user_id, name]
`))
	require.NoError(t, err)
	return node
}

func TestEngine_DefaultRun(t *testing.T) {
	eng, err := New(WithSeed(1))
	require.NoError(t, err)

	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	// Baseline plus one snapshot per step.
	require.Len(t, result.Versions, defaultVersions+1)
	assert.Equal(t, 0, result.Versions[0].Index)
	assert.Equal(t, "initial schema", result.Versions[0].Description)
	assert.Empty(t, result.Versions[0].Operator)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)

	for i, v := range result.Versions {
		assert.Equal(t, i, v.Index)
		require.NotNil(t, v.Schema)
		assert.Equal(t, v.Schema.Fingerprint(), v.Fingerprint)
		if i > 0 {
			assert.NotEmpty(t, v.Operator)
			assert.NotEmpty(t, v.Description)
		}
	}
}

func TestEngine_SeededRunsAreReproducible(t *testing.T) {
	run := func() *RunResult {
		eng, err := New(WithSeed(42), WithVersions(16))
		require.NoError(t, err)
		result, err := eng.Run(seedSchema(t))
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	require.Len(t, second.Versions, len(first.Versions))
	for i := range first.Versions {
		assert.Equal(t, first.Versions[i].Operator, second.Versions[i].Operator, "version %d", i)
		assert.Equal(t, first.Versions[i].Description, second.Versions[i].Description, "version %d", i)
		assert.Equal(t, first.Versions[i].Fingerprint, second.Versions[i].Fingerprint, "version %d", i)
	}
	assert.Equal(t, first.ChangeLog(), second.ChangeLog())
}

func TestEngine_DifferentSeedsDiverge(t *testing.T) {
	runWith := func(seed int64) string {
		eng, err := New(WithSeed(seed), WithVersions(8))
		require.NoError(t, err)
		result, err := eng.Run(seedSchema(t))
		require.NoError(t, err)
		return result.Final().Fingerprint()
	}
	assert.NotEqual(t, runWith(1), runWith(2))
}

func TestEngine_InputIsNeverMutated(t *testing.T) {
	root := seedSchema(t)
	before := root.Fingerprint()

	eng, err := New(WithSeed(7), WithVersions(20))
	require.NoError(t, err)
	_, err = eng.Run(root)
	require.NoError(t, err)

	assert.Equal(t, before, root.Fingerprint())
}

func TestEngine_VersionsAreIndependentSnapshots(t *testing.T) {
	eng, err := New(WithSeed(3), WithVersions(5))
	require.NoError(t, err)
	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	// Mutating one snapshot must not bleed into its neighbors.
	fps := make([]string, len(result.Versions))
	for i, v := range result.Versions {
		fps[i] = v.Fingerprint
	}
	result.Versions[2].Schema.SetProperty("bleed_check", schema.NewScalar(schema.KindBoolean))
	for i, v := range result.Versions {
		if i == 2 {
			continue
		}
		assert.Equal(t, fps[i], v.Schema.Fingerprint())
	}
}

func TestEngine_RequiredStaysConsistent(t *testing.T) {
	eng, err := New(WithSeed(11), WithVersions(40))
	require.NoError(t, err)
	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	// Every object's required list must only name existing properties,
	// no matter which operators fired.
	var check func(path string, n *schema.Node)
	check = func(path string, n *schema.Node) {
		switch n.Kind {
		case schema.KindObject:
			for _, name := range n.Required {
				assert.True(t, n.HasProperty(name),
					"required %q at %q names a missing property", name, path)
			}
			for _, name := range n.PropOrder {
				check(schema.JoinPath(path, name), n.Properties[name])
			}
		case schema.KindArray:
			if n.Items != nil {
				check(path+"[]", n.Items)
			}
		}
	}
	for _, v := range result.Versions {
		check("", v.Schema)
	}
}

func TestEngine_LongRunCoversCatalog(t *testing.T) {
	eng, err := New(WithSeed(5), WithVersions(60))
	require.NoError(t, err)
	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, v := range result.Versions[1:] {
		if v.Operator != "" {
			seen[v.Operator] = true
		}
	}
	// Unused-first sampling should exercise most of the catalog on a rich
	// seed schema over a long run.
	assert.GreaterOrEqual(t, len(seen), 12, "operators seen: %v", seen)
}

func TestEngine_RootMustBeObject(t *testing.T) {
	eng, err := New(WithSeed(1))
	require.NoError(t, err)

	_, err = eng.Run(schema.NewScalar(schema.KindString))
	require.Error(t, err)
	assert.True(t, errors.Is(err, evoerrors.ErrMalformedInput))

	_, err = eng.Run(nil)
	require.Error(t, err)
}

func TestEngine_OptionValidation(t *testing.T) {
	_, err := New(WithVersions(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, evoerrors.ErrConfig))

	_, err = New(WithRand(nil))
	require.Error(t, err)

	_, err = New(WithLogger(nil))
	require.Error(t, err)
}

func TestEngine_ChangeLogFormat(t *testing.T) {
	eng, err := New(WithSeed(9), WithVersions(3))
	require.NoError(t, err)
	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	log := result.ChangeLog()
	lines := strings.Split(strings.TrimRight(log, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "v1: "))
	assert.True(t, strings.HasPrefix(lines[2], "v3: "))
}

// Every evolution step the engine produces must be explainable by the diff
// engine: adjacent versions diff cleanly and without errors.
func TestEngine_VersionsDiffCleanly(t *testing.T) {
	eng, err := New(WithSeed(21), WithVersions(10))
	require.NoError(t, err)
	result, err := eng.Run(seedSchema(t))
	require.NoError(t, err)

	snapshots := make([]*schema.Node, len(result.Versions))
	for i, v := range result.Versions {
		snapshots[i] = v.Schema
	}
	diffs, err := differ.DiffChain(snapshots...)
	require.NoError(t, err)
	require.Len(t, diffs, len(snapshots)-1)

	for i, d := range diffs {
		step := result.Versions[i+1]
		// Conditional rules live outside the diff engine's operation
		// vocabulary, so those steps may legitimately diff empty.
		if step.Operator == OpAddConditional {
			continue
		}
		if step.Fingerprint != result.Versions[i].Fingerprint {
			assert.True(t, d.HasChanges(), "step %d changed the schema but diffed empty", i+1)
		}
	}
}
