package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siZaiMou/evoschema/schema"
)

func TestSimilarity_ScalarSameKind(t *testing.T) {
	a := buildSignature(schema.NewScalar(schema.KindString))
	b := buildSignature(schema.NewScalar(schema.KindString))
	// 0.4 kind + 0.1 enum agreement + 0.1 items agreement: lands exactly on
	// the inclusive threshold.
	assert.InDelta(t, 0.6, similarity(a, b), 1e-9)
}

func TestSimilarity_EnumPresenceMismatch(t *testing.T) {
	withEnum := schema.NewScalar(schema.KindString)
	withEnum.Enum = []any{"a", "b"}
	a := buildSignature(withEnum)
	b := buildSignature(schema.NewScalar(schema.KindString))
	// 0.4 kind + 0.1 items agreement: below threshold.
	assert.InDelta(t, 0.5, similarity(a, b), 1e-9)
}

func TestSimilarity_ObjectsIdenticalChildren(t *testing.T) {
	makeObj := func() *schema.Node {
		o := schema.NewObject()
		o.SetProperty("x", schema.NewScalar(schema.KindString))
		o.SetProperty("y", schema.NewScalar(schema.KindInteger))
		return o
	}
	a := buildSignature(makeObj())
	b := buildSignature(makeObj())
	// 0.4 kind + 0.3 full Jaccard + 0.1 enum + 0.1 items.
	assert.InDelta(t, 0.9, similarity(a, b), 1e-9)
}

func TestSimilarity_ArraysMatchingItemKind(t *testing.T) {
	a := buildSignature(schema.NewArray(schema.NewScalar(schema.KindString)))
	b := buildSignature(schema.NewArray(schema.NewScalar(schema.KindString)))
	// 0.4 kind + 0.1 enum + 0.1 items presence + 0.1 item kind.
	assert.InDelta(t, 0.7, similarity(a, b), 1e-9)

	c := buildSignature(schema.NewArray(schema.NewScalar(schema.KindInteger)))
	assert.InDelta(t, 0.6, similarity(a, c), 1e-9)
}

func TestSimilarity_KindMismatch(t *testing.T) {
	a := buildSignature(schema.NewScalar(schema.KindString))
	b := buildSignature(schema.NewScalar(schema.KindInteger))
	// 0.1 enum agreement + 0.1 items agreement only.
	assert.InDelta(t, 0.2, similarity(a, b), 1e-9)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1.0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1.0},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"one empty", []string{"a"}, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestAlignPaths_GreedyConsumesBestFirst(t *testing.T) {
	// One removed object competes for two added objects; the one sharing
	// more child keys must win.
	src := schema.NewObject()
	srcObj := schema.NewObject()
	srcObj.SetProperty("x", schema.NewScalar(schema.KindString))
	srcObj.SetProperty("y", schema.NewScalar(schema.KindString))
	src.SetProperty("old", srcObj)

	dst := schema.NewObject()
	near := schema.NewObject()
	near.SetProperty("x", schema.NewScalar(schema.KindString))
	near.SetProperty("y", schema.NewScalar(schema.KindString))
	far := schema.NewObject()
	far.SetProperty("z", schema.NewScalar(schema.KindString))
	dst.SetProperty("near", near)
	dst.SetProperty("far", far)

	pairs := alignPaths(
		[]string{"old"},
		[]string{"far", "near"},
		src.Flatten(), dst.Flatten(),
	)
	require.Len(t, pairs, 1)
	assert.Equal(t, "old", pairs[0].removed)
	assert.Equal(t, "near", pairs[0].added)
	assert.Greater(t, pairs[0].score, matchThreshold)
}

func TestAlignPaths_TieBreakIsDeterministic(t *testing.T) {
	// Two identical scalar fields on each side: every pairing scores the
	// same, so ties resolve by ascending path order.
	src := schema.NewObject()
	src.SetProperty("aa", schema.NewScalar(schema.KindString))
	src.SetProperty("bb", schema.NewScalar(schema.KindString))

	dst := schema.NewObject()
	dst.SetProperty("cc", schema.NewScalar(schema.KindString))
	dst.SetProperty("dd", schema.NewScalar(schema.KindString))

	pairs := alignPaths(
		[]string{"aa", "bb"},
		[]string{"cc", "dd"},
		src.Flatten(), dst.Flatten(),
	)
	require.Len(t, pairs, 2)
	assert.Equal(t, "aa", pairs[0].removed)
	assert.Equal(t, "cc", pairs[0].added)
	assert.Equal(t, "bb", pairs[1].removed)
	assert.Equal(t, "dd", pairs[1].added)
}

func TestAlignPaths_BelowThresholdStaysUnmatched(t *testing.T) {
	src := schema.NewObject()
	src.SetProperty("count", schema.NewScalar(schema.KindInteger))
	dst := schema.NewObject()
	dst.SetProperty("flags", schema.NewArray(schema.NewScalar(schema.KindBoolean)))

	pairs := alignPaths(
		[]string{"count"},
		[]string{"flags"},
		src.Flatten(), dst.Flatten(),
	)
	assert.Empty(t, pairs)
}
