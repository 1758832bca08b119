package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siZaiMou/evoschema/schema"
)

func floatPtr(v float64) *float64 { return &v }

func TestRangeOps(t *testing.T) {
	bounded := schema.NewScalar(schema.KindInteger)
	bounded.Minimum = floatPtr(1)
	bounded.Maximum = floatPtr(10)

	loose := schema.NewScalar(schema.KindInteger)
	loose.Minimum = floatPtr(0)
	loose.Maximum = floatPtr(100)

	free := schema.NewScalar(schema.KindInteger)

	t.Run("add", func(t *testing.T) {
		ops := rangeOps("age", free, bounded)
		require.Len(t, ops, 1)
		assert.Equal(t, OpAddRange, ops[0].Op)
		assert.Equal(t, "age", ops[0].Path)
		assert.Equal(t, map[string]any{"minimum": 1.0, "maximum": 10.0}, ops[0].Spec)
	})
	t.Run("drop", func(t *testing.T) {
		ops := rangeOps("age", bounded, free)
		require.Len(t, ops, 1)
		assert.Equal(t, OpDropRange, ops[0].Op)
	})
	t.Run("modify", func(t *testing.T) {
		ops := rangeOps("age", bounded, loose)
		require.Len(t, ops, 1)
		assert.Equal(t, OpModifyRange, ops[0].Op)
		assert.Equal(t, map[string]any{"minimum": 1.0, "maximum": 10.0}, ops[0].From)
		assert.Equal(t, map[string]any{"minimum": 0.0, "maximum": 100.0}, ops[0].To)
	})
	t.Run("unchanged", func(t *testing.T) {
		assert.Empty(t, rangeOps("age", bounded, bounded))
	})
	t.Run("one-sided bound counts as present", func(t *testing.T) {
		minOnly := schema.NewScalar(schema.KindInteger)
		minOnly.Minimum = floatPtr(5)
		ops := rangeOps("age", minOnly, free)
		require.Len(t, ops, 1)
		assert.Equal(t, OpDropRange, ops[0].Op)
	})
}

func TestEnumOps(t *testing.T) {
	plain := schema.NewScalar(schema.KindString)
	twoValues := schema.NewScalar(schema.KindString)
	twoValues.Enum = []any{"a", "b"}
	reordered := schema.NewScalar(schema.KindString)
	reordered.Enum = []any{"b", "a"}
	grown := schema.NewScalar(schema.KindString)
	grown.Enum = []any{"a", "b", "c"}

	t.Run("add", func(t *testing.T) {
		ops := enumOps("status", plain, twoValues)
		require.Len(t, ops, 1)
		assert.Equal(t, OpAddEnum, ops[0].Op)
		assert.Equal(t, []any{"a", "b"}, ops[0].Values)
	})
	t.Run("drop", func(t *testing.T) {
		ops := enumOps("status", twoValues, plain)
		require.Len(t, ops, 1)
		assert.Equal(t, OpDropEnum, ops[0].Op)
	})
	t.Run("modify carries both full lists", func(t *testing.T) {
		ops := enumOps("status", twoValues, grown)
		require.Len(t, ops, 1)
		assert.Equal(t, OpModifyEnum, ops[0].Op)
		assert.Equal(t, []any{"a", "b"}, ops[0].From)
		assert.Equal(t, []any{"a", "b", "c"}, ops[0].To)
	})
	t.Run("reorder is not a change", func(t *testing.T) {
		assert.Empty(t, enumOps("status", twoValues, reordered))
	})
}

func TestPatternOps(t *testing.T) {
	plain := schema.NewScalar(schema.KindString)
	alpha := schema.NewScalar(schema.KindString)
	alpha.Pattern = "^[a-z]+$"
	digits := schema.NewScalar(schema.KindString)
	digits.Pattern = "^[0-9]+$"

	t.Run("add", func(t *testing.T) {
		ops := patternOps("code", plain, alpha)
		require.Len(t, ops, 1)
		assert.Equal(t, OpAddPattern, ops[0].Op)
		assert.Equal(t, "^[a-z]+$", ops[0].Pattern)
	})
	t.Run("modify", func(t *testing.T) {
		ops := patternOps("code", alpha, digits)
		require.Len(t, ops, 1)
		assert.Equal(t, OpModifyPattern, ops[0].Op)
		assert.Equal(t, "^[a-z]+$", ops[0].From)
		assert.Equal(t, "^[0-9]+$", ops[0].To)
	})
	t.Run("drop emits nothing", func(t *testing.T) {
		assert.Empty(t, patternOps("code", alpha, plain))
	})
}

func TestRequiredOps_SymmetricDifference(t *testing.T) {
	src := schema.NewObject()
	src.SetProperty("a", schema.NewScalar(schema.KindString))
	src.SetProperty("b", schema.NewScalar(schema.KindString))
	src.Required = []string{"a", "b"}

	dst := schema.NewObject()
	dst.SetProperty("a", schema.NewScalar(schema.KindString))
	dst.SetProperty("c", schema.NewScalar(schema.KindString))
	dst.Required = []string{"a", "c"}

	ops := requiredOps("", src, dst, nil)
	require.Len(t, ops, 2)
	assert.Equal(t, OpAddRequired, ops[0].Op)
	assert.Equal(t, "c", ops[0].Path)
	assert.Equal(t, OpDropRequired, ops[1].Op)
	assert.Equal(t, "b", ops[1].Path)
}

func TestRequiredOps_RenameTranslation(t *testing.T) {
	src := schema.NewObject()
	src.SetProperty("user_id", schema.NewScalar(schema.KindString))
	src.Required = []string{"user_id"}

	dst := schema.NewObject()
	dst.SetProperty("uid", schema.NewScalar(schema.KindString))
	dst.Required = []string{"uid"}

	// Without the rename mapping the required sets look disjoint.
	assert.Len(t, requiredOps("", src, dst, nil), 2)

	// With it, the rename fully explains the required change.
	ops := requiredOps("", src, dst, map[string]string{"user_id": "uid"})
	assert.Empty(t, ops)
}

func TestRequiredOps_NestedPathPrefix(t *testing.T) {
	src := schema.NewObject()
	src.SetProperty("x", schema.NewScalar(schema.KindString))

	dst := schema.NewObject()
	dst.SetProperty("x", schema.NewScalar(schema.KindString))
	dst.Required = []string{"x"}

	ops := requiredOps("meta", src, dst, nil)
	require.Len(t, ops, 1)
	assert.Equal(t, "meta.x", ops[0].Path)
}

func TestRequiredOps_NonObjectNodes(t *testing.T) {
	assert.Empty(t, requiredOps("f",
		schema.NewScalar(schema.KindString),
		schema.NewScalar(schema.KindString), nil))
}

func TestClassifyTypeChange(t *testing.T) {
	str := schema.NewScalar(schema.KindString)
	integer := schema.NewScalar(schema.KindInteger)
	arr := schema.NewArray(schema.NewScalar(schema.KindString))

	t.Run("same kind is a no-op", func(t *testing.T) {
		assert.Nil(t, classifyTypeChange("f", str, schema.NewScalar(schema.KindString)))
	})
	t.Run("to array", func(t *testing.T) {
		op := classifyTypeChange("f", str, arr)
		require.NotNil(t, op)
		assert.Equal(t, OpToArray, op.Op)
	})
	t.Run("to scalar", func(t *testing.T) {
		op := classifyTypeChange("f", arr, str)
		require.NotNil(t, op)
		assert.Equal(t, OpToScalar, op.Op)
	})
	t.Run("scalar coercion", func(t *testing.T) {
		op := classifyTypeChange("f", str, integer)
		require.NotNil(t, op)
		assert.Equal(t, OpChangeType, op.Op)
		assert.Equal(t, "string", op.From)
		assert.Equal(t, "integer", op.To)
	})
}
