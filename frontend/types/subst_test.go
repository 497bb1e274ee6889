package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vansweej/parlang/frontend/types"
)

func TestEmptySubstIsIdentity(t *testing.T) {
	fn := arrow(&types.Var{ID: 1}, types.BoolType)
	assert.Same(t, types.Type(fn), types.Subst{}.Apply(fn))
}

func TestIrrelevantSubstLeavesTypeUnchanged(t *testing.T) {
	fn := arrow(&types.Var{ID: 1}, types.BoolType)
	applied := types.SubstVar(9, types.IntType).Apply(fn)
	assert.Equal(t, types.TypeString(fn), types.TypeString(applied))
}

func TestSubstRewritesMappedVariables(t *testing.T) {
	sub := types.SubstVar(1, types.IntType)
	assert.Equal(t, "Int", types.TypeString(sub.Apply(&types.Var{ID: 1})))
	assert.Equal(t, "Int -> Bool",
		types.TypeString(sub.Apply(arrow(&types.Var{ID: 1}, types.BoolType))))
}

func TestComposeNewerWins(t *testing.T) {
	older := types.SubstVar(1, types.IntType)
	newer := types.SubstVar(1, types.BoolType)
	composed := types.Compose(newer, older)
	assert.Equal(t, "Bool", types.TypeString(composed.Apply(&types.Var{ID: 1})))

	bound, ok := composed.Var(1)
	assert.True(t, ok)
	assert.Same(t, types.Type(types.BoolType), bound)
}

func TestComposeChainsThroughTargets(t *testing.T) {
	older := types.SubstVar(0, &types.Var{ID: 1})
	newer := types.SubstVar(1, types.IntType)
	composed := types.Compose(newer, older)
	assert.Equal(t, "Int", types.TypeString(composed.Apply(&types.Var{ID: 0})))

	// composing rewrote the older binding's target
	bound, ok := composed.Var(0)
	assert.True(t, ok)
	assert.Same(t, types.Type(types.IntType), bound)
}

func TestRowLookup(t *testing.T) {
	target := &types.RecordRow{Fields: types.NewFieldMap(nil), Rest: 2}
	sub := types.SubstRow(1, target)
	bound, ok := sub.Row(1)
	assert.True(t, ok)
	assert.Same(t, types.Type(target), bound)
	_, ok = sub.Row(2)
	assert.False(t, ok)
}

func TestRowSubstClosesRecord(t *testing.T) {
	open := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"age": types.IntType}),
		Rest:   0,
	}
	closedRest := &types.Record{Fields: types.NewFieldMap(map[string]types.Type{"name": types.CharType})}
	applied := types.SubstRow(0, closedRest).Apply(open)
	assert.Equal(t, "{age: Int, name: Char}", types.TypeString(applied))
	assert.IsType(t, &types.Record{}, applied)
}

func TestRowSubstKeepsRecordOpen(t *testing.T) {
	open := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"age": types.IntType}),
		Rest:   0,
	}
	extension := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"name": types.CharType}),
		Rest:   4,
	}
	applied := types.SubstRow(0, extension).Apply(open)
	assert.Equal(t, "{age: Int, name: Char | r4}", types.TypeString(applied))
}

func TestFreeTypeVars(t *testing.T) {
	body := arrow(&types.Var{ID: 2}, &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"x": &types.Var{ID: 2}, "y": &types.Var{ID: 5}}),
		Rest:   1,
	})
	fv := types.FreeTypeVars(body)
	assert.Equal(t, []types.VarID{2, 5}, fv.TypeVars)
	assert.Equal(t, []types.RowID{1}, fv.RowVars)
}

func TestFresherNeverReusesIds(t *testing.T) {
	fresher := types.NewFresher()
	seenVars := map[types.VarID]bool{}
	seenRows := map[types.RowID]bool{}
	for i := 0; i < 100; i++ {
		v := fresher.FreshVar()
		assert.False(t, seenVars[v.ID], "type variable id %d reused", v.ID)
		seenVars[v.ID] = true
		r := fresher.FreshRow()
		assert.False(t, seenRows[r.ID], "row variable id %d reused", r.ID)
		seenRows[r.ID] = true
	}
}

func TestInstantiateMakesIndependentCopies(t *testing.T) {
	fresher := types.NewFresher()
	v := fresher.FreshVar()
	scheme := &types.Scheme{TypeVars: []types.VarID{v.ID}, Body: arrow(v, v)}

	first := scheme.Instantiate(fresher).(*types.Arrow)
	second := scheme.Instantiate(fresher).(*types.Arrow)
	firstVar := first.Arg.(*types.Var)
	secondVar := second.Arg.(*types.Var)
	assert.NotEqual(t, firstVar.ID, secondVar.ID)
	assert.NotEqual(t, v.ID, firstVar.ID)
	// within one instantiation, sharing is preserved
	assert.Equal(t, firstVar.ID, first.Return.(*types.Var).ID)
}
