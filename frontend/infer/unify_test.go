package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/infer"
	"github.com/vansweej/parlang/frontend/types"
)

var at = ast.Range{}

func arrow(arg, ret types.Type) *types.Arrow {
	return &types.Arrow{Arg: arg, Return: ret}
}

func fieldMap(fields map[string]types.Type) *types.Record {
	return &types.Record{Fields: types.NewFieldMap(fields)}
}

// assertUnifies checks success in both directions, with
// substitution-equivalent outcomes.
func assertUnifies(t *testing.T, a, b types.Type) {
	t.Helper()
	env := infer.NewEnv()
	sub, err := env.Unify(at, a, b)
	assert.Nil(t, err, "unify(%s, %s): %v", a, b, err)
	assert.Equal(t, types.TypeString(sub.Apply(a)), types.TypeString(sub.Apply(b)))

	reversed, err := infer.NewEnv().Unify(at, b, a)
	assert.Nil(t, err, "unify(%s, %s): %v", b, a, err)
	assert.Equal(t, types.TypeString(reversed.Apply(a)), types.TypeString(reversed.Apply(b)))
}

func assertUnifyFails(t *testing.T, a, b types.Type, code ilerr.ErrCode) {
	t.Helper()
	_, err := infer.NewEnv().Unify(at, a, b)
	if assert.NotNil(t, err, "unify(%s, %s) should fail", a, b) {
		assert.Equal(t, code, err.Code(), "unify(%s, %s): %s", a, b, ilerr.FormatWithCode(err))
	}
	_, err = infer.NewEnv().Unify(at, b, a)
	assert.NotNil(t, err, "unify(%s, %s) should fail", b, a)
}

func TestUnifyBaseTypes(t *testing.T) {
	assertUnifies(t, types.IntType, types.IntType)
	assertUnifies(t, types.UnitType, types.UnitType)
	assertUnifyFails(t, types.IntType, types.BoolType, ilerr.UnificationFailure)
}

func TestUnifyVariables(t *testing.T) {
	v := &types.Var{ID: 0}
	assertUnifies(t, v, types.IntType)
	assertUnifies(t, v, &types.Var{ID: 1})
	assertUnifies(t, v, v)

	sub, err := infer.NewEnv().Unify(at, v, types.IntType)
	assert.Nil(t, err)
	assert.Equal(t, "Int", types.TypeString(sub.Apply(v)))
}

func TestOccursCheck(t *testing.T) {
	v := &types.Var{ID: 0}
	assertUnifyFails(t, v, arrow(v, types.IntType), ilerr.OccursCheckFailure)
	assertUnifyFails(t, v, &types.Generic{Name: "List", Args: []types.Type{v}}, ilerr.OccursCheckFailure)
	// the failure is distinct from a plain mismatch
	_, err := infer.NewEnv().Unify(at, v, arrow(v, types.IntType))
	assert.NotEqual(t, ilerr.UnificationFailure, err.Code())
}

func TestUnifyArrows(t *testing.T) {
	u := &types.Var{ID: 0}
	w := &types.Var{ID: 1}
	sub, err := infer.NewEnv().Unify(at, arrow(u, w), arrow(types.IntType, types.BoolType))
	assert.Nil(t, err)
	assert.Equal(t, "Int", types.TypeString(sub.Apply(u)))
	assert.Equal(t, "Bool", types.TypeString(sub.Apply(w)))

	assertUnifyFails(t, arrow(types.IntType, types.IntType), types.IntType, ilerr.UnificationFailure)
}

func TestUnifyGenerics(t *testing.T) {
	option := func(arg types.Type) *types.Generic {
		return &types.Generic{Name: "Option", Args: []types.Type{arg}}
	}
	v := &types.Var{ID: 0}
	assertUnifies(t, option(v), option(types.IntType))
	assertUnifyFails(t, option(types.IntType), option(types.BoolType), ilerr.UnificationFailure)
	assertUnifyFails(t, option(types.IntType),
		&types.Generic{Name: "List", Args: []types.Type{types.IntType}}, ilerr.UnificationFailure)
	assertUnifyFails(t, option(types.IntType),
		&types.Generic{Name: "Option", Args: []types.Type{types.IntType, types.IntType}}, ilerr.UnificationFailure)
}

func TestUnifyClosedRecords(t *testing.T) {
	a := fieldMap(map[string]types.Type{"x": types.IntType, "y": &types.Var{ID: 0}})
	b := fieldMap(map[string]types.Type{"x": types.IntType, "y": types.BoolType})
	assertUnifies(t, a, b)

	missing := fieldMap(map[string]types.Type{"x": types.IntType})
	assertUnifyFails(t, a, missing, ilerr.UnificationFailure)
}

func TestUnifyOpenAgainstClosed(t *testing.T) {
	open := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"age": &types.Var{ID: 0}}),
		Rest:   0,
	}
	closed := fieldMap(map[string]types.Type{"age": types.IntType, "name": types.CharType})

	sub, err := infer.NewEnv().Unify(at, open, closed)
	assert.Nil(t, err)
	// the open row absorbs the extra field and closes up
	assert.Equal(t, "{age: Int, name: Char}", types.TypeString(sub.Apply(open)))

	withoutAge := fieldMap(map[string]types.Type{"name": types.CharType})
	assertUnifyFails(t, open, withoutAge, ilerr.UnificationFailure)
}

func TestUnifyTwoOpenRows(t *testing.T) {
	a := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"x": types.IntType}),
		Rest:   100,
	}
	b := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{"y": types.BoolType}),
		Rest:   101,
	}
	sub, err := infer.NewEnv().Unify(at, a, b)
	assert.Nil(t, err)
	// each side absorbs the other's fields through a shared remainder
	assert.Equal(t, types.TypeString(sub.Apply(a)), types.TypeString(sub.Apply(b)))

	applied, ok := sub.Apply(a).(*types.RecordRow)
	if assert.True(t, ok, "rows stay open after unification") {
		_, hasX := applied.Fields.Get("x")
		_, hasY := applied.Fields.Get("y")
		assert.True(t, hasX)
		assert.True(t, hasY)
	}
}

func TestRowVariableOnlyBindsRowShapes(t *testing.T) {
	rest := &types.RowVar{ID: 0}
	assertUnifyFails(t, types.IntType, rest, ilerr.UnificationFailure)
	assertUnifyFails(t, arrow(types.IntType, types.IntType), rest, ilerr.UnificationFailure)
	assertUnifyFails(t, &types.Generic{Name: "Option", Args: []types.Type{types.IntType}}, rest,
		ilerr.UnificationFailure)

	assertUnifies(t, rest, &types.RowVar{ID: 0})
	assertUnifies(t, rest, fieldMap(map[string]types.Type{"age": types.IntType}))
}

func TestUnifyArraysAndRefs(t *testing.T) {
	assertUnifies(t,
		&types.Array{Elem: &types.Var{ID: 0}, Size: 4},
		&types.Array{Elem: types.IntType, Size: 4})
	assertUnifyFails(t,
		&types.Array{Elem: types.IntType, Size: 4},
		&types.Array{Elem: types.IntType, Size: 8}, ilerr.UnificationFailure)
	assertUnifies(t, &types.Ref{Elem: &types.Var{ID: 0}}, &types.Ref{Elem: types.IntType})
}
