package infer

import (
	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/types"
	"github.com/vansweej/parlang/internal/log"
	"github.com/vansweej/parlang/util"
)

var unifyLogger = log.DefaultLogger.With("section", "unify")

// Unify finds the most general substitution making a and b structurally
// equal, or fails. at locates the expression being typed, for error
// reporting only. Both arguments are expected to already have the
// caller's accumulated substitution applied.
func (e Env) Unify(at ast.Positioner, a, b types.Type) (types.Subst, ilerr.TypeError) {
	unifyLogger.Debug("unifying", "a", a, "b", b)

	if av, ok := a.(*types.Var); ok {
		return e.bindVar(at, av, b)
	}
	if bv, ok := b.(*types.Var); ok {
		return e.bindVar(at, bv, a)
	}

	switch a := a.(type) {
	case *types.Const:
		if b, ok := b.(*types.Const); ok && a.Name == b.Name {
			return types.Subst{}, nil
		}

	case *types.Arrow:
		if b, ok := b.(*types.Arrow); ok {
			s1, err := e.Unify(at, a.Arg, b.Arg)
			if err != nil {
				return types.Subst{}, err
			}
			s2, err := e.Unify(at, s1.Apply(a.Return), s1.Apply(b.Return))
			if err != nil {
				return types.Subst{}, err
			}
			return types.Compose(s2, s1), nil
		}

	case *types.Generic:
		if b, ok := b.(*types.Generic); ok {
			if a.Name != b.Name || len(a.Args) != len(b.Args) {
				return types.Subst{}, unifyFailure(at, a, b)
			}
			sub := types.Subst{}
			for i := range a.Args {
				s, err := e.Unify(at, sub.Apply(a.Args[i]), sub.Apply(b.Args[i]))
				if err != nil {
					return types.Subst{}, err
				}
				sub = types.Compose(s, sub)
			}
			return sub, nil
		}

	case *types.Record:
		switch b := b.(type) {
		case *types.Record:
			return e.unifyClosedRecords(at, a, b)
		case *types.RecordRow:
			return e.unifyOpenClosed(at, b, a)
		}

	case *types.RecordRow:
		switch b := b.(type) {
		case *types.Record:
			return e.unifyOpenClosed(at, a, b)
		case *types.RecordRow:
			return e.unifyOpenRows(at, a, b)
		}

	case *types.Array:
		if b, ok := b.(*types.Array); ok && a.Size == b.Size {
			return e.Unify(at, a.Elem, b.Elem)
		}

	case *types.Ref:
		if b, ok := b.(*types.Ref); ok {
			return e.Unify(at, a.Elem, b.Elem)
		}

	case *types.RowVar:
		return e.bindRow(at, a, b)
	}

	if bv, ok := b.(*types.RowVar); ok {
		return e.bindRow(at, bv, a)
	}
	return types.Subst{}, unifyFailure(at, a, b)
}

// bindVar binds v to t, unless that would build an infinite type.
func (e Env) bindVar(at ast.Positioner, v *types.Var, t types.Type) (types.Subst, ilerr.TypeError) {
	if tv, ok := t.(*types.Var); ok && tv.ID == v.ID {
		return types.Subst{}, nil
	}
	if types.OccursVar(v.ID, t) {
		return types.Subst{}, ilerr.New(ilerr.NewOccursCheckFailure{
			Positioner: ast.RangeOf(at),
			Variable:   v,
			In:         t,
		})
	}
	return types.SubstVar(v.ID, t), nil
}

// bindRow binds row variable v to a row-shaped type. A row variable only
// ever stands for the remainder of a record, so anything but a RowVar,
// Record or RecordRow target is a mismatch, not a binding.
func (e Env) bindRow(at ast.Positioner, v *types.RowVar, t types.Type) (types.Subst, ilerr.TypeError) {
	switch t := t.(type) {
	case *types.RowVar:
		if t.ID == v.ID {
			return types.Subst{}, nil
		}
	case *types.Record, *types.RecordRow:
	default:
		return types.Subst{}, unifyFailure(at, v, t)
	}
	if types.OccursRow(v.ID, t) {
		return types.Subst{}, ilerr.New(ilerr.NewOccursCheckFailure{
			Positioner: ast.RangeOf(at),
			Variable:   v,
			In:         t,
		})
	}
	return types.SubstRow(v.ID, t), nil
}

// unifyClosedRecords requires both closed records to have identical field
// sets and unifies each field's type.
func (e Env) unifyClosedRecords(at ast.Positioner, a, b *types.Record) (types.Subst, ilerr.TypeError) {
	if a.Fields.Len() != b.Fields.Len() {
		return types.Subst{}, unifyFailure(at, a, b)
	}
	sub := types.Subst{}
	itr := a.Fields.Iterator()
	for !itr.Done() {
		name, aField, _ := itr.Next()
		bField, ok := b.Fields.Get(name)
		if !ok {
			return types.Subst{}, unifyFailure(at, a, b)
		}
		s, err := e.Unify(at, sub.Apply(aField), sub.Apply(bField))
		if err != nil {
			return types.Subst{}, err
		}
		sub = types.Compose(s, sub)
	}
	return sub, nil
}

// unifyOpenClosed unifies a row-polymorphic record against a closed one:
// every field the open row names must exist on the closed record, and the
// closed record's remaining fields are absorbed into the open row's rest,
// which closes up.
func (e Env) unifyOpenClosed(at ast.Positioner, open *types.RecordRow, closed *types.Record) (types.Subst, ilerr.TypeError) {
	sub := types.Subst{}
	openNames := util.NewEmptySet[string]()
	itr := open.Fields.Iterator()
	for !itr.Done() {
		name, openField, _ := itr.Next()
		openNames.Add(name)
		closedField, ok := closed.Fields.Get(name)
		if !ok {
			return types.Subst{}, unifyFailure(at, open, closed)
		}
		s, err := e.Unify(at, sub.Apply(openField), sub.Apply(closedField))
		if err != nil {
			return types.Subst{}, err
		}
		sub = types.Compose(s, sub)
	}

	extras := map[string]types.Type{}
	itr = closed.Fields.Iterator()
	for !itr.Done() {
		name, closedField, _ := itr.Next()
		if !openNames.Contains(name) {
			extras[name] = sub.Apply(closedField)
		}
	}
	s, err := e.bindRow(at, &types.RowVar{ID: open.Rest}, &types.Record{Fields: types.NewFieldMap(extras)})
	if err != nil {
		return types.Subst{}, err
	}
	return types.Compose(s, sub), nil
}

// unifyOpenRows unifies two row-polymorphic records: overlapping fields
// unify directly, and each side's extra fields are bound through a
// freshly shared row variable. This is what lets one field-accessor type
// work across differently shaped records.
func (e Env) unifyOpenRows(at ast.Positioner, a, b *types.RecordRow) (types.Subst, ilerr.TypeError) {
	var overlap []util.Pair[types.Type, types.Type]
	aNames := util.NewEmptySet[string]()
	extraA := map[string]types.Type{}
	extraB := map[string]types.Type{}

	itr := a.Fields.Iterator()
	for !itr.Done() {
		name, aField, _ := itr.Next()
		aNames.Add(name)
		if bField, ok := b.Fields.Get(name); ok {
			overlap = append(overlap, util.NewPair(aField, bField))
		} else {
			extraA[name] = aField
		}
	}
	itr = b.Fields.Iterator()
	for !itr.Done() {
		name, bField, _ := itr.Next()
		if !aNames.Contains(name) {
			extraB[name] = bField
		}
	}

	sub := types.Subst{}
	for _, pair := range overlap {
		s, err := e.Unify(at, sub.Apply(pair.Fst), sub.Apply(pair.Snd))
		if err != nil {
			return types.Subst{}, err
		}
		sub = types.Compose(s, sub)
	}

	if a.Rest == b.Rest {
		// one remainder cannot absorb two different field sets
		if len(extraA) != 0 || len(extraB) != 0 {
			return types.Subst{}, unifyFailure(at, a, b)
		}
		return sub, nil
	}

	shared := e.fresher.FreshRow()
	s, err := e.bindRow(at, &types.RowVar{ID: a.Rest}, rowTarget(sub, extraB, shared))
	if err != nil {
		return types.Subst{}, err
	}
	sub = types.Compose(s, sub)
	s, err = e.bindRow(at, &types.RowVar{ID: b.Rest}, rowTarget(sub, extraA, shared))
	if err != nil {
		return types.Subst{}, err
	}
	return types.Compose(s, sub), nil
}

// rowTarget builds the row a rest variable gets bound to: the other
// side's extra fields, still open through the shared remainder.
func rowTarget(sub types.Subst, extras map[string]types.Type, shared *types.RowVar) types.Type {
	if len(extras) == 0 {
		return shared
	}
	applied := make(map[string]types.Type, len(extras))
	for name, t := range extras {
		applied[name] = sub.Apply(t)
	}
	return &types.RecordRow{Fields: types.NewFieldMap(applied), Rest: shared.ID}
}

func unifyFailure(at ast.Positioner, a, b types.Type) ilerr.TypeError {
	return ilerr.New(ilerr.NewUnificationFailure{
		Positioner: ast.RangeOf(at),
		First:      a,
		Second:     b,
	})
}
