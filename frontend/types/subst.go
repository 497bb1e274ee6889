package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/pkg/errors"
)

// maxApplyDepth bounds chain-chasing in Apply. A correct occurs check
// makes cycles impossible, so hitting this limit indicates a bug in the
// engine rather than a property of the input program.
const maxApplyDepth = 512

// Subst is a finite mapping from type and row variables to types.
// The zero value is the empty substitution.
type Subst struct {
	vars map[VarID]Type
	rows map[RowID]Type
}

// SubstVar is the singleton substitution id -> t.
func SubstVar(id VarID, t Type) Subst {
	return Subst{vars: map[VarID]Type{id: t}}
}

// SubstRow is the singleton substitution binding a row variable to a
// row-shaped type: a RowVar, a closed Record, or a RecordRow fragment.
func SubstRow(id RowID, t Type) Subst {
	return Subst{rows: map[RowID]Type{id: t}}
}

func (s Subst) IsEmpty() bool {
	return len(s.vars) == 0 && len(s.rows) == 0
}

// Var looks up the binding for a type variable, if any.
func (s Subst) Var(id VarID) (Type, bool) {
	t, ok := s.vars[id]
	return t, ok
}

// Row looks up the binding for a row variable, if any.
func (s Subst) Row(id RowID) (Type, bool) {
	t, ok := s.rows[id]
	return t, ok
}

// Compose builds the substitution equivalent to applying older first and
// newer second: newer is applied across older's targets, then the two are
// merged with newer winning on key conflicts. Inference composes
// innermost-first, so the substitution returned by a subexpression is
// always the older one.
func Compose(newer, older Subst) Subst {
	if older.IsEmpty() {
		return newer
	}
	if newer.IsEmpty() {
		return older
	}
	merged := Subst{
		vars: make(map[VarID]Type, len(newer.vars)+len(older.vars)),
		rows: make(map[RowID]Type, len(newer.rows)+len(older.rows)),
	}
	for id, t := range older.vars {
		merged.vars[id] = newer.Apply(t)
	}
	for id, t := range older.rows {
		merged.rows[id] = newer.Apply(t)
	}
	for id, t := range newer.vars {
		merged.vars[id] = t
	}
	for id, t := range newer.rows {
		merged.rows[id] = t
	}
	return merged
}

// Apply rewrites every mapped variable in t, recursively. A type with no
// free variables mapped by s is returned unchanged.
func (s Subst) Apply(t Type) Type {
	if s.IsEmpty() {
		return t
	}
	return s.apply(t, 0)
}

func (s Subst) apply(t Type, depth int) Type {
	if depth > maxApplyDepth {
		panic(errors.Errorf("substitution recursion limit exceeded while applying to %s", t.TypeName()))
	}
	switch t := t.(type) {
	case *Const:
		return t
	case *Var:
		target, ok := s.vars[t.ID]
		if !ok {
			return t
		}
		return s.apply(target, depth+1)
	case *RowVar:
		target, ok := s.rows[t.ID]
		if !ok {
			return t
		}
		return s.apply(target, depth+1)
	case *Arrow:
		return &Arrow{Arg: s.apply(t.Arg, depth+1), Return: s.apply(t.Return, depth+1)}
	case *Record:
		return &Record{Fields: s.applyFields(t.Fields, depth)}
	case *RecordRow:
		fields := s.applyFields(t.Fields, depth)
		switch rest := s.apply(&RowVar{ID: t.Rest}, depth+1).(type) {
		case *RowVar:
			return &RecordRow{Fields: fields, Rest: rest.ID}
		case *Record:
			// the remainder closed up: the whole record is now closed
			return &Record{Fields: mergeFieldMaps(fields, rest.Fields)}
		case *RecordRow:
			return &RecordRow{Fields: mergeFieldMaps(fields, rest.Fields), Rest: rest.Rest}
		default:
			panic(errors.Errorf("row variable bound to non-row type %s", rest.TypeName()))
		}
	case *Generic:
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = s.apply(arg, depth+1)
		}
		return &Generic{Name: t.Name, Args: args}
	case *Array:
		return &Array{Elem: s.apply(t.Elem, depth+1), Size: t.Size}
	case *Ref:
		return &Ref{Elem: s.apply(t.Elem, depth+1)}
	default:
		panic(errors.Errorf("substitution applied to unknown type %T", t))
	}
}

func (s Subst) applyFields(fields *immutable.SortedMap[string, Type], depth int) *immutable.SortedMap[string, Type] {
	applied := immutable.NewSortedMap[string, Type](immutable.NewComparer(""))
	itr := fields.Iterator()
	for !itr.Done() {
		name, t, _ := itr.Next()
		applied = applied.Set(name, s.apply(t, depth+1))
	}
	return applied
}
