package types

import (
	"sort"

	"github.com/xtgo/set"
)

// FreeVars are the variables occurring free in a type, split by id space.
// Both slices are sorted ascending and duplicate-free.
type FreeVars struct {
	TypeVars []VarID
	RowVars  []RowID
}

// FreeTypeVars collects the free type and row variables of t. Every
// variable in a Type is free; binding only happens at the Scheme level.
func FreeTypeVars(t Type) FreeVars {
	fv := FreeVars{}
	collectFree(t, &fv)
	fv.TypeVars = uniqVarIDs(fv.TypeVars)
	fv.RowVars = uniqRowIDs(fv.RowVars)
	return fv
}

func collectFree(t Type, fv *FreeVars) {
	switch t := t.(type) {
	case *Const:
	case *Var:
		fv.TypeVars = append(fv.TypeVars, t.ID)
	case *RowVar:
		fv.RowVars = append(fv.RowVars, t.ID)
	case *Arrow:
		collectFree(t.Arg, fv)
		collectFree(t.Return, fv)
	case *Record:
		itr := t.Fields.Iterator()
		for !itr.Done() {
			_, fieldType, _ := itr.Next()
			collectFree(fieldType, fv)
		}
	case *RecordRow:
		itr := t.Fields.Iterator()
		for !itr.Done() {
			_, fieldType, _ := itr.Next()
			collectFree(fieldType, fv)
		}
		fv.RowVars = append(fv.RowVars, t.Rest)
	case *Generic:
		for _, arg := range t.Args {
			collectFree(arg, fv)
		}
	case *Array:
		collectFree(t.Elem, fv)
	case *Ref:
		collectFree(t.Elem, fv)
	}
}

// OccursVar reports whether the type variable id occurs free in t.
func OccursVar(id VarID, t Type) bool {
	fv := FreeVars{}
	collectFree(t, &fv)
	for _, free := range fv.TypeVars {
		if free == id {
			return true
		}
	}
	return false
}

// OccursRow reports whether the row variable id occurs free in t.
func OccursRow(id RowID, t Type) bool {
	fv := FreeVars{}
	collectFree(t, &fv)
	for _, free := range fv.RowVars {
		if free == id {
			return true
		}
	}
	return false
}

type varIDSlice []VarID

func (s varIDSlice) Len() int           { return len(s) }
func (s varIDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s varIDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type rowIDSlice []RowID

func (s rowIDSlice) Len() int           { return len(s) }
func (s rowIDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s rowIDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func uniqVarIDs(ids []VarID) []VarID {
	if len(ids) < 2 {
		return ids
	}
	sort.Sort(varIDSlice(ids))
	return ids[:set.Uniq(varIDSlice(ids))]
}

func uniqRowIDs(ids []RowID) []RowID {
	if len(ids) < 2 {
		return ids
	}
	sort.Sort(rowIDSlice(ids))
	return ids[:set.Uniq(rowIDSlice(ids))]
}
