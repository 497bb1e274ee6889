package types

// Fresher keeps track of new variable IDs.
// It is mutable and not suitable for concurrent use: every typecheck run
// owns exactly one, threaded through the environment, so independent runs
// never share state.
type Fresher struct {
	typeCount uint64
	rowCount  uint64
}

func NewFresher() *Fresher {
	return &Fresher{}
}

// FreshVar allocates a type variable with an id never used before in
// this run.
func (f *Fresher) FreshVar() *Var {
	v := &Var{ID: VarID(f.typeCount)}
	f.typeCount++
	return v
}

// FreshRow allocates a row variable. Row ids count independently of type
// variable ids.
func (f *Fresher) FreshRow() *RowVar {
	v := &RowVar{ID: RowID(f.rowCount)}
	f.rowCount++
	return v
}
