package types

// Scheme is a polymorphic type: a body quantified over the listed type
// and row variables. A Scheme with no quantified variables is a plain
// monomorphic binding.
//
// Schemes are created only at let-generalization and destroyed
// (instantiated away) at each use-site lookup.
type Scheme struct {
	TypeVars []VarID
	RowVars  []RowID
	Body     Type
}

// MonoScheme wraps a type as a scheme with no quantified variables, the
// shape used for function parameters.
func MonoScheme(t Type) *Scheme {
	return &Scheme{Body: t}
}

// IsMono reports whether the scheme quantifies nothing.
func (s *Scheme) IsMono() bool {
	return len(s.TypeVars) == 0 && len(s.RowVars) == 0
}

// Instantiate replaces every quantified variable with a brand-new fresh
// one, so each use of a polymorphic binding gets independent variables.
func (s *Scheme) Instantiate(fresher *Fresher) Type {
	if s.IsMono() {
		return s.Body
	}
	vars := make(map[VarID]Type, len(s.TypeVars))
	for _, id := range s.TypeVars {
		vars[id] = fresher.FreshVar()
	}
	rows := make(map[RowID]Type, len(s.RowVars))
	for _, id := range s.RowVars {
		rows[id] = fresher.FreshRow()
	}
	return Subst{vars: vars, rows: rows}.Apply(s.Body)
}

// Apply rewrites the scheme body through sub, shielding the quantified
// variables: a binding for a quantified id never reaches the body.
func (s *Scheme) Apply(sub Subst) *Scheme {
	if sub.IsEmpty() {
		return s
	}
	filtered := sub
	if !s.IsMono() {
		filtered = Subst{
			vars: make(map[VarID]Type, len(sub.vars)),
			rows: make(map[RowID]Type, len(sub.rows)),
		}
		for id, t := range sub.vars {
			if !containsVarID(s.TypeVars, id) {
				filtered.vars[id] = t
			}
		}
		for id, t := range sub.rows {
			if !containsRowID(s.RowVars, id) {
				filtered.rows[id] = t
			}
		}
		if filtered.IsEmpty() {
			return s
		}
	}
	return &Scheme{TypeVars: s.TypeVars, RowVars: s.RowVars, Body: filtered.Apply(s.Body)}
}

// FreeVars are the variables free in the body minus the quantified ones.
func (s *Scheme) FreeVars() FreeVars {
	fv := FreeTypeVars(s.Body)
	free := FreeVars{}
	for _, id := range fv.TypeVars {
		if !containsVarID(s.TypeVars, id) {
			free.TypeVars = append(free.TypeVars, id)
		}
	}
	for _, id := range fv.RowVars {
		if !containsRowID(s.RowVars, id) {
			free.RowVars = append(free.RowVars, id)
		}
	}
	return free
}

func containsVarID(ids []VarID, id VarID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsRowID(ids []RowID, id RowID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
