package infer

import (
	"iter"
	"slices"

	"github.com/benbjohnson/immutable"
	set "github.com/hashicorp/go-set/v3"

	"github.com/vansweej/parlang/frontend/types"
	"github.com/vansweej/parlang/util"
)

// baseTypes are the named base types recognised in type syntax.
var baseTypes = map[string]*types.Const{
	"Int":   types.IntType,
	"Bool":  types.BoolType,
	"Char":  types.CharType,
	"Float": types.FloatType,
	"Byte":  types.ByteType,
	"Unit":  types.UnitType,
}

// Env is the type environment: name bindings, the type-alias table, the
// constructor registry and the arity table of declared generic types.
// Env is a value; Extend and friends return a new Env and never mutate
// the receiver, so parent scopes stay intact.
//
// The only mutable state reachable from an Env is its Fresher, which is
// owned by a single typecheck run. An Env must not be shared across
// concurrent runs; derive independent environments instead.
type Env struct {
	bindings *immutable.Map[string, *types.Scheme]
	aliases  *immutable.Map[string, types.Type]
	ctors    *immutable.Map[string, ConstructorInfo]
	generics *immutable.Map[string, int]
	fresher  *types.Fresher
}

// NewEnv creates an empty environment with a fresh variable supply.
func NewEnv() Env {
	return Env{
		bindings: immutable.NewMap[string, *types.Scheme](immutable.NewHasher("")),
		aliases:  immutable.NewMap[string, types.Type](immutable.NewHasher("")),
		ctors:    immutable.NewMap[string, ConstructorInfo](immutable.NewHasher("")),
		generics: immutable.NewMap[string, int](immutable.NewHasher("")),
		fresher:  types.NewFresher(),
	}
}

// Fresher is the fresh-variable supply of this run.
func (e Env) Fresher() *types.Fresher {
	return e.fresher
}

// Extend binds name to scheme in a new environment.
func (e Env) Extend(name string, scheme *types.Scheme) Env {
	e.bindings = e.bindings.Set(name, scheme)
	return e
}

// Lookup instantiates the scheme bound to name: every quantified
// variable is replaced with a brand-new fresh one, so each use of a
// polymorphic binding gets independent variables.
func (e Env) Lookup(name string) (types.Type, bool) {
	scheme, ok := e.bindings.Get(name)
	if !ok {
		return nil, false
	}
	return scheme.Instantiate(e.fresher), true
}

// LookupScheme returns the stored scheme without instantiating it.
func (e Env) LookupScheme(name string) (*types.Scheme, bool) {
	return e.bindings.Get(name)
}

// WithAlias records name as an alias for target in a new environment.
func (e Env) WithAlias(name string, target types.Type) Env {
	e.aliases = e.aliases.Set(name, target)
	return e
}

// LookupAlias resolves a declared type alias.
func (e Env) LookupAlias(name string) (types.Type, bool) {
	return e.aliases.Get(name)
}

// RegisterConstructor records a sum-type constructor in a new environment.
func (e Env) RegisterConstructor(info ConstructorInfo) Env {
	e.ctors = e.ctors.Set(info.Name, info)
	return e
}

// LookupConstructor finds a registered constructor by name.
func (e Env) LookupConstructor(name string) (ConstructorInfo, bool) {
	return e.ctors.Get(name)
}

// withGeneric records a declared generic type name and its arity.
func (e Env) withGeneric(name string, arity int) Env {
	e.generics = e.generics.Set(name, arity)
	return e
}

func (e Env) genericArity(name string) (int, bool) {
	return e.generics.Get(name)
}

// Apply rewrites every binding's scheme through sub, shielding each
// scheme's quantified variables. Used before generalizing a let binding.
func (e Env) Apply(sub types.Subst) Env {
	if sub.IsEmpty() {
		return e
	}
	applied := immutable.NewMap[string, *types.Scheme](immutable.NewHasher(""))
	itr := e.bindings.Iterator()
	for !itr.Done() {
		name, scheme, _ := itr.Next()
		applied = applied.Set(name, scheme.Apply(sub))
	}
	e.bindings = applied
	return e
}

// Generalize quantifies the variables free in t but not free in the
// environment, closing over only truly local variables.
func (e Env) Generalize(t types.Type) *types.Scheme {
	fv := types.FreeTypeVars(t)
	envTypeVars, envRowVars := e.freeVars()

	scheme := &types.Scheme{Body: t}
	for _, id := range fv.TypeVars {
		if !envTypeVars.Contains(id) {
			scheme.TypeVars = append(scheme.TypeVars, id)
		}
	}
	for _, id := range fv.RowVars {
		if !envRowVars.Contains(id) {
			scheme.RowVars = append(scheme.RowVars, id)
		}
	}
	return scheme
}

// freeVars collects the variables free in any binding of the environment.
func (e Env) freeVars() (*set.Set[types.VarID], *set.Set[types.RowID]) {
	var typeSeqs []iter.Seq[types.VarID]
	var rowSeqs []iter.Seq[types.RowID]
	itr := e.bindings.Iterator()
	for !itr.Done() {
		_, scheme, _ := itr.Next()
		fv := scheme.FreeVars()
		typeSeqs = append(typeSeqs, slices.Values(fv.TypeVars))
		rowSeqs = append(rowSeqs, slices.Values(fv.RowVars))
	}
	typeVars := util.SetFromSeq(util.ConcatIter(typeSeqs...), e.bindings.Len())
	rowVars := util.SetFromSeq(util.ConcatIter(rowSeqs...), e.bindings.Len())
	return typeVars, rowVars
}
