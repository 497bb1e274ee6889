package types

import (
	"github.com/benbjohnson/immutable"
)

// VarID identifies a type variable. Ids are unique within one inference
// run, allocated monotonically by a Fresher.
type VarID uint64

// RowID identifies a row variable. Row ids live in their own id space,
// separate from VarID.
type RowID uint64

// Type is an immutable type value. Composite types are built bottom-up
// and never mutated; substitutions produce new values.
type Type interface {
	isType()
	// TypeName is a short tag for the syntactic category of the type,
	// used in diagnostics and logs.
	TypeName() string
	String() string
}

var (
	_ Type = (*Const)(nil)
	_ Type = (*Arrow)(nil)
	_ Type = (*Var)(nil)
	_ Type = (*RowVar)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*RecordRow)(nil)
	_ Type = (*Generic)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Ref)(nil)
)

// Const is a base type: Int, Bool, Char, Float, Byte or Unit.
type Const struct {
	Name string
}

// The predeclared base types.
var (
	IntType   = &Const{Name: "Int"}
	BoolType  = &Const{Name: "Bool"}
	CharType  = &Const{Name: "Char"}
	FloatType = &Const{Name: "Float"}
	ByteType  = &Const{Name: "Byte"}
	UnitType  = &Const{Name: "Unit"}
)

func (t *Const) isType()          {}
func (t *Const) TypeName() string { return t.Name }

// Arrow is a single-argument function type. Multi-argument functions are
// curried chains of Arrows.
type Arrow struct {
	Arg    Type
	Return Type
}

func (t *Arrow) isType()          {}
func (t *Arrow) TypeName() string { return "function" }

// Var is a placeholder for an unknown type. Construct with Fresher.FreshVar.
type Var struct {
	ID VarID
}

func (t *Var) isType()          {}
func (t *Var) TypeName() string { return "type variable" }

// RowVar stands for the unknown remainder of a record's fields. It appears
// as the Rest of a RecordRow and as a substitution target, never as the
// type of an expression. Construct with Fresher.FreshRow.
type RowVar struct {
	ID RowID
}

func (t *RowVar) isType()          {}
func (t *RowVar) TypeName() string { return "row variable" }

// Record is a closed record type: exactly these fields.
type Record struct {
	Fields *immutable.SortedMap[string, Type]
}

func (t *Record) isType()          {}
func (t *Record) TypeName() string { return "record" }

// RecordRow is a row-polymorphic record type: at least Fields, plus
// whatever Rest denotes. Every record type is either a closed Record or
// carries an explicit Rest; there is no third shape.
type RecordRow struct {
	Fields *immutable.SortedMap[string, Type]
	Rest   RowID
}

func (t *RecordRow) isType()          {}
func (t *RecordRow) TypeName() string { return "record" }

// Generic is a parameterized sum type applied to arguments, e.g.
// Option Int. It carries only a name and argument list, never a pointer
// into its own definition, so recursive types need no cycles.
type Generic struct {
	Name string
	Args []Type
}

func (t *Generic) isType()          {}
func (t *Generic) TypeName() string { return t.Name }

// Array is a fixed-size array type.
type Array struct {
	Elem Type
	Size int
}

func (t *Array) isType()          {}
func (t *Array) TypeName() string { return "array" }

// Ref is a mutable reference type.
type Ref struct {
	Elem Type
}

func (t *Ref) isType()          {}
func (t *Ref) TypeName() string { return "reference" }

// NewFieldMap builds the sorted field map of a Record or RecordRow.
func NewFieldMap(fields map[string]Type) *immutable.SortedMap[string, Type] {
	m := immutable.NewSortedMap[string, Type](immutable.NewComparer(""))
	for name, t := range fields {
		m = m.Set(name, t)
	}
	return m
}

// mergeFieldMaps unions two field maps. The caller guarantees the key sets
// are disjoint; on a clash the explicit (first) map wins.
func mergeFieldMaps(explicit, absorbed *immutable.SortedMap[string, Type]) *immutable.SortedMap[string, Type] {
	merged := explicit
	itr := absorbed.Iterator()
	for !itr.Done() {
		name, t, _ := itr.Next()
		if _, present := merged.Get(name); !present {
			merged = merged.Set(name, t)
		}
	}
	return merged
}
