package ast

import (
	"go/token"
)

// LiteralKind tags a Literal with the base type it carries.
// The parser guarantees Value is well-formed for the kind, so the
// type checker never re-parses literal text.
type LiteralKind uint8

const (
	IntLit LiteralKind = iota
	BoolLit
	CharLit
	FloatLit
	ByteLit
	UnitLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case BoolLit:
		return "bool"
	case CharLit:
		return "char"
	case FloatLit:
		return "float"
	case ByteLit:
		return "byte"
	case UnitLit:
		return "unit"
	default:
		return "invalid"
	}
}

// Literal represents a literal value (integer, boolean, etc.).
type Literal struct {
	Range
	Value string
	Kind  LiteralKind
}

func (e *Literal) exprNode() {}

// Var represents a variable or function name.
type Var struct {
	Range
	Name string
}

func (e *Var) exprNode() {}

// BinaryExpr represents a binary operation (a + b, a < b, etc.).
type BinaryExpr struct {
	Range
	Left     Expr
	Operator token.Token // ADD, SUB, MUL, QUO, REM, EQL, NEQ, LSS, GTR, LEQ, GEQ
	Right    Expr
}

func (e *BinaryExpr) exprNode() {}

// If represents a conditional (if c then a else b).
type If struct {
	Range
	Cond Expr
	Then Expr
	Else Expr
}

func (e *If) exprNode() {}

// Let represents a let-binding (let x = v in body).
type Let struct {
	Range
	Name  string
	Value Expr
	Body  Expr
}

func (e *Let) exprNode() {}

// Rec represents a self-referential binding (rec f = v in body).
// The binding name is in scope inside Value.
type Rec struct {
	Range
	Name  string
	Value Expr
	Body  Expr
}

func (e *Rec) exprNode() {}

// Func represents a single-parameter function literal (fun x -> body).
type Func struct {
	Range
	Param string
	Body  Expr
}

func (e *Func) exprNode() {}

// Call represents a function application (f x).
type Call struct {
	Range
	Fn  Expr
	Arg Expr
}

func (e *Call) exprNode() {}

// Field is one name/value pair of a RecordLit.
type Field struct {
	Name  string
	Value Expr
}

// RecordLit represents a record construction ({name = e1, age = e2}).
type RecordLit struct {
	Range
	Fields []Field
}

func (e *RecordLit) exprNode() {}

// Select represents a record field access (r.age).
type Select struct {
	Range
	Receiver Expr
	Field    string
}

func (e *Select) exprNode() {}

// CtorDecl is one constructor of a TypeDecl, with its payload type syntax.
type CtorDecl struct {
	Range
	Name    string
	Payload []TypeExpr
}

// TypeDecl represents a sum-type declaration scoped over Body
// (type Option a = Some a | None in body).
type TypeDecl struct {
	Range
	Name   string
	Params []string
	Ctors  []CtorDecl
	Body   Expr
}

func (e *TypeDecl) exprNode() {}

// CtorApp represents applying a registered constructor to its payload
// arguments (Some 1, Cons 1 Nil, None).
type CtorApp struct {
	Range
	Name string
	Args []Expr
}

func (e *CtorApp) exprNode() {}

// AliasDecl represents a type alias scoped over Body
// (alias Age = Int in body).
type AliasDecl struct {
	Range
	Name   string
	Target TypeExpr
	Body   Expr
}

func (e *AliasDecl) exprNode() {}

// Tuple represents a tuple literal ((a, b, c)).
type Tuple struct {
	Range
	Items []Expr
}

func (e *Tuple) exprNode() {}

// ArrayLit represents a fixed-size array literal ([| a, b, c |]).
type ArrayLit struct {
	Range
	Items []Expr
}

func (e *ArrayLit) exprNode() {}

// WhenCase is one arm of a When match.
type WhenCase struct {
	// Pattern names a constructor; Binds are the names its payload
	// binds inside Value. Patterns are not structurally checked.
	Pattern string
	Binds   []string
	Value   Expr
}

// When represents a pattern-matching expression over a sum-type value.
type When struct {
	Range
	Value Expr
	Cases []WhenCase
}

func (e *When) exprNode() {}
