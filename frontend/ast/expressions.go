package ast

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Rec)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*RecordLit)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*TypeDecl)(nil)
	_ Expr = (*CtorApp)(nil)
	_ Expr = (*AliasDecl)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*When)(nil)
)

// Expr is the base for all expressions.
//
// The following expressions are supported:
//
//	Literal:    literal value with a LiteralKind tag
//	Var:        variable reference
//	BinaryExpr: binary operation
//	If:         conditional
//	Let:        let-binding
//	Rec:        self-referential binding (rejected by the type checker)
//	Func:       function abstraction
//	Call:       function application
//	RecordLit:  record construction
//	Select:     record field access
//	TypeDecl:   scoped sum-type declaration
//	CtorApp:    constructor application
//	AliasDecl:  scoped type alias
//	Tuple:      tuple literal (loosely typed)
//	ArrayLit:   array literal (loosely typed)
//	When:       pattern match (loosely typed)
type Expr interface {
	Positioner
	exprNode()
	// ExprName is the name of the syntax-type of the expression.
	ExprName() string
	// Describe is what to call this expression in error messages
	Describe() string
}

func (e *Literal) ExprName() string    { return "Literal" }
func (e *Var) ExprName() string        { return "Var" }
func (e *BinaryExpr) ExprName() string { return "BinaryExpr" }
func (e *If) ExprName() string         { return "If" }
func (e *Let) ExprName() string        { return "Let" }
func (e *Rec) ExprName() string        { return "Rec" }
func (e *Func) ExprName() string       { return "Func" }
func (e *Call) ExprName() string       { return "Call" }
func (e *RecordLit) ExprName() string  { return "RecordLit" }
func (e *Select) ExprName() string     { return "Select" }
func (e *TypeDecl) ExprName() string   { return "TypeDecl" }
func (e *CtorApp) ExprName() string    { return "CtorApp" }
func (e *AliasDecl) ExprName() string  { return "AliasDecl" }
func (e *Tuple) ExprName() string      { return "Tuple" }
func (e *ArrayLit) ExprName() string   { return "ArrayLit" }
func (e *When) ExprName() string       { return "When" }

func (e *Literal) Describe() string    { return e.Kind.String() + " literal" }
func (e *Var) Describe() string        { return "variable" }
func (e *BinaryExpr) Describe() string { return "binary operation" }
func (e *If) Describe() string         { return "conditional" }
func (e *Let) Describe() string        { return "let binding" }
func (e *Rec) Describe() string        { return "recursive binding" }
func (e *Func) Describe() string       { return "function" }
func (e *Call) Describe() string       { return "function call" }
func (e *RecordLit) Describe() string  { return "record" }
func (e *Select) Describe() string     { return "field access" }
func (e *TypeDecl) Describe() string   { return "type declaration" }
func (e *CtorApp) Describe() string    { return "constructor application" }
func (e *AliasDecl) Describe() string  { return "type alias" }
func (e *Tuple) Describe() string      { return "tuple" }
func (e *ArrayLit) Describe() string   { return "array literal" }
func (e *When) Describe() string       { return "match expression" }
