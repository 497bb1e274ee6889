package ast

import "strings"

// TypeExpr is surface type syntax, as it appears in constructor payloads
// and alias targets. It is resolved against the declaring environment by
// the inference engine; the parser only guarantees it is well-formed.
type TypeExpr interface {
	Positioner
	typeExprNode()
	ShowType() string
}

var (
	_ TypeExpr = (*TypeRef)(nil)
	_ TypeExpr = (*ArrowType)(nil)
)

// TypeRef names a base type (Int), a declared type parameter (a), or a
// generic type applied to arguments (List a). Which of the three it is
// only becomes known during resolution.
type TypeRef struct {
	Range
	Name string
	Args []TypeExpr
}

func (t *TypeRef) typeExprNode() {}

func (t *TypeRef) ShowType() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	sb := strings.Builder{}
	sb.WriteString(t.Name)
	for _, arg := range t.Args {
		sb.WriteString(" ")
		sb.WriteString(arg.ShowType())
	}
	return sb.String()
}

// ArrowType is function type syntax (a -> b) inside a payload.
type ArrowType struct {
	Range
	Arg    TypeExpr
	Return TypeExpr
}

func (t *ArrowType) typeExprNode() {}

func (t *ArrowType) ShowType() string {
	arg := t.Arg.ShowType()
	if _, isArrow := t.Arg.(*ArrowType); isArrow {
		arg = "(" + arg + ")"
	}
	return arg + " -> " + t.Return.ShowType()
}
