package ast

import (
	"strings"
)

// ExprString renders an expression back to a compact surface-ish syntax.
// It is intended for logs and test names, not for round-tripping.
func ExprString(expr Expr) string {
	sb := &strings.Builder{}
	writeExpr(sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		if e.Kind == UnitLit {
			sb.WriteString("()")
			return
		}
		sb.WriteString(e.Value)
	case *Var:
		sb.WriteString(e.Name)
	case *BinaryExpr:
		writeExpr(sb, e.Left)
		sb.WriteString(" " + e.Operator.String() + " ")
		writeExpr(sb, e.Right)
	case *If:
		sb.WriteString("if ")
		writeExpr(sb, e.Cond)
		sb.WriteString(" then ")
		writeExpr(sb, e.Then)
		sb.WriteString(" else ")
		writeExpr(sb, e.Else)
	case *Let:
		sb.WriteString("let " + e.Name + " = ")
		writeExpr(sb, e.Value)
		sb.WriteString(" in ")
		writeExpr(sb, e.Body)
	case *Rec:
		sb.WriteString("rec " + e.Name + " = ")
		writeExpr(sb, e.Value)
		sb.WriteString(" in ")
		writeExpr(sb, e.Body)
	case *Func:
		sb.WriteString("fun " + e.Param + " -> ")
		writeExpr(sb, e.Body)
	case *Call:
		writeCallee(sb, e.Fn)
		sb.WriteString(" ")
		writeCallee(sb, e.Arg)
	case *RecordLit:
		sb.WriteString("{")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name + " = ")
			writeExpr(sb, f.Value)
		}
		sb.WriteString("}")
	case *Select:
		writeCallee(sb, e.Receiver)
		sb.WriteString("." + e.Field)
	case *TypeDecl:
		sb.WriteString("type " + e.Name)
		for _, p := range e.Params {
			sb.WriteString(" " + p)
		}
		sb.WriteString(" = ")
		for i, c := range e.Ctors {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(c.Name)
			for _, payload := range c.Payload {
				sb.WriteString(" " + payload.ShowType())
			}
		}
		sb.WriteString(" in ")
		writeExpr(sb, e.Body)
	case *CtorApp:
		sb.WriteString(e.Name)
		for _, arg := range e.Args {
			sb.WriteString(" ")
			writeCallee(sb, arg)
		}
	case *AliasDecl:
		sb.WriteString("alias " + e.Name + " = " + e.Target.ShowType() + " in ")
		writeExpr(sb, e.Body)
	case *Tuple:
		sb.WriteString("(")
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, item)
		}
		sb.WriteString(")")
	case *ArrayLit:
		sb.WriteString("[|")
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, item)
		}
		sb.WriteString("|]")
	case *When:
		sb.WriteString("when ")
		writeExpr(sb, e.Value)
		for _, c := range e.Cases {
			sb.WriteString(" | " + c.Pattern)
			for _, b := range c.Binds {
				sb.WriteString(" " + b)
			}
			sb.WriteString(" -> ")
			writeExpr(sb, c.Value)
		}
	default:
		sb.WriteString("<" + expr.ExprName() + ">")
	}
}

// writeCallee parenthesizes anything that is not atomic when it appears
// in application position.
func writeCallee(sb *strings.Builder, expr Expr) {
	switch expr.(type) {
	case *Literal, *Var, *RecordLit, *Tuple, *ArrayLit, *Select:
		writeExpr(sb, expr)
	default:
		sb.WriteString("(")
		writeExpr(sb, expr)
		sb.WriteString(")")
	}
}
