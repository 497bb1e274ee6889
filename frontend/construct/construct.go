// Package construct is a builder DSL for expression trees, so tests and
// embedders can assemble programs without a surface parser.
package construct

import (
	"go/token"
	"strconv"

	"github.com/vansweej/parlang/frontend/ast"
)

// Literals

// Integer literal: `1`
func Int(v int) *ast.Literal {
	return &ast.Literal{Value: strconv.Itoa(v), Kind: ast.IntLit}
}

// Boolean literal: `true`
func Bool(v bool) *ast.Literal {
	return &ast.Literal{Value: strconv.FormatBool(v), Kind: ast.BoolLit}
}

// Character literal: `'c'`
func Char(v rune) *ast.Literal {
	return &ast.Literal{Value: string(v), Kind: ast.CharLit}
}

// Float literal: `1.5`
func Float(v string) *ast.Literal {
	return &ast.Literal{Value: v, Kind: ast.FloatLit}
}

// Byte literal: `0xff`
func Byte(v byte) *ast.Literal {
	return &ast.Literal{Value: strconv.Itoa(int(v)), Kind: ast.ByteLit}
}

// Unit literal: `()`
func Unit() *ast.Literal {
	return &ast.Literal{Kind: ast.UnitLit}
}

// Expressions

// Variable reference
func Var(name string) *ast.Var {
	return &ast.Var{Name: name}
}

// Binary operation: `a + b`
func Binary(left ast.Expr, op token.Token, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Left: left, Operator: op, Right: right}
}

// Conditional: `if c then a else b`
func If(cond, then, els ast.Expr) *ast.If {
	return &ast.If{Cond: cond, Then: then, Else: els}
}

// Let-binding: `let x = v in body`
func Let(name string, value, body ast.Expr) *ast.Let {
	return &ast.Let{Name: name, Value: value, Body: body}
}

// Self-referential binding: `rec f = v in body`
func Rec(name string, value, body ast.Expr) *ast.Rec {
	return &ast.Rec{Name: name, Value: value, Body: body}
}

// Abstraction: `fun x -> body`
func Func(param string, body ast.Expr) *ast.Func {
	return &ast.Func{Param: param, Body: body}
}

// Abstraction over two parameters, curried: `fun x -> fun y -> body`
func Func2(param1, param2 string, body ast.Expr) *ast.Func {
	return Func(param1, Func(param2, body))
}

// Application: `f x y`, curried left-to-right
func Call(fn ast.Expr, args ...ast.Expr) ast.Expr {
	expr := fn
	for _, arg := range args {
		expr = &ast.Call{Fn: expr, Arg: arg}
	}
	return expr
}

// Record construction: `{a = 1, b = true}`
func Record(fields ...ast.Field) *ast.RecordLit {
	return &ast.RecordLit{Fields: fields}
}

// Paired field name and value
func Field(name string, value ast.Expr) ast.Field {
	return ast.Field{Name: name, Value: value}
}

// Field access: `r.age`
func Select(receiver ast.Expr, field string) *ast.Select {
	return &ast.Select{Receiver: receiver, Field: field}
}

// Sum-type declaration scoped over body:
// `type Option a = Some a | None in body`
func TypeSum(name string, params []string, ctors []ast.CtorDecl, body ast.Expr) *ast.TypeDecl {
	return &ast.TypeDecl{Name: name, Params: params, Ctors: ctors, Body: body}
}

// One constructor of a TypeSum
func Ctor(name string, payload ...ast.TypeExpr) ast.CtorDecl {
	return ast.CtorDecl{Name: name, Payload: payload}
}

// Constructor application: `Some 1`
func CtorApp(name string, args ...ast.Expr) *ast.CtorApp {
	return &ast.CtorApp{Name: name, Args: args}
}

// Type alias scoped over body: `alias Age = Int in body`
func Alias(name string, target ast.TypeExpr, body ast.Expr) *ast.AliasDecl {
	return &ast.AliasDecl{Name: name, Target: target, Body: body}
}

// Tuple literal: `(a, b)`
func Tuple(items ...ast.Expr) *ast.Tuple {
	return &ast.Tuple{Items: items}
}

// Array literal: `[| a, b |]`
func Array(items ...ast.Expr) *ast.ArrayLit {
	return &ast.ArrayLit{Items: items}
}

// Pattern match: `when v | Some x -> a | None -> b`
func When(value ast.Expr, cases ...ast.WhenCase) *ast.When {
	return &ast.When{Value: value, Cases: cases}
}

// One arm of a When
func Case(pattern string, binds []string, value ast.Expr) ast.WhenCase {
	return ast.WhenCase{Pattern: pattern, Binds: binds, Value: value}
}

// Type syntax

// Type reference: `Int`, `a`, `List a`
func TRef(name string, args ...ast.TypeExpr) *ast.TypeRef {
	return &ast.TypeRef{Name: name, Args: args}
}

// Function type syntax: `a -> b`
func TArrow(arg, ret ast.TypeExpr) *ast.ArrowType {
	return &ast.ArrowType{Arg: arg, Return: ret}
}
