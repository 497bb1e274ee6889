package ilerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/types"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	UnboundVariable
	UnificationFailure
	OccursCheckFailure
	ConstructorArityMismatch
	UnknownConstructor
	RecursiveBinding
	UnknownTypeName
	TypeArityMismatch
)

// TypeError is the single failure a typecheck call terminates with.
// Exactly one TypeError aborts the whole call; there is no partial or
// best-effort typing.
type TypeError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) TypeError
	getStack() []byte
}

func FormatWithCode(e TypeError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E TypeError](err E) TypeError {
	return err.withStack(debug.Stack())
}

// Unclassified wraps a failure that is not part of the error taxonomy,
// such as a recovered panic. Seeing one is an engine bug.
type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnboundVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnboundVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUnboundVariable) Code() ErrCode    { return UnboundVariable }
func (e NewUnboundVariable) getStack() []byte { return e.stack }
func (e NewUnboundVariable) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnificationFailure struct {
	ast.Positioner
	First  types.Type
	Second types.Type
	stack  []byte
}

func (e NewUnificationFailure) Error() string {
	return fmt.Sprintf("type mismatch: expected type '%v', but found a different type '%v'",
		types.TypeString(e.First), types.TypeString(e.Second))
}
func (e NewUnificationFailure) Code() ErrCode    { return UnificationFailure }
func (e NewUnificationFailure) getStack() []byte { return e.stack }
func (e NewUnificationFailure) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewOccursCheckFailure struct {
	ast.Positioner
	Variable types.Type
	In       types.Type
	stack    []byte
}

func (e NewOccursCheckFailure) Error() string {
	return fmt.Sprintf("cannot construct the infinite type: '%v' occurs in '%v'",
		types.TypeString(e.Variable), types.TypeString(e.In))
}
func (e NewOccursCheckFailure) Code() ErrCode    { return OccursCheckFailure }
func (e NewOccursCheckFailure) getStack() []byte { return e.stack }
func (e NewOccursCheckFailure) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewConstructorArityMismatch struct {
	ast.Positioner
	Constructor string
	Expected    int
	Actual      int
	stack       []byte
}

func (e NewConstructorArityMismatch) Error() string {
	return fmt.Sprintf("constructor '%s' expects %d argument(s), but got %d",
		e.Constructor, e.Expected, e.Actual)
}
func (e NewConstructorArityMismatch) Code() ErrCode    { return ConstructorArityMismatch }
func (e NewConstructorArityMismatch) getStack() []byte { return e.stack }
func (e NewConstructorArityMismatch) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnknownConstructor struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnknownConstructor) Error() string {
	return fmt.Sprintf("constructor '%s' is not declared in scope", e.Name)
}
func (e NewUnknownConstructor) Code() ErrCode    { return UnknownConstructor }
func (e NewUnknownConstructor) getStack() []byte { return e.stack }
func (e NewUnknownConstructor) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewRecursiveBinding struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewRecursiveBinding) Error() string {
	return fmt.Sprintf("cannot infer the type of the recursive binding '%s': recursive functions require a type annotation", e.Name)
}
func (e NewRecursiveBinding) Code() ErrCode    { return RecursiveBinding }
func (e NewRecursiveBinding) getStack() []byte { return e.stack }
func (e NewRecursiveBinding) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnknownTypeName struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnknownTypeName) Error() string {
	return fmt.Sprintf("type name '%s' is not declared in scope", e.Name)
}
func (e NewUnknownTypeName) Code() ErrCode    { return UnknownTypeName }
func (e NewUnknownTypeName) getStack() []byte { return e.stack }
func (e NewUnknownTypeName) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewTypeArityMismatch struct {
	ast.Positioner
	Name     string
	Expected int
	Actual   int
	stack    []byte
}

func (e NewTypeArityMismatch) Error() string {
	return fmt.Sprintf("type '%s' expects %d type argument(s), but got %d",
		e.Name, e.Expected, e.Actual)
}
func (e NewTypeArityMismatch) Code() ErrCode    { return TypeArityMismatch }
func (e NewTypeArityMismatch) getStack() []byte { return e.stack }
func (e NewTypeArityMismatch) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}
