package frontend_test

import (
	"go/token"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vansweej/parlang/frontend"
	"github.com/vansweej/parlang/frontend/ast"
	. "github.com/vansweej/parlang/frontend/construct"
	"github.com/vansweej/parlang/frontend/ilerr"
)

// typechecks runs a full inference pass and compares the rendered
// result scheme.
func typechecks(t *testing.T, expr ast.Expr, expected string) {
	t.Helper()
	t.Run(ast.ExprString(expr), func(t *testing.T) {
		scheme, err := frontend.Typecheck(expr)
		if !assert.Nil(t, err, "unexpected error: %v", err) {
			return
		}
		assert.Equal(t, expected, scheme.String())
	})
}

// failsWith asserts inference rejects the expression with the given
// error code.
func failsWith(t *testing.T, expr ast.Expr, code ilerr.ErrCode) {
	t.Helper()
	t.Run(ast.ExprString(expr), func(t *testing.T) {
		scheme, err := frontend.Typecheck(expr)
		if !assert.NotNil(t, err, "expected an error, got %v", scheme) {
			return
		}
		assert.Equal(t, code, err.Code(), "got %s", ilerr.FormatWithCode(err))
	})
}

func TestLiterals(t *testing.T) {
	typechecks(t, Int(1), "Int")
	typechecks(t, Bool(true), "Bool")
	typechecks(t, Char('a'), "Char")
	typechecks(t, Float("1.5"), "Float")
	typechecks(t, Byte(0xFF), "Byte")
	typechecks(t, Unit(), "Unit")
}

func TestArithmetic(t *testing.T) {
	typechecks(t, Binary(Int(1), token.ADD, Int(2)), "Int")
	typechecks(t, Binary(Int(10), token.REM, Int(3)), "Int")
	typechecks(t, Binary(Binary(Int(1), token.MUL, Int(2)), token.SUB, Int(3)), "Int")
	failsWith(t, Binary(Int(1), token.ADD, Bool(true)), ilerr.UnificationFailure)
	failsWith(t, Binary(Char('a'), token.MUL, Char('b')), ilerr.UnificationFailure)
}

func TestMismatchReportsExpectedTypeFirst(t *testing.T) {
	_, err := frontend.Typecheck(Binary(Int(1), token.ADD, Bool(true)))
	if assert.NotNil(t, err) {
		assert.Equal(t,
			"type mismatch: expected type 'Int', but found a different type 'Bool'",
			err.Error())
	}

	// the condition's required type is Bool
	_, err = frontend.Typecheck(If(Int(1), Int(1), Int(2)))
	if assert.NotNil(t, err) {
		assert.Equal(t,
			"type mismatch: expected type 'Bool', but found a different type 'Int'",
			err.Error())
	}
}

func TestComparison(t *testing.T) {
	typechecks(t, Binary(Int(1), token.LSS, Int(2)), "Bool")
	typechecks(t, Binary(Int(1), token.GEQ, Int(2)), "Bool")
	failsWith(t, Binary(Bool(true), token.LSS, Bool(false)), ilerr.UnificationFailure)
}

func TestEquality(t *testing.T) {
	typechecks(t, Binary(Int(1), token.EQL, Int(2)), "Bool")
	typechecks(t, Binary(Char('a'), token.NEQ, Char('b')), "Bool")
	// equality still requires both sides to agree
	failsWith(t, Binary(Char('a'), token.EQL, Int(1)), ilerr.UnificationFailure)
}

func TestIf(t *testing.T) {
	typechecks(t, If(Bool(true), Int(1), Int(2)), "Int")
	typechecks(t, If(Binary(Int(1), token.LSS, Int(2)), Char('y'), Char('n')), "Char")
	failsWith(t, If(Bool(true), Int(1), Bool(false)), ilerr.UnificationFailure)
	failsWith(t, If(Int(1), Int(1), Int(2)), ilerr.UnificationFailure)
}

func TestFunctions(t *testing.T) {
	typechecks(t, Func("x", Binary(Var("x"), token.ADD, Int(1))), "Int -> Int")
	typechecks(t, Func("x", Var("x")), "forall t0. t0 -> t0")
	typechecks(t, Func2("f", "x", Call(Var("f"), Var("x"))),
		"forall t0, t1. (t0 -> t1) -> t0 -> t1")
	typechecks(t, Call(Func("x", Var("x")), Int(1)), "Int")
	failsWith(t, Call(Int(1), Int(2)), ilerr.UnificationFailure)
}

func TestLetPolymorphism(t *testing.T) {
	// a let-bound identity may be used at several types in one body
	typechecks(t,
		Let("id", Func("x", Var("x")),
			Let("n", Call(Var("id"), Int(1)),
				Call(Var("id"), Bool(true)))),
		"Bool")

	typechecks(t,
		Let("x", Func("y", Var("y")), Var("x")),
		"forall t0. t0 -> t0")

	// lambda-bound variables stay monomorphic
	failsWith(t,
		Call(Func("f",
			Let("a", Call(Var("f"), Int(1)),
				Call(Var("f"), Bool(true)))),
			Func("x", Var("x"))),
		ilerr.UnificationFailure)
}

func TestUnboundVariable(t *testing.T) {
	failsWith(t, Var("nope"), ilerr.UnboundVariable)
	failsWith(t, Let("x", Int(1), Var("y")), ilerr.UnboundVariable)
	// the let binding is not in scope of its own value
	failsWith(t, Let("x", Var("x"), Int(1)), ilerr.UnboundVariable)
}

func TestRecursionRequiresAnnotation(t *testing.T) {
	failsWith(t,
		Rec("loop", Func("x", Call(Var("loop"), Var("x"))), Call(Var("loop"), Int(1))),
		ilerr.RecursiveBinding)
}

func optionOver(body ast.Expr) ast.Expr {
	return TypeSum("Option", []string{"a"},
		[]ast.CtorDecl{Ctor("Some", TRef("a")), Ctor("None")},
		body)
}

func listOver(body ast.Expr) ast.Expr {
	return TypeSum("List", []string{"a"},
		[]ast.CtorDecl{Ctor("Nil"), Ctor("Cons", TRef("a"), TRef("List", TRef("a")))},
		body)
}

func TestSumTypes(t *testing.T) {
	typechecks(t, optionOver(CtorApp("Some", Int(1))), "Option Int")
	typechecks(t, optionOver(CtorApp("None")), "forall t0. Option t0")
	typechecks(t, optionOver(
		If(Bool(true), CtorApp("Some", Int(1)), CtorApp("None"))),
		"Option Int")

	failsWith(t, optionOver(CtorApp("Some", Int(1), Int(2))), ilerr.ConstructorArityMismatch)
	failsWith(t, optionOver(CtorApp("Some")), ilerr.ConstructorArityMismatch)
	failsWith(t, CtorApp("Some", Int(1)), ilerr.UnknownConstructor)
	failsWith(t, optionOver(
		If(Bool(true), CtorApp("Some", Int(1)), CtorApp("Some", Bool(true)))),
		ilerr.UnificationFailure)
}

func TestRecursiveSumTypes(t *testing.T) {
	typechecks(t, listOver(
		CtorApp("Cons", Int(1), CtorApp("Cons", Int(2), CtorApp("Nil")))),
		"List Int")
	typechecks(t, listOver(CtorApp("Nil")), "forall t0. List t0")

	// every element of a list must share one type
	failsWith(t, listOver(
		CtorApp("Cons", Int(1), CtorApp("Cons", Bool(true), CtorApp("Nil")))),
		ilerr.UnificationFailure)
}

func TestAliases(t *testing.T) {
	typechecks(t,
		Alias("Age", TRef("Int"),
			TypeSum("Person", nil,
				[]ast.CtorDecl{Ctor("MkPerson", TRef("Age"))},
				CtorApp("MkPerson", Int(30)))),
		"Person")

	failsWith(t,
		Alias("Age", TRef("Int"),
			TypeSum("Person", nil,
				[]ast.CtorDecl{Ctor("MkPerson", TRef("Age"))},
				CtorApp("MkPerson", Bool(true)))),
		ilerr.UnificationFailure)

	failsWith(t,
		TypeSum("Person", nil,
			[]ast.CtorDecl{Ctor("MkPerson", TRef("Bogus"))},
			Int(1)),
		ilerr.UnknownTypeName)
}

func TestTypeReferenceArity(t *testing.T) {
	// a declared generic must be applied to exactly its declared parameters
	failsWith(t,
		TypeSum("Pair", []string{"a", "b"},
			[]ast.CtorDecl{Ctor("MkPair", TRef("a"), TRef("Pair"))},
			Int(1)),
		ilerr.TypeArityMismatch)

	failsWith(t,
		TypeSum("Box", []string{"a"},
			[]ast.CtorDecl{Ctor("MkBox", TRef("Box", TRef("Int"), TRef("Int")))},
			Int(1)),
		ilerr.TypeArityMismatch)
}

func TestRecords(t *testing.T) {
	typechecks(t,
		Record(Field("age", Int(1)), Field("name", Char('a'))),
		"{age: Int, name: Char}")
	typechecks(t,
		Select(Record(Field("age", Int(30))), "age"),
		"Int")
	failsWith(t,
		Select(Record(Field("name", Char('a'))), "age"),
		ilerr.UnificationFailure)
}

func TestRowPolymorphicAccessors(t *testing.T) {
	getAge := Func("r", Select(Var("r"), "age"))

	typechecks(t, Let("getAge", getAge, Var("getAge")),
		"forall t0, r0. {age: t0 | r0} -> t0")

	// one accessor works across differently shaped records
	typechecks(t,
		Let("getAge", getAge,
			Binary(
				Call(Var("getAge"), Record(Field("age", Int(1)), Field("name", Char('a')))),
				token.ADD,
				Call(Var("getAge"), Record(Field("age", Int(2)))))),
		"Int")

	failsWith(t,
		Let("getAge", getAge,
			Call(Var("getAge"), Record(Field("name", Char('a'))))),
		ilerr.UnificationFailure)
}

func TestLooselyTypedConstructs(t *testing.T) {
	// tuples, arrays and pattern matches are typed but not yet
	// constrained, so they come back fully polymorphic
	typechecks(t, Tuple(Int(1), Bool(true)), "forall t0. t0")
	typechecks(t, Array(Int(1), Int(2)), "forall t0. t0")
	typechecks(t,
		When(Int(1), Case("Whatever", []string{"x"}, Var("x"))),
		"forall t0. t0")

	// their children are still checked
	failsWith(t, Tuple(Binary(Int(1), token.ADD, Bool(true))), ilerr.UnificationFailure)
	failsWith(t, Array(Var("nope")), ilerr.UnboundVariable)
}

func TestConcurrentTypechecks(t *testing.T) {
	expr := func() ast.Expr {
		return Let("id", Func("x", Var("x")),
			Call(Var("id"), Binary(Int(1), token.ADD, Int(2))))
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheme, err := frontend.Typecheck(expr())
			assert.Nil(t, err)
			assert.Equal(t, "Int", scheme.String())
		}()
	}
	wg.Wait()
}
