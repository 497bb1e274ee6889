package infer

import (
	"go/token"

	"github.com/pkg/errors"

	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/types"
	"github.com/vansweej/parlang/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer")

// Infer assigns a most-general type to expr, Algorithm W style: it
// returns the type of the expression together with the substitution
// accumulated while typing it. The returned type already has that
// substitution applied.
//
// The first failure aborts the whole walk; there is no recovery.
func (e Env) Infer(expr ast.Expr) (types.Type, types.Subst, ilerr.TypeError) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return literalType(expr), types.Subst{}, nil

	case *ast.Var:
		t, ok := e.Lookup(expr.Name)
		if !ok {
			return nil, types.Subst{}, ilerr.New(ilerr.NewUnboundVariable{
				Positioner: ast.RangeOf(expr),
				Name:       expr.Name,
			})
		}
		return t, types.Subst{}, nil

	case *ast.BinaryExpr:
		return e.inferBinary(expr)

	case *ast.If:
		return e.inferIf(expr)

	case *ast.Let:
		return e.inferLet(expr)

	case *ast.Rec:
		return nil, types.Subst{}, ilerr.New(ilerr.NewRecursiveBinding{
			Positioner: ast.RangeOf(expr),
			Name:       expr.Name,
		})

	case *ast.Func:
		param := e.fresher.FreshVar()
		bodyType, sub, err := e.Extend(expr.Param, types.MonoScheme(param)).Infer(expr.Body)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return &types.Arrow{Arg: sub.Apply(param), Return: bodyType}, sub, nil

	case *ast.Call:
		return e.inferCall(expr)

	case *ast.RecordLit:
		return e.inferRecord(expr)

	case *ast.Select:
		return e.inferSelect(expr)

	case *ast.TypeDecl:
		env, err := e.declareSumType(expr)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return env.Infer(expr.Body)

	case *ast.CtorApp:
		return e.inferCtorApp(expr)

	case *ast.AliasDecl:
		target, err := e.resolveTypeExpr(nil, expr.Target)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return e.WithAlias(expr.Name, target).Infer(expr.Body)

	case *ast.Tuple:
		sub, err := e.inferChildren(expr.Items)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return e.fresher.FreshVar(), sub, nil

	case *ast.ArrayLit:
		sub, err := e.inferChildren(expr.Items)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return e.fresher.FreshVar(), sub, nil

	case *ast.When:
		// match arms may bind pattern names this engine cannot type, so
		// only the scrutinee is inspected and the result stays free
		_, sub, err := e.Infer(expr.Value)
		if err != nil {
			return nil, types.Subst{}, err
		}
		return e.fresher.FreshVar(), sub, nil

	default:
		panic(errors.Errorf("inference over unknown expression %T", expr))
	}
}

func literalType(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		return types.IntType
	case ast.BoolLit:
		return types.BoolType
	case ast.CharLit:
		return types.CharType
	case ast.FloatLit:
		return types.FloatType
	case ast.ByteLit:
		return types.ByteType
	case ast.UnitLit:
		return types.UnitType
	default:
		panic(errors.Errorf("literal of unknown kind %v", lit.Kind))
	}
}

func (e Env) inferBinary(expr *ast.BinaryExpr) (types.Type, types.Subst, ilerr.TypeError) {
	leftType, s1, err := e.Infer(expr.Left)
	if err != nil {
		return nil, types.Subst{}, err
	}
	rightType, s2, err := e.Apply(s1).Infer(expr.Right)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub := types.Compose(s2, s1)

	// required type first, so a failure reports it as the expected one
	unifyOperand := func(want, got types.Type) ilerr.TypeError {
		s, err := e.Unify(expr, sub.Apply(want), sub.Apply(got))
		if err != nil {
			return err
		}
		sub = types.Compose(s, sub)
		return nil
	}

	switch expr.Operator {
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
		if err := unifyOperand(types.IntType, leftType); err != nil {
			return nil, types.Subst{}, err
		}
		if err := unifyOperand(types.IntType, rightType); err != nil {
			return nil, types.Subst{}, err
		}
		return types.IntType, sub, nil

	case token.LSS, token.GTR, token.LEQ, token.GEQ:
		if err := unifyOperand(types.IntType, leftType); err != nil {
			return nil, types.Subst{}, err
		}
		if err := unifyOperand(types.IntType, rightType); err != nil {
			return nil, types.Subst{}, err
		}
		return types.BoolType, sub, nil

	case token.EQL, token.NEQ:
		if err := unifyOperand(leftType, rightType); err != nil {
			return nil, types.Subst{}, err
		}
		return types.BoolType, sub, nil

	default:
		panic(errors.Errorf("inference over unknown operator %s", expr.Operator))
	}
}

func (e Env) inferIf(expr *ast.If) (types.Type, types.Subst, ilerr.TypeError) {
	condType, s1, err := e.Infer(expr.Cond)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sCond, err := e.Unify(expr.Cond, types.BoolType, condType)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub := types.Compose(sCond, s1)

	thenType, sThen, err := e.Apply(sub).Infer(expr.Then)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub = types.Compose(sThen, sub)
	elseType, sElse, err := e.Apply(sub).Infer(expr.Else)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub = types.Compose(sElse, sub)

	sBranch, err := e.Unify(expr, sub.Apply(thenType), sub.Apply(elseType))
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub = types.Compose(sBranch, sub)
	return sub.Apply(thenType), sub, nil
}

func (e Env) inferLet(expr *ast.Let) (types.Type, types.Subst, ilerr.TypeError) {
	valueType, s1, err := e.Infer(expr.Value)
	if err != nil {
		return nil, types.Subst{}, err
	}
	env := e.Apply(s1)
	scheme := env.Generalize(valueType)
	logger.Debug("generalized let binding", "name", expr.Name, "scheme", scheme)

	bodyType, s2, err := env.Extend(expr.Name, scheme).Infer(expr.Body)
	if err != nil {
		return nil, types.Subst{}, err
	}
	return bodyType, types.Compose(s2, s1), nil
}

func (e Env) inferCall(expr *ast.Call) (types.Type, types.Subst, ilerr.TypeError) {
	fnType, s1, err := e.Infer(expr.Fn)
	if err != nil {
		return nil, types.Subst{}, err
	}
	argType, s2, err := e.Apply(s1).Infer(expr.Arg)
	if err != nil {
		return nil, types.Subst{}, err
	}
	result := e.fresher.FreshVar()
	sub := types.Compose(s2, s1)
	sApp, err := e.Unify(expr, &types.Arrow{Arg: argType, Return: result}, sub.Apply(fnType))
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub = types.Compose(sApp, sub)
	return sub.Apply(result), sub, nil
}

func (e Env) inferRecord(expr *ast.RecordLit) (types.Type, types.Subst, ilerr.TypeError) {
	sub := types.Subst{}
	fields := make(map[string]types.Type, len(expr.Fields))
	for _, field := range expr.Fields {
		fieldType, s, err := e.Apply(sub).Infer(field.Value)
		if err != nil {
			return nil, types.Subst{}, err
		}
		sub = types.Compose(s, sub)
		fields[field.Name] = fieldType
	}
	for name, fieldType := range fields {
		fields[name] = sub.Apply(fieldType)
	}
	return &types.Record{Fields: types.NewFieldMap(fields)}, sub, nil
}

// inferSelect is the row-polymorphism entry point: the receiver is
// unified against a record with at least the selected field.
func (e Env) inferSelect(expr *ast.Select) (types.Type, types.Subst, ilerr.TypeError) {
	receiverType, s1, err := e.Infer(expr.Receiver)
	if err != nil {
		return nil, types.Subst{}, err
	}
	fieldVar := e.fresher.FreshVar()
	restRow := e.fresher.FreshRow()
	want := &types.RecordRow{
		Fields: types.NewFieldMap(map[string]types.Type{expr.Field: fieldVar}),
		Rest:   restRow.ID,
	}
	s2, err := e.Unify(expr, want, receiverType)
	if err != nil {
		return nil, types.Subst{}, err
	}
	sub := types.Compose(s2, s1)
	return sub.Apply(fieldVar), sub, nil
}

func (e Env) inferCtorApp(expr *ast.CtorApp) (types.Type, types.Subst, ilerr.TypeError) {
	info, ok := e.LookupConstructor(expr.Name)
	if !ok {
		return nil, types.Subst{}, ilerr.New(ilerr.NewUnknownConstructor{
			Positioner: ast.RangeOf(expr),
			Name:       expr.Name,
		})
	}
	// arity is checked before any unification happens
	if len(expr.Args) != len(info.Payload) {
		return nil, types.Subst{}, ilerr.New(ilerr.NewConstructorArityMismatch{
			Positioner:  ast.RangeOf(expr),
			Constructor: expr.Name,
			Expected:    len(info.Payload),
			Actual:      len(expr.Args),
		})
	}

	// one fresh variable per declared type parameter
	freshArgs := make([]types.Type, len(info.Params))
	instantiation := types.Subst{}
	for i, paramID := range info.Params {
		fresh := e.fresher.FreshVar()
		freshArgs[i] = fresh
		instantiation = types.Compose(types.SubstVar(paramID, fresh), instantiation)
	}

	sub := types.Subst{}
	for i, arg := range expr.Args {
		expected := sub.Apply(instantiation.Apply(info.Payload[i]))
		argType, sArg, err := e.Apply(sub).Infer(arg)
		if err != nil {
			return nil, types.Subst{}, err
		}
		sub = types.Compose(sArg, sub)
		sUnify, err := e.Unify(arg, sub.Apply(expected), sub.Apply(argType))
		if err != nil {
			return nil, types.Subst{}, err
		}
		sub = types.Compose(sUnify, sub)
	}

	for i, fresh := range freshArgs {
		freshArgs[i] = sub.Apply(fresh)
	}
	return &types.Generic{Name: info.TypeName, Args: freshArgs}, sub, nil
}

// inferChildren types each child for error propagation, composing their
// substitutions, without constraining the parent node.
func (e Env) inferChildren(children []ast.Expr) (types.Subst, ilerr.TypeError) {
	sub := types.Subst{}
	for _, child := range children {
		_, s, err := e.Apply(sub).Infer(child)
		if err != nil {
			return types.Subst{}, err
		}
		sub = types.Compose(s, sub)
	}
	return sub, nil
}
