package infer

import (
	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/types"
)

// ConstructorInfo is the registry entry for one sum-type constructor:
// its owning type, the internal variables standing for the type's
// declared parameters, and the payload templates written over them.
// Read-only once registered.
type ConstructorInfo struct {
	Name     string
	TypeName string
	Params   []types.VarID
	Payload  []types.Type
}

// declareSumType processes `type Name p1 .. pn = C1 .. | C2 ..` and
// returns the environment in which the declaration's body is inferred.
//
// The type name and arity are registered before any payload template is
// resolved, so a payload may reference the type being declared
// (List a = Nil | Cons a (List a)) without the representation needing a
// cycle.
func (e Env) declareSumType(decl *ast.TypeDecl) (Env, ilerr.TypeError) {
	env := e.withGeneric(decl.Name, len(decl.Params))

	paramIDs := make([]types.VarID, len(decl.Params))
	paramScope := make(map[string]types.VarID, len(decl.Params))
	for i, param := range decl.Params {
		v := env.fresher.FreshVar()
		paramIDs[i] = v.ID
		paramScope[param] = v.ID
	}

	for _, ctor := range decl.Ctors {
		payload := make([]types.Type, len(ctor.Payload))
		for i, texpr := range ctor.Payload {
			resolved, err := env.resolveTypeExpr(paramScope, texpr)
			if err != nil {
				return e, err
			}
			payload[i] = resolved
		}
		env = env.RegisterConstructor(ConstructorInfo{
			Name:     ctor.Name,
			TypeName: decl.Name,
			Params:   paramIDs,
			Payload:  payload,
		})
	}
	return env, nil
}

// resolveTypeExpr turns surface type syntax into a Type. paramScope maps
// the declared type parameters in scope (nil outside a declaration).
// Aliases resolve as if textually substituted.
func (e Env) resolveTypeExpr(paramScope map[string]types.VarID, texpr ast.TypeExpr) (types.Type, ilerr.TypeError) {
	switch texpr := texpr.(type) {
	case *ast.ArrowType:
		arg, err := e.resolveTypeExpr(paramScope, texpr.Arg)
		if err != nil {
			return nil, err
		}
		ret, err := e.resolveTypeExpr(paramScope, texpr.Return)
		if err != nil {
			return nil, err
		}
		return &types.Arrow{Arg: arg, Return: ret}, nil

	case *ast.TypeRef:
		if len(texpr.Args) == 0 {
			if id, ok := paramScope[texpr.Name]; ok {
				return &types.Var{ID: id}, nil
			}
			if base, ok := baseTypes[texpr.Name]; ok {
				return base, nil
			}
			if aliased, ok := e.LookupAlias(texpr.Name); ok {
				return aliased, nil
			}
			if arity, ok := e.genericArity(texpr.Name); ok {
				if arity != 0 {
					return nil, ilerr.New(ilerr.NewTypeArityMismatch{
						Positioner: ast.RangeOf(texpr),
						Name:       texpr.Name,
						Expected:   arity,
						Actual:     0,
					})
				}
				return &types.Generic{Name: texpr.Name}, nil
			}
			return nil, ilerr.New(ilerr.NewUnknownTypeName{
				Positioner: ast.RangeOf(texpr),
				Name:       texpr.Name,
			})
		}

		arity, ok := e.genericArity(texpr.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUnknownTypeName{
				Positioner: ast.RangeOf(texpr),
				Name:       texpr.Name,
			})
		}
		if arity != len(texpr.Args) {
			return nil, ilerr.New(ilerr.NewTypeArityMismatch{
				Positioner: ast.RangeOf(texpr),
				Name:       texpr.Name,
				Expected:   arity,
				Actual:     len(texpr.Args),
			})
		}
		args := make([]types.Type, len(texpr.Args))
		for i, argExpr := range texpr.Args {
			arg, err := e.resolveTypeExpr(paramScope, argExpr)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &types.Generic{Name: texpr.Name, Args: args}, nil

	default:
		return nil, ilerr.New(ilerr.NewUnknownTypeName{
			Positioner: ast.RangeOf(texpr),
			Name:       texpr.ShowType(),
		})
	}
}
