package frontend

import (
	"github.com/pkg/errors"

	"github.com/vansweej/parlang/frontend/ast"
	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/infer"
	"github.com/vansweej/parlang/frontend/types"
	"github.com/vansweej/parlang/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer")

// Typecheck assigns a most-general type to expr, or rejects it with a
// single TypeError. The result is generalized against the empty
// environment, so `fun x -> x` comes back as `forall t0. t0 -> t0`.
//
// Every call owns its own environment and fresh-variable supply, so
// independent calls are safe to run concurrently.
func Typecheck(expr ast.Expr) (*types.Scheme, ilerr.TypeError) {
	return TypecheckIn(infer.NewEnv(), expr)
}

// TypecheckIn is Typecheck with caller-provided predeclared bindings.
// The environment must not be in use by another run.
func TypecheckIn(env infer.Env, expr ast.Expr) (scheme *types.Scheme, typeErr ilerr.TypeError) {
	defer func() {
		if r := recover(); r != nil {
			recovered, ok := r.(error)
			if !ok {
				recovered = errors.Errorf("%v", r)
			}
			scheme = nil
			typeErr = ilerr.New(ilerr.Unclassified{
				From:       errors.Wrap(recovered, "typecheck"),
				Positioner: ast.RangeOf(expr),
			})
		}
	}()

	logger.Debug("typechecking", "expr", ast.Slog(expr))
	t, sub, err := env.Infer(expr)
	if err != nil {
		return nil, err
	}
	scheme = env.Apply(sub).Generalize(sub.Apply(t))
	logger.Debug("typechecked", "expr", ast.Slog(expr), "type", scheme)
	return scheme, nil
}
