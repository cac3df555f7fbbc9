package linsolve

import (
	"context"
	"fmt"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// cg solves Ax=b by the conjugate gradient method, applicable only to
// Hermitian positive-definite A; non-Hermitian input is rejected rather
// than silently iterating to a wrong answer, per spec.md's NotApplicable
// policy.
//
// Grounded on original_source/matrices/src/solvers.rs's CG implementation.
func cg(ctx context.Context, A *mat.CDense, b []complex128, opts Options) (Result, error) {
	n, _ := A.Dims()
	if !isHermitian(A, n) {
		return Result{}, bemerr.New(bemerr.NotApplicable, "cg requires a Hermitian matrix")
	}

	x := make([]complex128, n)
	r := append([]complex128(nil), b...)
	p := append([]complex128(nil), r...)
	bNorm := vecNorm(b)
	if bNorm == 0 {
		return Result{X: x, Strategy: CG}, nil
	}
	rsOld := vecDot(r, r)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return Result{}, bemerr.Wrap(bemerr.OutOfBudget, "cg cancelled", ctx.Err())
		default:
		}

		ap := matVec(A, p)
		denom := vecDot(p, ap)
		if cmplx.Abs(denom) < breakdownEps {
			return Result{}, bemerr.New(bemerr.NumericalBreakdown, "cg direction vector collapsed").
				WithSolver(string(CG), iter)
		}
		alpha := rsOld / denom
		x = vecAXPY(alpha, p, x)
		r = vecAXPY(-alpha, ap, r)

		resNorm := vecNorm(r)
		if resNorm/bNorm < opts.Tolerance {
			return Result{X: x, Strategy: CG, Iterations: iter + 1, Residual: resNorm / bNorm}, nil
		}

		rsNew := vecDot(r, r)
		beta := rsNew / rsOld
		p = vecAXPY(beta, p, r)
		rsOld = rsNew
	}

	resNorm := vecNorm(vecSub(b, matVec(A, x))) / bNorm
	return Result{}, bemerr.New(bemerr.NoConvergence,
		fmt.Sprintf("cg did not converge within max_iterations (residual=%.3e)", resNorm)).
		WithSolver(string(CG), opts.MaxIterations)
}
