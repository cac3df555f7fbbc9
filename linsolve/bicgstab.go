package linsolve

import (
	"context"
	"fmt"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// breakdownEps is the threshold below which rho or omega collapsing in
// BiCGSTAB is treated as a breakdown rather than a slow-converging value.
const breakdownEps = 1e-14

// bicgstab solves Ax=b by the (non-restarted) BiCGSTAB method, applicable
// to general non-Hermitian A, following Saad's formulation.
//
// Grounded on original_source/matrices/src/solvers.rs's BiCGSTAB
// implementation, including its rho/omega breakdown checks.
func bicgstab(ctx context.Context, A *mat.CDense, b []complex128, opts Options) (Result, error) {
	n := len(b)
	x := make([]complex128, n)
	bNorm := vecNorm(b)
	if bNorm == 0 {
		return Result{X: x, Strategy: BiCGSTAB}, nil
	}

	r := vecSub(b, matVec(A, x))
	rHat := append([]complex128(nil), r...)
	rho, alpha, omega := complex(1, 0), complex(1, 0), complex(1, 0)
	v := make([]complex128, n)
	p := make([]complex128, n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return Result{}, bemerr.Wrap(bemerr.OutOfBudget, "bicgstab cancelled", ctx.Err())
		default:
		}

		rhoNew := vecDot(rHat, r)
		if cmplx.Abs(rhoNew) < breakdownEps {
			return Result{}, bemerr.New(bemerr.NumericalBreakdown,
				fmt.Sprintf("bicgstab rho collapsed to %.3e at iteration %d", cmplx.Abs(rhoNew), iter)).
				WithSolver(string(BiCGSTAB), iter)
		}
		beta := (rhoNew / rho) * (alpha / omega)
		p = vecAXPY(beta, vecSub(p, vecScale(omega, v)), r)
		rho = rhoNew

		v = matVec(A, p)
		denom := vecDot(rHat, v)
		if cmplx.Abs(denom) < breakdownEps {
			return Result{}, bemerr.New(bemerr.NumericalBreakdown,
				"bicgstab alpha denominator collapsed").WithSolver(string(BiCGSTAB), iter)
		}
		alpha = rho / denom

		s := vecAXPY(-alpha, v, r)
		if vecNorm(s)/bNorm < opts.Tolerance {
			x = vecAXPY(alpha, p, x)
			return Result{X: x, Strategy: BiCGSTAB, Iterations: iter + 1, Residual: vecNorm(s) / bNorm}, nil
		}

		t := matVec(A, s)
		tDot := vecDot(t, t)
		if cmplx.Abs(tDot) < breakdownEps {
			return Result{}, bemerr.New(bemerr.NumericalBreakdown,
				fmt.Sprintf("bicgstab omega collapsed at iteration %d", iter)).
				WithSolver(string(BiCGSTAB), iter)
		}
		omega = vecDot(t, s) / tDot

		x = vecAXPY(alpha, p, vecAXPY(omega, s, x))
		r = vecAXPY(-omega, t, s)

		resNorm := vecNorm(r)
		if resNorm/bNorm < opts.Tolerance {
			return Result{X: x, Strategy: BiCGSTAB, Iterations: iter + 1, Residual: resNorm / bNorm}, nil
		}
		if cmplx.Abs(omega) < breakdownEps {
			return Result{}, bemerr.New(bemerr.NumericalBreakdown,
				fmt.Sprintf("bicgstab omega collapsed to %.3e at iteration %d", cmplx.Abs(omega), iter)).
				WithSolver(string(BiCGSTAB), iter)
		}
	}

	resNorm := vecNorm(vecSub(b, matVec(A, x))) / bNorm
	return Result{}, bemerr.New(bemerr.NoConvergence,
		fmt.Sprintf("bicgstab did not converge within max_iterations (residual=%.3e)", resNorm)).
		WithSolver(string(BiCGSTAB), opts.MaxIterations)
}
