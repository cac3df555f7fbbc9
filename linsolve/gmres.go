package linsolve

import (
	"context"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// gmres solves Ax=b with restarted GMRES(k): Arnoldi iteration with
// modified Gram-Schmidt orthogonalisation, reduced to upper-triangular
// form with Givens rotations so the least-squares problem at each restart
// is solved by simple back-substitution.
//
// Grounded on original_source/matrices/src/solvers.rs's GMRES
// implementation (Saad's formulation).
func gmres(ctx context.Context, A *mat.CDense, b []complex128, opts Options) (Result, error) {
	n := len(b)
	x := make([]complex128, n)
	bNorm := vecNorm(b)
	if bNorm == 0 {
		return Result{X: x, Strategy: GMRES}, nil
	}

	totalIter := 0
	for restart := 0; restart*opts.Restart < opts.MaxIterations; restart++ {
		select {
		case <-ctx.Done():
			return Result{}, bemerr.Wrap(bemerr.OutOfBudget, "gmres cancelled", ctx.Err())
		default:
		}

		r := vecSub(b, matVec(A, x))
		beta := vecNorm(r)
		if beta/bNorm < opts.Tolerance {
			return Result{X: x, Strategy: GMRES, Iterations: totalIter, Residual: beta / bNorm}, nil
		}

		m := opts.Restart
		if totalIter+m > opts.MaxIterations {
			m = opts.MaxIterations - totalIter
		}
		if m <= 0 {
			break
		}

		v := make([][]complex128, m+1)
		v[0] = vecScale(complex(1/beta, 0), r)
		h := make([][]complex128, m+1)
		for i := range h {
			h[i] = make([]complex128, m)
		}
		cs := make([]complex128, m)
		sn := make([]complex128, m)
		g := make([]complex128, m+1)
		g[0] = complex(beta, 0)

		var j int
		for j = 0; j < m; j++ {
			w := matVec(A, v[j])
			for i := 0; i <= j; i++ {
				h[i][j] = vecDot(v[i], w)
				w = vecAXPY(-h[i][j], v[i], w)
			}
			hNorm := vecNorm(w)
			h[j+1][j] = complex(hNorm, 0)

			for i := 0; i < j; i++ {
				temp := cs[i]*h[i][j] + sn[i]*h[i+1][j]
				h[i+1][j] = -cmplx.Conj(sn[i])*h[i][j] + cmplx.Conj(cs[i])*h[i+1][j]
				h[i][j] = temp
			}
			r1, r2 := h[j][j], h[j+1][j]
			rho := cmplx.Sqrt(r1*cmplx.Conj(r1) + r2*cmplx.Conj(r2))
			if cmplx.Abs(rho) < pivotEps {
				break
			}
			cs[j] = r1 / rho
			sn[j] = r2 / rho
			h[j][j] = cs[j]*r1 + sn[j]*r2
			h[j+1][j] = 0

			g[j+1] = -cmplx.Conj(sn[j]) * g[j]
			g[j] = cmplx.Conj(cs[j]) * g[j]

			totalIter++
			if cmplx.Abs(g[j+1])/bNorm < opts.Tolerance {
				j++
				break
			}
			if hNorm < breakdownEps {
				j++
				break
			}
			v[j+1] = vecScale(complex(1/hNorm, 0), w)
		}

		// Solve the upper-triangular least-squares system H y = g for the
		// y[0:j] actually computed this restart.
		y := make([]complex128, j)
		for i := j - 1; i >= 0; i-- {
			sum := g[i]
			for k := i + 1; k < j; k++ {
				sum -= h[i][k] * y[k]
			}
			y[i] = sum / h[i][i]
		}
		for i := 0; i < j; i++ {
			x = vecAXPY(y[i], v[i], x)
		}

		finalRes := cmplx.Abs(g[j]) / bNorm
		if finalRes < opts.Tolerance {
			return Result{X: x, Strategy: GMRES, Iterations: totalIter, Residual: finalRes}, nil
		}
	}

	finalRes := vecNorm(vecSub(b, matVec(A, x))) / bNorm
	if finalRes > opts.Tolerance {
		return Result{}, bemerr.New(bemerr.NoConvergence, "gmres did not converge within max_iterations").
			WithSolver(string(GMRES), totalIter)
	}
	return Result{X: x, Strategy: GMRES, Iterations: totalIter, Residual: finalRes}, nil
}
