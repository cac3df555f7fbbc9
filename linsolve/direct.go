package linsolve

import (
	"fmt"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// pivotEps is the threshold below which a pivot is treated as a numerical
// breakdown rather than a small-but-usable value.
const pivotEps = 1e-300

// luSolve solves Ax=b by dense complex LU factorisation with partial
// pivoting, grounded on original_source/matrices/src/solvers.rs's LU
// solver. gonum's mat.LU only factorises real matrices, so Factorize (see
// factorization.go) operates directly on a row-major copy of A's complex
// entries; luSolve is the one-shot convenience wrapper around it, used
// when a caller has only a single right-hand side and no need for the
// problem package's per-omega factor cache.
func luSolve(A *mat.CDense, b []complex128) ([]complex128, error) {
	factorization, err := Factorize(A)
	if err != nil {
		return nil, err
	}
	return factorization.Solve(b)
}

// choleskySolve solves Ax=b for Hermitian positive-definite A via complex
// Cholesky factorisation A=LL^H, grounded on the same Rust solvers.rs
// reference. A negative or zero pivot on the diagonal means A is not
// positive-definite, reported as NumericalBreakdown so the caller can
// retry with GMRES per spec.md's auto-retry policy.
func choleskySolve(A *mat.CDense, b []complex128) ([]complex128, error) {
	n, _ := A.Dims()
	if !isHermitian(A, n) {
		return nil, bemerr.New(bemerr.NotApplicable, "cholesky requires a Hermitian matrix")
	}
	a := toRows(A, n)
	l := make([][]complex128, n)
	for i := range l {
		l[i] = make([]complex128, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * cmplx.Conj(l[j][k])
			}
			if i == j {
				d := real(sum)
				if d <= pivotEps {
					return nil, bemerr.New(bemerr.NumericalBreakdown,
						fmt.Sprintf("cholesky pivot at row %d is non-positive (%.3e)", i, d)).
						WithSolver(string(Cholesky), i)
				}
				l[i][j] = complex(cmplxSqrtReal(d), 0)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}

	// Solve Ly=b, then L^H x=y.
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l[i][k] * y[k]
		}
		y[i] = sum / l[i][i]
	}
	x := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= cmplx.Conj(l[k][i]) * x[k]
		}
		x[i] = sum / l[i][i]
	}
	return x, nil
}

func toRows(A *mat.CDense, n int) [][]complex128 {
	rows := make([][]complex128, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			rows[i][j] = A.At(i, j)
		}
	}
	return rows
}

func isHermitian(A *mat.CDense, n int) bool {
	const tol = 1e-9
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cmplx.Abs(A.At(i, j)-cmplx.Conj(A.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

func cmplxSqrtReal(x float64) float64 {
	return real(cmplx.Sqrt(complex(x, 0)))
}
