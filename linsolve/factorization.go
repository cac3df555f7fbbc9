package linsolve

import (
	"fmt"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// Factorization is a reusable complex LU decomposition (with partial
// pivoting) of a matrix A, letting a caller solve Ax=b for many right-hand
// sides without repeating the O(n^3) elimination each time. The problem
// orchestrator uses this to factor the influence matrix once per omega and
// reuse it across every radiation mode and the diffraction problem at that
// frequency (a Combined problem), per spec.md §4.4's LU factor cache.
type Factorization struct {
	lu   [][]complex128 // L (unit diagonal, below) and U (on/above diagonal) packed together
	perm []int
	n    int
}

// Factorize computes the LU decomposition of A, returning a
// bemerr.NumericalBreakdown error if a pivot collapses below threshold.
func Factorize(A *mat.CDense) (*Factorization, error) {
	n, _ := A.Dims()
	a := toRows(A, n)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for col := 0; col < n; col++ {
		pivotRow, pivotMag := col, cmplx.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if m := cmplx.Abs(a[r][col]); m > pivotMag {
				pivotRow, pivotMag = r, m
			}
		}
		if pivotMag < pivotEps {
			return nil, bemerr.New(bemerr.NumericalBreakdown,
				fmt.Sprintf("LU pivot at column %d is below threshold (%.3e)", col, pivotMag)).
				WithSolver(string(LU), col)
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			perm[col], perm[pivotRow] = perm[pivotRow], perm[col]
		}
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			a[r][col] = factor // store the multiplier in the eliminated slot (compact LU storage)
			if factor == 0 {
				continue
			}
			for c := col + 1; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}
	return &Factorization{lu: a, perm: perm, n: n}, nil
}

// Solve applies the cached factorization to a new right-hand side.
func (f *Factorization) Solve(b []complex128) ([]complex128, error) {
	if len(b) != f.n {
		return nil, bemerr.New(bemerr.InputValidation, "rhs length does not match factorization size")
	}
	x := make([]complex128, f.n)
	for i, p := range f.perm {
		x[i] = b[p]
	}
	// Forward substitution with unit-diagonal L.
	for i := 0; i < f.n; i++ {
		sum := x[i]
		for k := 0; k < i; k++ {
			sum -= f.lu[i][k] * x[k]
		}
		x[i] = sum
	}
	// Back substitution with U.
	for i := f.n - 1; i >= 0; i-- {
		sum := x[i]
		for k := i + 1; k < f.n; k++ {
			sum -= f.lu[i][k] * x[k]
		}
		x[i] = sum / f.lu[i][i]
	}
	return x, nil
}
