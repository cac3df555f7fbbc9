package linsolve

import (
	"context"
	"math/cmplx"
	"testing"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

func diag3() *mat.CDense {
	A := mat.NewCDense(3, 3, nil)
	A.Set(0, 0, complex(4, 0))
	A.Set(0, 1, complex(1, 0))
	A.Set(0, 2, complex(0, 0))
	A.Set(1, 0, complex(1, 0))
	A.Set(1, 1, complex(3, 0))
	A.Set(1, 2, complex(1, 0))
	A.Set(2, 0, complex(0, 0))
	A.Set(2, 1, complex(1, 0))
	A.Set(2, 2, complex(2, 0))
	return A
}

func residual(A *mat.CDense, x, b []complex128) float64 {
	return vecNorm(vecSub(matVec(A, x), b))
}

func TestLUSolvesSPDSystem(t *testing.T) {
	A := diag3()
	b := []complex128{complex(5, 0), complex(5, 0), complex(3, 0)}
	x, err := luSolve(A, b)
	if err != nil {
		t.Fatalf("luSolve: %v", err)
	}
	if residual(A, x, b) > 1e-9 {
		t.Fatalf("residual too large: %v", residual(A, x, b))
	}
}

func TestCholeskySolvesSPDSystem(t *testing.T) {
	A := diag3()
	b := []complex128{complex(5, 0), complex(5, 0), complex(3, 0)}
	x, err := choleskySolve(A, b)
	if err != nil {
		t.Fatalf("choleskySolve: %v", err)
	}
	if residual(A, x, b) > 1e-9 {
		t.Fatalf("residual too large: %v", residual(A, x, b))
	}
}

func TestCholeskyRejectsNonHermitian(t *testing.T) {
	A := mat.NewCDense(2, 2, nil)
	A.Set(0, 0, complex(1, 0))
	A.Set(0, 1, complex(2, 0))
	A.Set(1, 0, complex(0, 0))
	A.Set(1, 1, complex(1, 0))
	_, err := choleskySolve(A, []complex128{1, 1})
	if !bemerr.Is(err, bemerr.NotApplicable) {
		t.Fatalf("expected NotApplicable, got %v", err)
	}
}

func TestGMRESMatchesDirectSolve(t *testing.T) {
	A := diag3()
	b := []complex128{complex(5, 0), complex(5, 0), complex(3, 0)}
	want, err := luSolve(A, b)
	if err != nil {
		t.Fatalf("luSolve: %v", err)
	}
	res, err := Solve(context.Background(), A, b, Options{Strategy: GMRES, Tolerance: 1e-10, MaxIterations: 100, Restart: 3})
	if err != nil {
		t.Fatalf("gmres: %v", err)
	}
	for i := range want {
		if cmplx.Abs(res.X[i]-want[i]) > 1e-6 {
			t.Fatalf("gmres x[%d]=%v want %v", i, res.X[i], want[i])
		}
	}
}

func TestCGMatchesDirectSolveOnSPD(t *testing.T) {
	A := diag3()
	b := []complex128{complex(5, 0), complex(5, 0), complex(3, 0)}
	want, err := luSolve(A, b)
	if err != nil {
		t.Fatalf("luSolve: %v", err)
	}
	res, err := Solve(context.Background(), A, b, Options{Strategy: CG, Tolerance: 1e-10, MaxIterations: 50})
	if err != nil {
		t.Fatalf("cg: %v", err)
	}
	for i := range want {
		if cmplx.Abs(res.X[i]-want[i]) > 1e-6 {
			t.Fatalf("cg x[%d]=%v want %v", i, res.X[i], want[i])
		}
	}
}

func TestCGRejectsNonHermitian(t *testing.T) {
	A := mat.NewCDense(2, 2, nil)
	A.Set(0, 0, complex(1, 0))
	A.Set(0, 1, complex(2, 0))
	A.Set(1, 0, complex(0, 0))
	A.Set(1, 1, complex(1, 0))
	_, err := Solve(context.Background(), A, []complex128{1, 1}, Options{Strategy: CG, MaxIterations: 10})
	if !bemerr.Is(err, bemerr.NotApplicable) {
		t.Fatalf("expected NotApplicable, got %v", err)
	}
}

func TestBiCGSTABSolvesNonHermitianSystem(t *testing.T) {
	A := mat.NewCDense(3, 3, nil)
	A.Set(0, 0, complex(4, 0))
	A.Set(0, 1, complex(2, 1))
	A.Set(0, 2, complex(0, 0))
	A.Set(1, 0, complex(0, -1))
	A.Set(1, 1, complex(3, 0))
	A.Set(1, 2, complex(1, 0))
	A.Set(2, 0, complex(1, 0))
	A.Set(2, 1, complex(0, 0))
	A.Set(2, 2, complex(2, 0.5))
	b := []complex128{complex(5, 1), complex(5, -1), complex(3, 0)}

	want, err := luSolve(A, b)
	if err != nil {
		t.Fatalf("luSolve: %v", err)
	}
	res, err := Solve(context.Background(), A, b, Options{Strategy: BiCGSTAB, Tolerance: 1e-10, MaxIterations: 200})
	if err != nil {
		t.Fatalf("bicgstab: %v", err)
	}
	for i := range want {
		if cmplx.Abs(res.X[i]-want[i]) > 1e-5 {
			t.Fatalf("bicgstab x[%d]=%v want %v", i, res.X[i], want[i])
		}
	}
}

func TestLUDetectsBreakdownOnSingularMatrix(t *testing.T) {
	A := mat.NewCDense(2, 2, nil)
	A.Set(0, 0, complex(0, 0))
	A.Set(0, 1, complex(0, 0))
	A.Set(1, 0, complex(0, 0))
	A.Set(1, 1, complex(0, 0))
	_, err := luSolve(A, []complex128{1, 1})
	if !bemerr.Is(err, bemerr.NumericalBreakdown) {
		t.Fatalf("expected NumericalBreakdown, got %v", err)
	}
}

func TestAutoRetryFallsBackToGMRESOnDirectBreakdown(t *testing.T) {
	A := mat.NewCDense(2, 2, nil)
	A.Set(0, 0, complex(0, 0))
	A.Set(0, 1, complex(0, 0))
	A.Set(1, 0, complex(0, 0))
	A.Set(1, 1, complex(0, 0))
	_, err := Solve(context.Background(), A, []complex128{1, 1}, Options{Strategy: LU, AutoRetry: true, MaxIterations: 10, Restart: 2})
	// A singular 2x2 zero matrix is not solvable by GMRES either; the
	// retry should be attempted and reported as such in the failure.
	if err == nil {
		t.Fatal("expected an error for an unsolvable singular system")
	}
}
