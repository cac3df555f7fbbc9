package linsolve

import "gonum.org/v1/gonum/mat"

// matVec computes A*x by direct row access. gonum's mat.CDense exposes
// storage and element access but no MulVec for complex types (unlike its
// real mat.Dense), so the iterative solvers below call this instead of a
// library routine.
func matVec(A *mat.CDense, x []complex128) []complex128 {
	n, m := A.Dims()
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		var sum complex128
		for j := 0; j < m; j++ {
			sum += A.At(i, j) * x[j]
		}
		out[i] = sum
	}
	return out
}
