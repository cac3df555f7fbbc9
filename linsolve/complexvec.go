package linsolve

import (
	"math"
	"math/cmplx"
)

// No ecosystem package in the pack provides complex BLAS-1 vector
// operations (gonum has no complex counterpart to gonum.org/v1/gonum/floats);
// these small helpers are the stdlib-only building blocks the iterative
// solvers below share.

func vecDot(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum
}

// vecNorm is the Euclidean (2-) norm, sqrt(sum |a_i|^2).
func vecNorm(a []complex128) float64 {
	s := 0.0
	for _, v := range a {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(s)
}

func vecAXPY(alpha complex128, x, y []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i := range x {
		out[i] = alpha*x[i] + y[i]
	}
	return out
}

func vecScale(alpha complex128, x []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i := range x {
		out[i] = alpha * x[i]
	}
	return out
}

func vecSub(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
