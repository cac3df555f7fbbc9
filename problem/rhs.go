package problem

import (
	"github.com/capytaine/go-capytaine/mesh"
	"gonum.org/v1/gonum/mat"
)

// buildRadiationRHS constructs the prescribed-normal-velocity right-hand
// side for a unit-amplitude rigid-body motion in the given mode.
func buildRadiationRHS(mode DOF, center [3]float64, panels []mesh.Panel) []complex128 {
	rhs := make([]complex128, len(panels))
	for i, p := range panels {
		rhs[i] = radiationNormalVelocity(mode, center, [3]float64(p.Centroid), [3]float64(p.Normal))
	}
	return rhs
}

// buildDiffractionRHS constructs the scattered-wave boundary condition
// -d(phi0)/dn for the incident Airy wave described by spec.
func buildDiffractionRHS(spec Specification, k float64, panels []mesh.Panel) []complex128 {
	rhs := make([]complex128, len(panels))
	amplitude := spec.waveAmplitude()
	for i, p := range panels {
		rhs[i] = incidentNormalVelocity(amplitude, spec.Omega, k, spec.Depth, spec.WaveDirection,
			[3]float64(p.Centroid), [3]float64(p.Normal))
	}
	return rhs
}

// matVecCDense computes A*x for the dense complex matrix produced by the
// assembler, used to recover the boundary potential phi=S*sigma once the
// source strengths are known.
func matVecCDense(A *mat.CDense, x []complex128) []complex128 {
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
