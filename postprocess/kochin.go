package postprocess

import (
	"math"
	"math/cmplx"

	"github.com/capytaine/go-capytaine/mesh"
)

// Kochin evaluates the far-field Kochin function
//
//	H(theta) = integral_S sigma(x) * exp(k*z) * exp(-i*k*(x*cos(theta)+y*sin(theta))) dS(x)
//
// at observer azimuth theta (radians), given the wavenumber k and the
// source strength distribution sigma solving a radiation or diffraction
// problem. H(theta) is the angular amplitude factor in the standard
// deep-water far-field asymptote
//
//	Phi(R,theta,z) ~ H(theta) * sqrt(2/(pi*k*R)) * exp(i*(k*R - pi/4)) * exp(k*z),  R -> infinity.
func Kochin(theta, k float64, panels []mesh.Panel, sigma []complex128) complex128 {
	var h complex128
	for p, panel := range panels {
		phase := k * (panel.Centroid[0]*math.Cos(theta) + panel.Centroid[1]*math.Sin(theta))
		vertical := math.Exp(k * panel.Centroid[2])
		h += sigma[p] * complex(vertical*panel.Area, 0) * cmplx.Exp(complex(0, -phase))
	}
	return h
}
