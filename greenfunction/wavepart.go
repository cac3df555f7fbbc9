package greenfunction

import "math"

// waveInfiniteDepth evaluates the deep-water wave part of the free-surface
// Green function and its field-point gradient, following the classical
// Wehausen & Laitone split into a principal-value real part (expressed here
// through the complex exponential integral E1, see expint.go) and an
// explicit outgoing-radiation imaginary part:
//
//	Gwave(R,zsum) = 2k e^(k zsum) Re[e^zeta E1(zeta)] + 2*pi*i*k e^(k zsum) J0(kR)
//	zeta = -k*zsum + i*k*R,  zsum = zf + zp <= 0
//
// zsum <= 0 is required for zeta to stay clear of E1's branch cut (negative
// real axis); field and source points above the free surface are rejected
// by the caller's edge policy before this is reached.
func waveInfiniteDepth(k float64, field, source [3]float64, tol float64, maxTerms int) (complex128, [3]complex128) {
	return waveInfiniteDepthWith(k, field, source, func(z complex128) complex128 {
		return expInt1(z, tol, maxTerms)
	})
}

// waveInfiniteDepthWith is the shared deep-water kernel parameterised by
// the E1 evaluation strategy, letting each method variant (Delhommeau's
// hybrid selection, HAMS's forced series, LiangWuNoblesse's forced
// continued fraction) drive the same closed-form wave-part wiring.
func waveInfiniteDepthWith(k float64, field, source [3]float64, e1 func(complex128) complex128) (complex128, [3]complex128) {
	zsum := field[2] + source[2]
	R := horizontalDistance(field, source)

	zeta := complex(-k*zsum, k*R)
	if cmplxTiny(zeta) {
		zeta = complex(1e-12, 0)
	}
	F := cExp(zeta) * e1(zeta)
	dF := F - 1/zeta

	expK := math.Exp(k * zsum)
	u := real(F)
	j0, j1 := math.J0(k*R), math.J1(k*R)

	dReG_dzsum := 2 * k * k * expK * (u - real(dF))
	dReG_dR := -2 * k * k * expK * imag(dF)
	dImG_dzsum := 2 * math.Pi * k * k * expK * j0
	dImG_dR := -2 * math.Pi * k * k * expK * j1

	g := complex(2*k*expK*u, 2*math.Pi*k*expK*j0)

	var dRdx, dRdy float64
	if R > 1e-12 {
		dRdx = (field[0] - source[0]) / R
		dRdy = (field[1] - source[1]) / R
	}
	grad := [3]complex128{
		complex(dReG_dR*dRdx, dImG_dR*dRdx),
		complex(dReG_dR*dRdy, dImG_dR*dRdy),
		complex(dReG_dzsum, dImG_dzsum),
	}
	return g, grad
}

func cExp(z complex128) complex128 {
	e := math.Exp(real(z))
	return complex(e*math.Cos(imag(z)), e*math.Sin(imag(z)))
}

func cmplxTiny(z complex128) bool {
	return math.Abs(real(z)) < 1e-13 && math.Abs(imag(z)) < 1e-13
}
