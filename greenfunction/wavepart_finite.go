package greenfunction

import "math"

// waveFiniteDepth evaluates the finite-depth wave part via the classical
// eigenfunction expansion: one propagating mode k0 (outgoing, carried by
// the Hankel function H0^(1)) plus a truncated sum of evanescent modes kn
// (decaying, approximated by the large-argument asymptote of K0), each
// weighted by its vertical eigenfunction and mode normalisation integral.
//
// Grounded on the teacher's FinGreen3D (green_functions/fingreen3d.go),
// which sketched the same cosh/evanescent-sum structure with a placeholder
// dispersion solver; this generalises it to a proper bisection root finder
// (dispersion.go) and a real outgoing propagating term via stdlib Bessel
// functions math.J0/J1/Y0/Y1, instead of the teacher's simplified
// real-only approximation.
func waveFiniteDepth(omega, depth, gravity float64, field, source [3]float64, nModes int) (complex128, [3]complex128) {
	k0 := WaveNumber(omega, depth, gravity)
	R := horizontalDistance(field, source)
	zf, zp := field[2], source[2]

	c0 := depth/2 + math.Sinh(2*k0*depth)/(4*k0)
	vf0 := math.Cosh(k0 * (zf + depth))
	vp0 := math.Cosh(k0 * (zp + depth))
	amp0 := vf0 * vp0 / c0

	h0 := complex(math.J0(k0*R), math.Y0(k0*R))
	h1 := complex(math.J1(k0*R), math.Y1(k0*R))

	g := complex(0, math.Pi) * complex(amp0, 0) * h0

	dvf0 := k0 * math.Sinh(k0*(zf+depth))
	var dRdx, dRdy float64
	if R > 1e-12 {
		dRdx = (field[0] - source[0]) / R
		dRdy = (field[1] - source[1]) / R
	}
	dAmp0_dzf := dvf0 * vp0 / c0
	dH0_dR := complex(-k0, 0) * h1

	grad := [3]complex128{
		complex(0, math.Pi) * complex(amp0, 0) * dH0_dR * complex(dRdx, 0),
		complex(0, math.Pi) * complex(amp0, 0) * dH0_dR * complex(dRdy, 0),
		complex(0, math.Pi) * complex(dAmp0_dzf, 0) * h0,
	}

	roots := EvanescentRoots(omega, depth, gravity, nModes)
	for _, kn := range roots {
		cn := depth/2 + math.Sin(2*kn*depth)/(4*kn)
		vfn := math.Cos(kn * (zf + depth))
		vpn := math.Cos(kn * (zp + depth))
		ampn := vfn * vpn / cn

		x := kn * R
		if x < 1e-6 {
			x = 1e-6
		}
		k0Asym := math.Sqrt(math.Pi/(2*x)) * math.Exp(-x)
		dK0Asym := -k0Asym * (1 + 1/(2*x)) // d/dx of the asymptote above

		g += complex(-2*ampn*k0Asym, 0)

		dvfn := -kn * math.Sin(kn*(zf+depth))
		dAmpn_dzf := dvfn * vpn / cn

		grad[0] += complex(-2*ampn*kn*dK0Asym*dRdx, 0)
		grad[1] += complex(-2*ampn*kn*dK0Asym*dRdy, 0)
		grad[2] += complex(-2*dAmpn_dzf*k0Asym, 0)
	}

	return g, grad
}
