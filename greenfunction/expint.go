package greenfunction

import "math/cmplx"

// eulerMascheroni is the constant in the small-argument series for E1.
const eulerMascheroni = 0.5772156649015329

// expInt1 evaluates the complex exponential integral E1(z) = int_1^inf
// e^(-z t)/t dt, for z with Re(z) >= 0, the domain the wave-part kernel
// below always calls it with (z = -k*zsum + i*k*R with zsum <= 0).
//
// Two classical schemes are used depending on |z| (HAMS and
// LiangWuNoblesse bypass this split and call one scheme directly, see
// hams.go and liangwunoblesse.go):
//   - |z| small: the convergent power series E1(z) = -gamma - ln(z) -
//     sum_{n>=1} (-z)^n / (n * n!)
//   - |z| large: Lentz's continued fraction for e^z * E1(z).
//
// No gonum/ecosystem package in the pack exposes a complex exponential
// integral (gonum.org/v1/gonum/mathext.Ei is real-valued only), so this is
// a from-scratch implementation of a standard numerical-analysis
// algorithm; see DESIGN.md for the stdlib-only justification.
func expInt1(z complex128, tol float64, maxTerms int) complex128 {
	if cmplx.Abs(z) < 1.0 {
		return expInt1Series(z, tol, maxTerms)
	}
	return expInt1ContinuedFraction(z, tol, maxTerms)
}

func expInt1Series(z complex128, tol float64, maxTerms int) complex128 {
	sum := complex(0, 0)
	term := complex(1, 0)
	for n := 1; n <= maxTerms; n++ {
		term *= -z / complex(float64(n), 0)
		contribution := term / complex(float64(n), 0)
		sum += contribution
		if cmplx.Abs(contribution) < tol*cmplx.Abs(sum)+tol {
			break
		}
	}
	return complex(-eulerMascheroni, 0) - cmplx.Log(z) - sum
}

// expInt1ContinuedFraction evaluates E1(z) for |z| >= 1 via the modified
// Lentz algorithm applied to the continued fraction
//
//	E1(z) = e^-z / (z + 1/(1 + 1/(z + 2/(1 + 2/(z + ...)))))
func expInt1ContinuedFraction(z complex128, tol float64, maxTerms int) complex128 {
	const tiny = 1e-300
	b := z + 1
	c := complex(1/tiny, 0)
	d := complex(1, 0) / b
	h := d
	for n := 1; n <= maxTerms; n++ {
		an := complex(-float64(n)*float64(n), 0)
		b += 2
		d = an*d + b
		if cmplx.Abs(d) < tiny {
			d = complex(tiny, 0)
		}
		c = b + an/c
		if cmplx.Abs(c) < tiny {
			c = complex(tiny, 0)
		}
		d = complex(1, 0) / d
		delta := d * c
		h *= delta
		if cmplx.Abs(delta-1) < tol {
			break
		}
	}
	return cmplx.Exp(-z) * h
}
