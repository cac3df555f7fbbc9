package assembly

import (
	"math"

	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/mesh"
	"gonum.org/v1/gonum/integrate/quad"
)

// pairInfluence evaluates the source (S) and normal-derivative (D)
// influence of the source panel on the field panel's collocation point,
// switching between a single-point far-field rule and a Duffy-transformed
// Gauss-Legendre near-field rule, per spec.md §4.3.
func pairInfluence(evaluator greenfunction.Evaluator, params greenfunction.Parameters,
	field, source mesh.Panel, opts Options) (complex128, complex128, error) {

	dist := distance(field.Centroid, source.Centroid)
	threshold := opts.NearFieldFactor * math.Sqrt(source.Area)

	if dist > threshold {
		eval, err := evaluator.Evaluate(params, [3]float64(field.Centroid), [3]float64(source.Centroid))
		if err != nil {
			return 0, 0, err
		}
		g, grad := eval.Total()
		d := dotNormal(grad, field.Normal) * source.Area
		return g * complex(source.Area, 0), d, nil
	}
	return nearFieldIntegral(evaluator, params, field, source, opts.QuadratureOrder)
}

// nearFieldIntegral integrates G and its field-point-normal-derivative
// over the source triangle via the Duffy transform: a unit square (u,w) is
// mapped onto the standard triangle by s=u(1-w), t=uw, with Jacobian u, so
// that gonum's 1-D fixed Gauss-Legendre rule (quad.Fixed) can be applied
// twice instead of needing a dedicated 2-D triangle rule.
func nearFieldIntegral(evaluator greenfunction.Evaluator, params greenfunction.Parameters,
	field, source mesh.Panel, order int) (complex128, complex128, error) {

	var evalErr error
	point := func(u, w float64) mesh.Vec3 {
		s, t := u*(1-w), u*w
		return mesh.Vec3{
			source.V0[0] + s*(source.V1[0]-source.V0[0]) + t*(source.V2[0]-source.V0[0]),
			source.V0[1] + s*(source.V1[1]-source.V0[1]) + t*(source.V2[1]-source.V0[1]),
			source.V0[2] + s*(source.V1[2]-source.V0[2]) + t*(source.V2[2]-source.V0[2]),
		}
	}

	sample := func(u, w float64) (complex128, [3]complex128) {
		p := point(u, w)
		eval, err := evaluator.Evaluate(params, [3]float64(field.Centroid), [3]float64(p))
		if err != nil {
			evalErr = err
			return 0, [3]complex128{}
		}
		g, grad := eval.Total()
		return g, grad
	}

	innerPart := func(u float64, pick func(complex128, [3]complex128) float64) func(w float64) float64 {
		return func(w float64) float64 {
			g, grad := sample(u, w)
			return pick(g, grad) * u
		}
	}
	outerPart := func(pick func(complex128, [3]complex128) float64) float64 {
		return quad.Fixed(func(u float64) float64 {
			return quad.Fixed(innerPart(u, pick), 0, 1, order, quad.Legendre{}, 0)
		}, 0, 1, order, quad.Legendre{}, 0)
	}

	reS := outerPart(func(g complex128, _ [3]complex128) float64 { return real(g) })
	imS := outerPart(func(g complex128, _ [3]complex128) float64 { return imag(g) })
	reD := outerPart(func(_ complex128, grad [3]complex128) float64 { return real(dotNormal(grad, field.Normal)) })
	imD := outerPart(func(_ complex128, grad [3]complex128) float64 { return imag(dotNormal(grad, field.Normal)) })

	if evalErr != nil {
		return 0, 0, evalErr
	}

	jacobian := 2 * source.Area
	s := complex(reS*jacobian, imS*jacobian)
	d := complex(reD*jacobian, imD*jacobian)
	return s, d, nil
}

func dotNormal(grad [3]complex128, normal mesh.Vec3) complex128 {
	return grad[0]*complex(normal[0], 0) + grad[1]*complex(normal[1], 0) + grad[2]*complex(normal[2], 0)
}

func distance(a, b mesh.Vec3) float64 {
	return a.Sub(b).Norm()
}

// selfTerm returns the analytic diagonal entries: the Rankine
// self-influence of a flat panel approximated by its equal-area disk
// (the classical closed form integral_disk 1/r dA = 2*pi*R_eq evaluated at
// the disk's own center), and the standard boundary-integral-equation jump
// relation for the double layer's own-panel limit, D_ii = -1/2. It depends
// on the panel geometry alone: no wave-part or mirror-image contribution
// is added to either diagonal entry.
//
// This is the Delhommeau self-term convention; HAMS and LiangWuNoblesse
// use the same Rankine/jump formula since neither redefines its own-panel
// limit, per spec.md §9's "one consistent convention per method,
// documented" instruction — documented here as the single convention used
// by all three methods in this assembler.
func selfTerm(p mesh.Panel) (complex128, complex128) {
	rEq := math.Sqrt(p.Area / math.Pi)
	rankineSelf := 2 * math.Pi * rEq
	return complex(rankineSelf, 0), complex(-0.5, 0)
}
