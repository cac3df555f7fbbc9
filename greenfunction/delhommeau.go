package greenfunction

import (
	"math"

	"github.com/capytaine/go-capytaine/bemerr"
)

// evanescentModeCount is the truncation used for Delhommeau's finite-depth
// evanescent sum; HAMS derives its own mode count from MaxPoints instead
// (see hams.go). Neither method stops its finite-depth sum on
// params.Tolerance.
const evanescentModeCount = 32

// Delhommeau is the default Green function method: the continued-
// fraction/series hybrid complex exponential integral (expInt1) for the
// deep-water wave part, and a fixed-order eigenfunction expansion for
// finite depth.
//
// Grounded on the teacher's Delhommeau struct (green_functions/
// delhommeau.go), whose Evaluate was a TODO returning empty matrices; the
// DefaultDelhommeauParameters tolerance/fnv-hash bookkeeping carries over
// conceptually into Parameters (tolerance, method identity) here.
type Delhommeau struct{}

func (Delhommeau) Method() Method { return MethodDelhommeau }

func (d Delhommeau) Evaluate(params Parameters, field, source [3]float64) (Evaluation, error) {
	if err := params.validate(); err != nil {
		return Evaluation{}, err
	}
	if err := checkDomain(field, source); err != nil {
		return Evaluation{}, err
	}

	rVal, rGrad, _ := rankinePart(field, source)
	mVal, mGrad, _ := mirrorPart(field, source)

	wave, waveGrad := evaluateWave(params, field, source)

	return Evaluation{
		Wave:        wave,
		WaveGrad:    waveGrad,
		Rankine:     rVal,
		RankineGrad: rGrad,
		Mirror:      mVal,
		MirrorGrad:  mGrad,
	}, nil
}

// evaluateWave dispatches to the infinite- or finite-depth kernel, folding
// in the low-kh fallback to the deep-water formula named in spec.md §9
// (the finite-depth eigenfunction sum loses precision as k0*h -> 0, where
// the deep-water asymptote is both cheaper and better conditioned).
func evaluateWave(params Parameters, field, source [3]float64) (complex128, [3]complex128) {
	g := params.gravity()
	k := WaveNumber(params.Omega, params.Depth, g)
	if params.deepWater() || k*params.Depth < 1e-6 {
		return waveInfiniteDepth(k, field, source, params.tolerance(), params.maxPoints())
	}
	return waveFiniteDepth(params.Omega, params.Depth, g, field, source, evanescentModeCount)
}

// checkDomain rejects field/source pairs that violate the Green function's
// domain of definition: both points must lie at or below the free surface
// and their sum must not place the mirror image above it, per spec.md §9.
func checkDomain(field, source [3]float64) error {
	if field[2] > 1e-9 || source[2] > 1e-9 {
		return bemerr.New(bemerr.DomainError, "field and source points must lie at or below the free surface z=0")
	}
	if field[2]+source[2] > 1e-9 {
		return bemerr.New(bemerr.DomainError, "field+source depth sum must not be positive")
	}
	if math.IsNaN(field[0]) || math.IsNaN(source[0]) {
		return bemerr.New(bemerr.InputValidation, "field/source coordinates must not be NaN")
	}
	return nil
}
