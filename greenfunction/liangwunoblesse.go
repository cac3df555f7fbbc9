package greenfunction

import "github.com/capytaine/go-capytaine/bemerr"

// LiangWuNoblesse is the deep-water-only Green function method: it forces
// the continued-fraction branch of the exponential integral (expInt1ContinuedFraction)
// regardless of |zeta|, the compact rational-approximation convention named
// in spec.md §4.2 and distinct from both Delhommeau's hybrid selection and
// HAMS's forced series.
//
// Grounded on the teacher's LiangWuNoblesseGF (green_functions/hams.go),
// whose placeholder Evaluate rejected anything but infinite depth; that
// constraint is preserved here as a NotApplicable error.
type LiangWuNoblesse struct{}

func (LiangWuNoblesse) Method() Method { return MethodLiangWuNoblesse }

func (lw LiangWuNoblesse) Evaluate(params Parameters, field, source [3]float64) (Evaluation, error) {
	if err := params.validate(); err != nil {
		return Evaluation{}, err
	}
	if !params.deepWater() {
		return Evaluation{}, bemerr.New(bemerr.NotApplicable,
			"liang_wu_noblesse only supports infinite depth")
	}
	if err := checkDomain(field, source); err != nil {
		return Evaluation{}, err
	}

	rVal, rGrad, _ := rankinePart(field, source)
	mVal, mGrad, _ := mirrorPart(field, source)

	g := params.gravity()
	k := WaveNumber(params.Omega, params.Depth, g)
	tol := params.tolerance()
	maxTerms := params.maxPoints()
	wave, waveGrad := waveInfiniteDepthWith(k, field, source, func(z complex128) complex128 {
		return expInt1ContinuedFraction(z, tol, maxTerms)
	})

	return Evaluation{
		Wave:        wave,
		WaveGrad:    waveGrad,
		Rankine:     rVal,
		RankineGrad: rGrad,
		Mirror:      mVal,
		MirrorGrad:  mGrad,
	}, nil
}
