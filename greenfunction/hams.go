package greenfunction

// HAMS is the series-expansion Green function method: it forces the
// power-series branch of the exponential integral regardless of |zeta|,
// truncating after params.MaxPoints terms or once params.Tolerance is
// reached, whichever comes first — the "series expansion method with
// tolerance-based truncation" variant named in spec.md §4.2, distinct from
// Delhommeau's hybrid series/continued-fraction selection.
//
// Grounded on the teacher's LiangWuNoblesseGF/HAMS structs (green_functions/
// hams.go), both placeholder Evaluate methods; HAMS additionally sizes its
// finite-depth evanescent sum at MaxPoints/4 modes, clamped to the range
// [4, 4*evanescentModeCount], instead of Delhommeau's fixed
// evanescentModeCount. That finite-depth sum always runs the full mode
// count: params.Tolerance does not stop it early.
type HAMS struct{}

func (HAMS) Method() Method { return MethodHAMS }

func (h HAMS) Evaluate(params Parameters, field, source [3]float64) (Evaluation, error) {
	if err := params.validate(); err != nil {
		return Evaluation{}, err
	}
	if err := checkDomain(field, source); err != nil {
		return Evaluation{}, err
	}

	rVal, rGrad, _ := rankinePart(field, source)
	mVal, mGrad, _ := mirrorPart(field, source)

	wave, waveGrad := h.evaluateWave(params, field, source)

	return Evaluation{
		Wave:        wave,
		WaveGrad:    waveGrad,
		Rankine:     rVal,
		RankineGrad: rGrad,
		Mirror:      mVal,
		MirrorGrad:  mGrad,
	}, nil
}

func (HAMS) evaluateWave(params Parameters, field, source [3]float64) (complex128, [3]complex128) {
	g := params.gravity()
	k := WaveNumber(params.Omega, params.Depth, g)
	modes := params.maxPoints() / 4
	if modes < 4 {
		modes = 4
	}
	if modes > evanescentModeCount*4 {
		modes = evanescentModeCount * 4
	}
	if params.deepWater() || k*params.Depth < 1e-6 {
		return waveInfiniteDepthSeries(k, field, source, params.tolerance(), params.maxPoints())
	}
	return waveFiniteDepth(params.Omega, params.Depth, g, field, source, modes)
}

// waveInfiniteDepthSeries mirrors waveInfiniteDepth but forces
// expInt1Series regardless of |zeta|, per HAMS's series-only convention.
func waveInfiniteDepthSeries(k float64, field, source [3]float64, tol float64, maxTerms int) (complex128, [3]complex128) {
	return waveInfiniteDepthWith(k, field, source, func(z complex128) complex128 {
		return expInt1Series(z, tol, maxTerms)
	})
}
