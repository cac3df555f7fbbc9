package greenfunction

import (
	"math"
	"math/cmplx"
	"testing"
)

func deepWaterParams(method Method, omega float64) Parameters {
	return Parameters{
		Method:    method,
		Omega:     omega,
		Depth:     math.Inf(1),
		Tolerance: 1e-10,
		MaxPoints: 200,
		Gravity:   9.81,
	}
}

func TestWaveNumberDeepWater(t *testing.T) {
	omega := 1.2
	k := WaveNumber(omega, math.Inf(1), 9.81)
	if got, want := k, omega*omega/9.81; math.Abs(got-want) > 1e-12 {
		t.Fatalf("deep water wavenumber = %g, want %g", got, want)
	}
}

func TestWaveNumberFiniteDepthSatisfiesDispersion(t *testing.T) {
	omega, depth, g := 0.8, 20.0, 9.81
	k := WaveNumber(omega, depth, g)
	lhs := g * k * math.Tanh(k*depth)
	if math.Abs(lhs-omega*omega) > 1e-8 {
		t.Fatalf("dispersion residual = %g, want ~0 (lhs=%g omega^2=%g)", lhs-omega*omega, lhs, omega*omega)
	}
}

func TestEvanescentRootsBracketed(t *testing.T) {
	roots := EvanescentRoots(0.8, 20.0, 9.81, 5)
	for m, k := range roots {
		lo := (float64(m+1) - 0.5) * math.Pi / 20.0
		hi := float64(m+1) * math.Pi / 20.0
		if k <= lo || k >= hi {
			t.Fatalf("root %d = %g not in (%g, %g)", m, k, lo, hi)
		}
	}
}

func TestDelhommeauReciprocity(t *testing.T) {
	params := deepWaterParams(MethodDelhommeau, 1.0)
	x := [3]float64{0, 0, -1}
	xp := [3]float64{3, 1, -2}

	eval := Delhommeau{}
	a, err := eval.Evaluate(params, x, xp)
	if err != nil {
		t.Fatalf("Evaluate(x,xp): %v", err)
	}
	b, err := eval.Evaluate(params, xp, x)
	if err != nil {
		t.Fatalf("Evaluate(xp,x): %v", err)
	}
	gA, _ := a.Total()
	gB, _ := b.Total()
	if cmplx.Abs(gA-gB) > 1e-9*cmplx.Abs(gA) {
		t.Fatalf("Green function not reciprocal: G(x,x')=%v G(x',x)=%v", gA, gB)
	}
}

func TestDeepWaterDomainRejectsAboveFreeSurface(t *testing.T) {
	params := deepWaterParams(MethodDelhommeau, 1.0)
	_, err := Delhommeau{}.Evaluate(params, [3]float64{0, 0, 1}, [3]float64{1, 0, -1})
	if err == nil {
		t.Fatal("expected a domain error for a field point above the free surface")
	}
}

func TestDelhommeauAndHAMSAgreeInDeepWater(t *testing.T) {
	x := [3]float64{0, 0, -1}
	xp := [3]float64{2, 0.5, -3}

	d, err := Delhommeau{}.Evaluate(deepWaterParams(MethodDelhommeau, 1.5), x, xp)
	if err != nil {
		t.Fatalf("Delhommeau: %v", err)
	}
	h, err := HAMS{}.Evaluate(deepWaterParams(MethodHAMS, 1.5), x, xp)
	if err != nil {
		t.Fatalf("HAMS: %v", err)
	}
	gD, _ := d.Total()
	gH, _ := h.Total()
	if cmplx.Abs(gD-gH) > 1e-4*cmplx.Abs(gD) {
		t.Fatalf("Delhommeau and HAMS disagree beyond tolerance: %v vs %v", gD, gH)
	}
}

func TestLiangWuNoblesseRejectsFiniteDepth(t *testing.T) {
	params := Parameters{Method: MethodLiangWuNoblesse, Omega: 1.0, Depth: 30, Tolerance: 1e-8, MaxPoints: 200, Gravity: 9.81}
	_, err := LiangWuNoblesse{}.Evaluate(params, [3]float64{0, 0, -1}, [3]float64{1, 0, -2})
	if err == nil {
		t.Fatal("expected NotApplicable error for finite depth")
	}
}

func TestExpInt1SeriesAndContinuedFractionAgree(t *testing.T) {
	z := complex(1.2, 0.8)
	s := expInt1Series(z, 1e-12, 200)
	cf := expInt1ContinuedFraction(z, 1e-12, 200)
	if cmplx.Abs(s-cf) > 1e-6*cmplx.Abs(s) {
		t.Fatalf("series and continued-fraction E1 disagree: %v vs %v", s, cf)
	}
}

func TestRankinePartMatchesInverseDistance(t *testing.T) {
	field := [3]float64{0, 0, -1}
	source := [3]float64{3, 4, -1}
	val, _, r := rankinePart(field, source)
	if math.Abs(r-5) > 1e-12 {
		t.Fatalf("distance = %g, want 5", r)
	}
	if math.Abs(val-0.2) > 1e-12 {
		t.Fatalf("1/r = %g, want 0.2", val)
	}
}
