package problem

import (
	"context"
	"math"
	"testing"

	"github.com/capytaine/go-capytaine/config"
	"github.com/capytaine/go-capytaine/linsolve"
	"github.com/capytaine/go-capytaine/mesh"
)

func submergedMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	vertices := [][3]float64{
		{0, 0, -1}, {1, 0, -1}, {0, 1, -1},
		{1, 1, -2}, {2, 0, -2}, {1, 0, -2},
		{-1, -1, -1.5}, {0, -1, -1.5}, {-1, 0, -1.5},
	}
	triangles := [][3]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	m, err := mesh.New(vertices, triangles)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func TestRadiationNormalVelocityTranslationalMatchesNormalComponent(t *testing.T) {
	normal := [3]float64{0, 0, 1}
	v := radiationNormalVelocity(Heave, [3]float64{}, [3]float64{1, 2, -1}, normal)
	if real(v) != 1 || imag(v) != 0 {
		t.Fatalf("heave normal velocity = %v, want 1", v)
	}
	v = radiationNormalVelocity(Surge, [3]float64{}, [3]float64{1, 2, -1}, normal)
	if real(v) != 0 {
		t.Fatalf("surge normal velocity on a vertical normal = %v, want 0", v)
	}
}

func TestRadiationNormalVelocityRotationalUsesLeverArm(t *testing.T) {
	center := [3]float64{0, 0, 0}
	point := [3]float64{1, 0, 0}
	normal := [3]float64{0, 1, 0}
	// Pitch about the y-axis: v = (r x e_y) . n = (0,0,1).(0,1,0) = 0... use roll instead.
	v := radiationNormalVelocity(Roll, center, point, [3]float64{0, 0, 1})
	// (1,0,0) x e_x = (0,0,0), so a point on the rotation axis itself has zero velocity.
	if real(v) != 0 {
		t.Fatalf("roll velocity at a point on the axis = %v, want 0", v)
	}
	point = [3]float64{0, 1, 0}
	v = radiationNormalVelocity(Roll, center, point, [3]float64{0, 0, 1})
	if math.Abs(real(v)-(-1)) > 1e-12 {
		t.Fatalf("roll velocity = %v, want -1", v)
	}
}

func TestIncidentNormalVelocityIsFiniteDeepWater(t *testing.T) {
	k := 1.0
	v := incidentNormalVelocity(1.0, 1.0, k, math.Inf(1), 0, [3]float64{0, 0, -1}, [3]float64{0, 0, 1})
	if cmplxIsNaN(v) {
		t.Fatalf("incident normal velocity is NaN")
	}
}

func cmplxIsNaN(z complex128) bool {
	return math.IsNaN(real(z)) || math.IsNaN(imag(z))
}

func TestBuildRadiationRHSMatchesPerPanelVelocity(t *testing.T) {
	m := submergedMesh(t)
	panels, err := m.Panels()
	if err != nil {
		t.Fatalf("Panels: %v", err)
	}
	rhs := buildRadiationRHS(Heave, [3]float64{}, panels)
	if len(rhs) != len(panels) {
		t.Fatalf("len(rhs) = %d, want %d", len(rhs), len(panels))
	}
	for i, p := range panels {
		want := radiationNormalVelocity(Heave, [3]float64{}, [3]float64(p.Centroid), [3]float64(p.Normal))
		if rhs[i] != want {
			t.Fatalf("rhs[%d] = %v, want %v", i, rhs[i], want)
		}
	}
}

func TestOrchestratorSolveRadiationProblem(t *testing.T) {
	m := submergedMesh(t)
	cfg := config.Default()
	o := NewOrchestrator(cfg)
	spec := Specification{Kind: Radiation, Omega: 1.2, Depth: math.Inf(1), Mode: Heave}
	result, err := o.Solve(context.Background(), m, spec)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	mr, ok := result.Modes["heave"]
	if !ok {
		t.Fatalf("missing heave mode result")
	}
	if len(mr.Source) != m.NbFaces() || len(mr.Potential) != m.NbFaces() {
		t.Fatalf("unexpected result lengths: source=%d potential=%d", len(mr.Source), len(mr.Potential))
	}
}

func TestOrchestratorCombinedProblemReusesFactorization(t *testing.T) {
	m := submergedMesh(t)
	cfg := config.Default()
	o := NewOrchestrator(cfg)
	spec := Specification{
		Kind:               Combined,
		Omega:              0.9,
		Depth:              math.Inf(1),
		RadiationModes:     []DOF{Surge, Heave},
		IncludeDiffraction: true,
		WaveDirection:      0,
	}
	result, err := o.Solve(context.Background(), m, spec)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for _, name := range []string{"surge", "heave", "diffraction"} {
		if _, ok := result.Modes[name]; !ok {
			t.Fatalf("missing %q in combined result", name)
		}
	}
	if len(o.cache) != 1 {
		t.Fatalf("expected exactly one cached factorization for a single-omega Combined problem, got %d", len(o.cache))
	}
}

func TestOrchestratorRejectsNonPositiveOmega(t *testing.T) {
	m := submergedMesh(t)
	o := NewOrchestrator(config.Default())
	_, err := o.Solve(context.Background(), m, Specification{Kind: Radiation, Omega: 0, Mode: Heave})
	if err == nil {
		t.Fatalf("expected an error for omega=0")
	}
}

func TestOrchestratorIterativeStrategyMatchesLU(t *testing.T) {
	m := submergedMesh(t)
	cfg := config.Default()
	spec := Specification{Kind: Radiation, Omega: 1.0, Depth: math.Inf(1), Mode: Heave}

	direct := NewOrchestrator(cfg)
	direct.SolverStrategy = linsolve.LU
	want, err := direct.Solve(context.Background(), m, spec)
	if err != nil {
		t.Fatalf("Solve (LU): %v", err)
	}

	iterative := NewOrchestrator(cfg)
	iterative.SolverStrategy = linsolve.GMRES
	got, err := iterative.Solve(context.Background(), m, spec)
	if err != nil {
		t.Fatalf("Solve (GMRES): %v", err)
	}

	wantSigma := want.Modes["heave"].Source
	gotSigma := got.Modes["heave"].Source
	for i := range wantSigma {
		if diff := cmplxAbsDiff(wantSigma[i], gotSigma[i]); diff > 1e-4 {
			t.Fatalf("sigma[%d]: LU=%v GMRES=%v diff=%v", i, wantSigma[i], gotSigma[i], diff)
		}
	}
}

func cmplxAbsDiff(a, b complex128) float64 {
	d := a - b
	return math.Hypot(real(d), imag(d))
}
