package postprocess

import (
	"math"
	"testing"

	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/mesh"
	"github.com/capytaine/go-capytaine/problem"
)

func flatPanelMesh(t *testing.T) []mesh.Panel {
	t.Helper()
	vertices := [][3]float64{
		{0, 0, -1}, {1, 0, -1}, {0, 1, -1}, {1, 1, -1},
	}
	triangles := [][3]int{{0, 1, 2}, {1, 3, 2}}
	m, err := mesh.New(vertices, triangles)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	panels, err := m.Panels()
	if err != nil {
		t.Fatalf("Panels: %v", err)
	}
	return panels
}

func TestAddedMassDampingZeroForUnsolvedMode(t *testing.T) {
	panels := flatPanelMesh(t)
	potentials := map[problem.DOF][]complex128{
		problem.Heave: {complex(1, 0.5), complex(1, 0.5)},
	}
	added, damping := AddedMassDamping(1000, 1.0, [3]float64{}, panels, potentials)
	for i := 0; i < 6; i++ {
		if added[i][int(problem.Surge)] != 0 || damping[i][int(problem.Surge)] != 0 {
			t.Fatalf("surge column should be zero when surge was not solved, got A=%v B=%v",
				added[i][int(problem.Surge)], damping[i][int(problem.Surge)])
		}
	}
	if added[int(problem.Heave)][int(problem.Heave)] == 0 {
		t.Fatalf("expected a non-zero heave-heave added mass entry")
	}
}

func TestExcitationForceCombinesDiffractionAndIncident(t *testing.T) {
	panels := flatPanelMesh(t)
	diffraction := make([]complex128, len(panels))
	incident := make([]complex128, len(panels))
	for i := range panels {
		diffraction[i] = complex(1, 0)
		incident[i] = complex(0, 1)
	}
	f := ExcitationForce(1000, [3]float64{}, panels, diffraction, incident)
	if f[int(problem.Heave)] == 0 {
		t.Fatalf("expected a non-zero heave excitation force")
	}
}

func TestRAOSolvesRigidBodyEquation(t *testing.T) {
	var mass, added, damping, hydrostatic, mooring [6][6]float64
	var excitation [6]complex128
	for i := 0; i < 6; i++ {
		mass[i][i] = 1000
		hydrostatic[i][i] = 500
	}
	excitation[int(problem.Heave)] = complex(100, 0)

	xi, err := RAO(1.0, mass, added, damping, hydrostatic, mooring, excitation)
	if err != nil {
		t.Fatalf("RAO: %v", err)
	}
	want := complex(100, 0) / complex(-1.0*1000+500, 0)
	if math.Abs(real(xi[int(problem.Heave)])-real(want)) > 1e-9 {
		t.Fatalf("heave RAO = %v, want %v", xi[int(problem.Heave)], want)
	}
}

func TestKochinIsFiniteForUnitSources(t *testing.T) {
	panels := flatPanelMesh(t)
	sigma := make([]complex128, len(panels))
	for i := range sigma {
		sigma[i] = complex(1, 0)
	}
	h := Kochin(0.3, 1.0, panels, sigma)
	if math.IsNaN(real(h)) || math.IsNaN(imag(h)) {
		t.Fatalf("Kochin(theta) is NaN")
	}
}

func TestFreeSurfaceElevationIsFiniteDeepWater(t *testing.T) {
	panels := flatPanelMesh(t)
	sigma := make([]complex128, len(panels))
	for i := range sigma {
		sigma[i] = complex(1, 0)
	}
	params := greenfunction.Parameters{Method: greenfunction.MethodDelhommeau, Omega: 1.0, Depth: math.Inf(1), Tolerance: 1e-8, MaxPoints: 200}
	points := [][2]float64{{5, 5}, {10, -3}}
	eta, err := FreeSurfaceElevation(points, panels, sigma, params)
	if err != nil {
		t.Fatalf("FreeSurfaceElevation: %v", err)
	}
	for i, v := range eta {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			t.Fatalf("eta[%d] is NaN", i)
		}
	}
}
