// Package mesh provides the panelised hull geometry consumed by the BEM
// core: vertices, triangular panels, and the per-panel centroid/normal/area
// that the Green function evaluator and assembler read at collocation
// points.
//
// Grounded on original_source/meshes/src/mesh.rs (Panel/Mesh construction
// and normal/area computation) and generalised from the teacher's
// MeshLike interface (green_functions/abstract.go), which this package now
// implements.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package mesh

import (
	"fmt"
	"math"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// degenerateAreaEps is the minimum panel area accepted at construction, per
// spec.md §3/§4.1.
const degenerateAreaEps = 1e-12

// Vec3 is a plain 3-vector, used for vertices, centroids, and normals.
type Vec3 [3]float64

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a Vec3) Norm() float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Panel is a flat triangular element of the hull discretisation. Centroid,
// normal, and area are computed once at construction (§4.1: "computed lazily
// on first request and memoised" — memoisation here happens at the Mesh
// level, since a Panel is always built fully formed).
type Panel struct {
	V0, V1, V2 Vec3
	Centroid   Vec3
	Normal     Vec3 // outward unit normal
	Area       float64
}

func newPanel(v0, v1, v2 Vec3) (Panel, error) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	cross := edge1.Cross(edge2)
	area := 0.5 * cross.Norm()
	if area < degenerateAreaEps {
		return Panel{}, bemerr.New(bemerr.InputValidation,
			fmt.Sprintf("degenerate panel: area %g below threshold %g", area, degenerateAreaEps))
	}
	normal := cross.Scale(1.0 / cross.Norm())
	centroid := Vec3{
		(v0[0] + v1[0] + v2[0]) / 3,
		(v0[1] + v1[1] + v2[1]) / 3,
		(v0[2] + v1[2] + v2[2]) / 3,
	}
	return Panel{V0: v0, V1: v1, V2: v2, Centroid: centroid, Normal: normal, Area: area}, nil
}

// Mesh is an ordered sequence of vertices and triangular panels. It is
// constructed once and is immutable during a solve: the core never clones
// it and may share it by read-only reference across concurrent solves at a
// given omega, per spec.md §5.
type Mesh struct {
	vertices  []Vec3
	triangles [][3]int
	panels    []Panel // memoised on first Panels() call
}

// New constructs a Mesh, rejecting any triangle whose area is below the
// degenerate-panel threshold and any triangle referencing an out-of-range
// vertex index.
func New(vertices [][3]float64, triangles [][3]int) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, bemerr.New(bemerr.InputValidation, "mesh must have at least one panel")
	}
	vs := make([]Vec3, len(vertices))
	for i, v := range vertices {
		vs[i] = Vec3(v)
	}
	for _, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vs) {
				return nil, bemerr.New(bemerr.InputValidation,
					fmt.Sprintf("triangle vertex index %d out of range [0,%d)", idx, len(vs)))
			}
		}
	}
	m := &Mesh{vertices: vs, triangles: append([][3]int(nil), triangles...)}
	if _, err := m.Panels(); err != nil {
		return nil, err
	}
	return m, nil
}

// Panels returns the mesh's panels, computing and memoising them on first
// call. Subsequent calls are free.
func (m *Mesh) Panels() ([]Panel, error) {
	if m.panels != nil {
		return m.panels, nil
	}
	panels := make([]Panel, len(m.triangles))
	for i, tri := range m.triangles {
		p, err := newPanel(m.vertices[tri[0]], m.vertices[tri[1]], m.vertices[tri[2]])
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		panels[i] = p
	}
	m.panels = panels
	return panels, nil
}

// NbFaces returns the panel count, satisfying the MeshLike contract the
// Green function evaluator expects.
func (m *Mesh) NbFaces() int { return len(m.triangles) }

// FacesCenters returns the panel centroids as an N x 3 dense matrix, the
// collocation point set described in spec.md §4.1.
func (m *Mesh) FacesCenters() *mat.Dense {
	panels, _ := m.Panels() // memoised; construction already validated
	data := make([]float64, 0, len(panels)*3)
	for _, p := range panels {
		data = append(data, p.Centroid[0], p.Centroid[1], p.Centroid[2])
	}
	return mat.NewDense(len(panels), 3, data)
}

// FacesNormals returns the panel unit outward normals as an N x 3 matrix.
func (m *Mesh) FacesNormals() *mat.Dense {
	panels, _ := m.Panels()
	data := make([]float64, 0, len(panels)*3)
	for _, p := range panels {
		data = append(data, p.Normal[0], p.Normal[1], p.Normal[2])
	}
	return mat.NewDense(len(panels), 3, data)
}

// FacesAreas returns the per-panel area.
func (m *Mesh) FacesAreas() []float64 {
	panels, _ := m.Panels()
	areas := make([]float64, len(panels))
	for i, p := range panels {
		areas[i] = p.Area
	}
	return areas
}

// Vertices returns the underlying vertex slice (read-only by convention:
// callers must not mutate the returned slice).
func (m *Mesh) Vertices() []Vec3 { return m.vertices }

// IsSymmetric reports whether the mesh is symmetric about the y=0 plane to
// the given tolerance, used by the xOz-symmetric-body testable property in
// spec.md §8: for every panel centred at (x,y,z) there is a matching panel
// at (x,-y,z) with the mirrored normal.
func (m *Mesh) IsSymmetric(tol float64) bool {
	panels, err := m.Panels()
	if err != nil {
		return false
	}
	for _, p := range panels {
		mirror := Vec3{p.Centroid[0], -p.Centroid[1], p.Centroid[2]}
		mirrorNormal := Vec3{p.Normal[0], -p.Normal[1], p.Normal[2]}
		found := false
		for _, q := range panels {
			d := q.Centroid.Sub(mirror)
			if d.Norm() < tol && q.Normal.Sub(mirrorNormal).Norm() < tol {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
