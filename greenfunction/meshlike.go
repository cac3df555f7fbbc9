package greenfunction

import "gonum.org/v1/gonum/mat"

// MeshLike is the minimal collocation-point contract the Green function
// evaluator and the assembler need from a mesh, generalising the teacher's
// MeshLike interface (green_functions/abstract.go) from its Get-prefixed
// spelling to the idiomatic Go naming *mesh.Mesh already exposes.
type MeshLike interface {
	FacesCenters() *mat.Dense
	FacesNormals() *mat.Dense
	NbFaces() int
}
