// Package problem orchestrates one BEM solve: assembling the influence
// matrices for a mesh at a given frequency, building the right-hand side
// for a radiation or diffraction boundary condition (or both, for a
// Combined problem), and driving the linear solver suite.
//
// Grounded on original_source/bem/src/problems.rs (the Radiation/
// Diffraction problem enum and RHS construction) and engines.rs
// (StandardBEMEngine::solve, whose placeholder zero-vector return is
// replaced here by the real dense pipeline).
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package problem

import (
	"math"

	"github.com/capytaine/go-capytaine/config"
)

// DOF is one of the six rigid-body degrees of freedom a radiation problem
// can be posed in, grounded on original_source/bodies/src/dofs.rs.
type DOF int

const (
	Surge DOF = iota
	Sway
	Heave
	Roll
	Pitch
	Yaw
)

func (d DOF) String() string {
	switch d {
	case Surge:
		return "surge"
	case Sway:
		return "sway"
	case Heave:
		return "heave"
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	default:
		return "unknown"
	}
}

func (d DOF) translational() bool { return d.Translational() }

// Translational reports whether mode d is a translation (surge/sway/heave)
// rather than a rotation (roll/pitch/yaw); the postprocessor reuses this to
// build the generalised normal for the hydrodynamic coefficient integrals.
func (d DOF) Translational() bool { return d == Surge || d == Sway || d == Heave }

func (d DOF) axis() [3]float64 { return d.Axis() }

// Axis returns the unit translation direction (translational DOFs) or
// rotation axis (rotational DOFs).
func (d DOF) Axis() [3]float64 {
	switch d {
	case Surge, Roll:
		return [3]float64{1, 0, 0}
	case Sway, Pitch:
		return [3]float64{0, 1, 0}
	case Heave, Yaw:
		return [3]float64{0, 0, 1}
	default:
		return [3]float64{0, 0, 0}
	}
}

// Kind is the closed set of problem types spec.md §3 defines.
type Kind string

const (
	Radiation   Kind = "radiation"
	Diffraction Kind = "diffraction"
	Combined    Kind = "combined"
)

// Specification fully describes one problem to solve at a given omega.
// RadiationModes/IncludeDiffraction are only meaningful for Kind==Combined;
// Mode is only meaningful for Kind==Radiation.
type Specification struct {
	Kind  Kind
	Omega float64
	Depth float64 // +Inf for deep water

	// Radiation.
	Mode           DOF
	RotationCenter [3]float64

	// Diffraction.
	WaveAmplitude float64 // unit amplitude (1.0) if zero
	WaveDirection float64 // radians, incidence direction in the xy plane

	// Combined.
	RadiationModes     []DOF
	IncludeDiffraction bool
}

func (s Specification) waveAmplitude() float64 {
	if s.WaveAmplitude == 0 {
		return 1.0
	}
	return s.WaveAmplitude
}

func radiationNormalVelocity(mode DOF, center, point, normal [3]float64) complex128 {
	return RadiationNormalVelocity(mode, center, point, normal)
}

// RadiationNormalVelocity returns the prescribed normal velocity at a
// panel for a unit-amplitude rigid-body motion in the given mode,
// v_n(x) = e_mode . n(x) for a translational DOF, or
// v_n(x) = ((x - center) x e_axis) . n(x) for a rotational one. The
// postprocessor reuses the same generalised normal e_mode.n (or its lever-arm
// form) to build the hydrodynamic coefficient integrals, since A_ij/B_ij/F_i
// are all integrals of a potential against this same generalised direction.
func RadiationNormalVelocity(mode DOF, center, point, normal [3]float64) complex128 {
	if mode.translational() {
		e := mode.axis()
		return complex(e[0]*normal[0]+e[1]*normal[1]+e[2]*normal[2], 0)
	}
	e := mode.axis()
	r := [3]float64{point[0] - center[0], point[1] - center[1], point[2] - center[2]}
	v := [3]float64{
		r[1]*e[2] - r[2]*e[1],
		r[2]*e[0] - r[0]*e[2],
		r[0]*e[1] - r[1]*e[0],
	}
	return complex(v[0]*normal[0]+v[1]*normal[1]+v[2]*normal[2], 0)
}

// incidentPotential evaluates the Airy incident wave potential of
// amplitude A, phi0 = -i*g*A/omega * Z(z) * exp(i*k*(x*cos(beta)+y*sin(beta))),
// with Z(z)=exp(k*z) in deep water or cosh(k*(z+h))/cosh(k*h) in finite
// depth, grounded on original_source/bem/src/airy_waves.rs.
func incidentPotential(amplitude, omega, k, depth, direction float64, point [3]float64) complex128 {
	g := config.GravityAccel
	phase := k * (point[0]*math.Cos(direction) + point[1]*math.Sin(direction))
	var vertical float64
	if math.IsInf(depth, 1) {
		vertical = math.Exp(k * point[2])
	} else {
		vertical = math.Cosh(k*(point[2]+depth)) / math.Cosh(k*depth)
	}
	amp := -amplitude * g / omega
	return complex(0, amp) * complex(vertical, 0) * complex(math.Cos(phase), math.Sin(phase))
}

// incidentNormalVelocity returns the diffraction boundary condition
// -d(phi0)/dn at a panel, via a centred finite difference along the
// normal direction; the incident potential is smooth and entire in x,y,z
// (no free-surface or source singularity), so this is accurate to the
// step size squared without needing an analytic gradient.
func incidentNormalVelocity(amplitude, omega, k, depth, direction float64, point, normal [3]float64) complex128 {
	const h = 1e-6
	plus := [3]float64{point[0] + h*normal[0], point[1] + h*normal[1], point[2] + h*normal[2]}
	minus := [3]float64{point[0] - h*normal[0], point[1] - h*normal[1], point[2] - h*normal[2]}
	dPhi := incidentPotential(amplitude, omega, k, depth, direction, plus) -
		incidentPotential(amplitude, omega, k, depth, direction, minus)
	return -dPhi / complex(2*h, 0)
}
