// Package postprocess integrates panel potentials and pressures into the
// hydrodynamic quantities naval architects actually consume: added mass,
// radiation damping, excitation force, the rigid-body RAO, the far-field
// Kochin function, and the free-surface elevation on an observer grid.
//
// Every function here is pure: given the same panel geometry and stored
// potentials it returns the same result, with no solver re-entry and no
// hidden state, so re-running a post-processing pass twice is
// bit-identical.
//
// Grounded on original_source/post_pro/src/lib.rs's RAOData/KochinData/
// FreeSurfaceData layout (the quantities this package produces) and
// spec.md §4.6 for the integral formulae the Rust crate's analysis module
// was not included in the retrieval pack to show directly.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package postprocess

import (
	"github.com/capytaine/go-capytaine/mesh"
	"github.com/capytaine/go-capytaine/problem"
)

// generalizedNormal is e_mode . n at a panel, the same direction used to
// build a radiation problem's right-hand side, reused here since A_ij, B_ij,
// and F_i are all integrals of a potential against this generalised normal.
func generalizedNormal(mode problem.DOF, center [3]float64, p mesh.Panel) float64 {
	return real(problem.RadiationNormalVelocity(mode, center, [3]float64(p.Centroid), [3]float64(p.Normal)))
}

// modes is the fixed surge..yaw ordering the 6x6 coefficient matrices and
// excitation/RAO vectors are indexed by throughout this package.
var modes = [6]problem.DOF{problem.Surge, problem.Sway, problem.Heave, problem.Roll, problem.Pitch, problem.Yaw}

// AddedMassDamping integrates the radiation potentials over the hull to
// produce the 6x6 added-mass and damping matrices:
//
//	A_ij - (i/omega) B_ij = rho * integral_S Phi_j^rad * (e_i . n) dS
//
// radiationPotentials must hold, for every mode in modes, the panel
// potential vector returned by a radiation solve in that mode; a zero-length
// or nil entry is treated as "mode not solved" and leaves the corresponding
// column at zero (its row is still filled from the solved modes).
func AddedMassDamping(rho, omega float64, center [3]float64, panels []mesh.Panel,
	radiationPotentials map[problem.DOF][]complex128) (added, damping [6][6]float64) {

	for j, modeJ := range modes {
		phi := radiationPotentials[modeJ]
		if len(phi) == 0 {
			continue
		}
		for i, modeI := range modes {
			var sum complex128
			for p, panel := range panels {
				sum += phi[p] * complex(generalizedNormal(modeI, center, panel)*panel.Area, 0)
			}
			coeff := complex(rho, 0) * sum
			added[i][j] = real(coeff)
			damping[i][j] = -omega * imag(coeff)
		}
	}
	return added, damping
}

// ExcitationForce integrates the diffraction potential (scattered plus
// incident) over the hull to produce the length-6 excitation force vector
// F_i = rho * integral_S (Phi_diff + Phi_inc) * (e_i . n) dS.
func ExcitationForce(rho float64, center [3]float64, panels []mesh.Panel,
	diffractionPotential, incidentPotential []complex128) [6]complex128 {

	var f [6]complex128
	for i, modeI := range modes {
		var sum complex128
		for p, panel := range panels {
			total := diffractionPotential[p]
			if incidentPotential != nil {
				total += incidentPotential[p]
			}
			sum += total * complex(generalizedNormal(modeI, center, panel)*panel.Area, 0)
		}
		f[i] = complex(rho, 0) * sum
	}
	return f
}
