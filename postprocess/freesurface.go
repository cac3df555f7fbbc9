package postprocess

import (
	"github.com/capytaine/go-capytaine/config"
	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/mesh"
)

// FreeSurfaceElevation evaluates the linear free-surface elevation
//
//	eta(x,y) = (i*omega/g) * Phi(x,y,0)
//
// at each requested observer point, where Phi is the monopole layer
// potential Phi(x) = sum_j sigma_j * G(x, x_j) * Area_j built from the same
// free-surface Green function used to assemble the influence matrix, so the
// elevation is evaluated at full near-field accuracy rather than only
// through the far-field Kochin asymptote.
func FreeSurfaceElevation(points [][2]float64, panels []mesh.Panel, sigma []complex128,
	params greenfunction.Parameters) ([]complex128, error) {

	evaluator := greenfunction.New(params.Method)
	eta := make([]complex128, len(points))
	g := params.Gravity
	if g == 0 {
		g = config.GravityAccel
	}
	factor := complex(0, params.Omega/g)

	for i, pt := range points {
		field := [3]float64{pt[0], pt[1], 0}
		var phi complex128
		for p, panel := range panels {
			source := [3]float64(panel.Centroid)
			eval, err := evaluator.Evaluate(params, field, source)
			if err != nil {
				return nil, err
			}
			value, _ := eval.Total()
			phi += sigma[p] * value * complex(panel.Area, 0)
		}
		eta[i] = factor * phi
	}
	return eta, nil
}
