package postprocess

import (
	"context"

	"github.com/capytaine/go-capytaine/linsolve"
	"gonum.org/v1/gonum/mat"
)

// RAO solves the 6x6 rigid-body equation of motion
//
//	[-omega^2 (M+A(omega)) - i*omega*B(omega) + C + K] * xi(omega,beta) = F(omega,beta)
//
// for the response amplitude operator xi, given the mass matrix M, the
// hydrodynamic added-mass/damping matrices A/B at this frequency, the
// hydrostatic stiffness C, an optional mooring stiffness K (may be the zero
// matrix), and the excitation force F. The system is small and fixed-size,
// so it is solved directly via the same dense complex LU used for the
// influence-matrix solves rather than through the iterative suite.
func RAO(omega float64, mass, added, damping, hydrostatic, mooring [6][6]float64, excitation [6]complex128) ([6]complex128, error) {
	a := mat.NewCDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			stiffness := hydrostatic[i][j] + mooring[i][j]
			real := -omega*omega*(mass[i][j]+added[i][j]) + stiffness
			imagPart := -omega * damping[i][j]
			a.Set(i, j, complex(real, imagPart))
		}
	}
	b := make([]complex128, 6)
	copy(b, excitation[:])

	result, err := linsolve.Solve(context.Background(), a, b, linsolve.Options{Strategy: linsolve.LU})
	if err != nil {
		return [6]complex128{}, err
	}
	var xi [6]complex128
	copy(xi[:], result.X)
	return xi, nil
}
