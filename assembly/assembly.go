// Package assembly builds the complex influence matrices (source strength
// S and its normal derivative D) that the linear solver suite consumes,
// by evaluating the free-surface Green function between every pair of
// panel collocation points and the source panel surface.
//
// Grounded on the teacher's BaseGreenFunction.initMatrices and
// getColocationPointsAndNormals (green_functions/abstract.go), which built
// the N x N mat.CDense matrices and read centroids/normals off a MeshLike
// but never filled them in (AbstractGreenFunction.Evaluate was the
// teacher's placeholder); this package performs the real per-pair
// integration and the near/far-field quadrature switch named in
// spec.md §4.3.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package assembly

import (
	"context"
	"fmt"
	"runtime"

	"github.com/capytaine/go-capytaine/bemerr"
	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/mesh"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/mat"
)

// InfluenceMatrix holds the assembled source (S) and normal-derivative (D)
// matrices for one omega/method/depth combination, per spec.md §3.
type InfluenceMatrix struct {
	S *mat.CDense
	D *mat.CDense
}

// Options configures Assemble.
type Options struct {
	Method      greenfunction.Method
	Omega       float64
	Depth       float64
	Tolerance   float64
	MaxPoints   int
	MemoryLimit uint64 // bytes; 0 means no explicit ceiling
	MaxWorkers  int    // 0 means runtime.GOMAXPROCS(0)

	// NearFieldFactor * sqrt(panel area) is the distance below which a
	// panel pair is integrated with the near-field quadrature rule rather
	// than the single-point far-field rule, per spec.md §4.3.
	NearFieldFactor float64
	QuadratureOrder int // nodes per axis of the near-field Duffy quadrature
}

func (o Options) normalize() Options {
	if o.NearFieldFactor <= 0 {
		o.NearFieldFactor = 4.0
	}
	if o.QuadratureOrder <= 0 {
		o.QuadratureOrder = 4
	}
	return o
}

// Assemble builds the N x N influence matrices for the given mesh,
// fanning the row computation out across goroutines bounded by
// opts.MaxWorkers via golang.org/x/sync/errgroup and
// golang.org/x/sync/semaphore, per spec.md §5 concurrency model.
func Assemble(ctx context.Context, m *mesh.Mesh, opts Options) (*InfluenceMatrix, error) {
	opts = opts.normalize()
	panels, err := m.Panels()
	if err != nil {
		return nil, err
	}
	n := len(panels)

	if opts.MemoryLimit > 0 {
		estimate := 2 * 16 * uint64(n) * uint64(n) // two complex128 N x N matrices
		if estimate > opts.MemoryLimit {
			return nil, bemerr.New(bemerr.OutOfBudget,
				fmt.Sprintf("assembly of a %d x %d system needs ~%d bytes, exceeding the %d byte limit", n, n, estimate, opts.MemoryLimit))
		}
	}

	S := mat.NewCDense(n, n, nil)
	D := mat.NewCDense(n, n, nil)

	evaluator := greenfunction.New(opts.Method)
	params := greenfunction.Parameters{
		Method:    opts.Method,
		Omega:     opts.Omega,
		Depth:     opts.Depth,
		Tolerance: opts.Tolerance,
		MaxPoints: opts.MaxPoints,
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(maxWorkers))

	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			return assembleRow(gctx, evaluator, params, panels, i, opts, S, D)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &InfluenceMatrix{S: S, D: D}, nil
}

func assembleRow(ctx context.Context, evaluator greenfunction.Evaluator, params greenfunction.Parameters,
	panels []mesh.Panel, row int, opts Options, S, D *mat.CDense) error {

	if err := ctx.Err(); err != nil {
		return err
	}
	field := panels[row]
	n := len(panels)
	for col := 0; col < n; col++ {
		if row == col {
			s, d := selfTerm(field)
			S.Set(row, col, s)
			D.Set(row, col, d)
			continue
		}
		source := panels[col]
		s, d, err := pairInfluence(evaluator, params, field, source, opts)
		if err != nil {
			return err
		}
		S.Set(row, col, s)
		D.Set(row, col, d)
	}
	return nil
}
