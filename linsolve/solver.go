// Package linsolve implements the dense linear solver suite the problem
// orchestrator uses to solve the BEM influence-matrix system Ax=b: direct
// LU and Cholesky factorisations, and the iterative GMRES(k), CG, and
// BiCGSTAB methods, behind one uniform Strategy-tagged Solve contract.
//
// Grounded on original_source/matrices/src/solvers.rs, which implements
// the same five methods in the Saad ("Iterative Methods for Sparse Linear
// Systems") formulation this package follows; gonum.org/v1/gonum/mat's
// complex type (mat.CDense) is storage-only (no factorisation routines
// for complex matrices), so the factorisations and iterative kernels below
// are hand-written — see DESIGN.md for the stdlib/hand-rolled
// justification.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package linsolve

import (
	"context"

	"github.com/capytaine/go-capytaine/bemerr"
	"gonum.org/v1/gonum/mat"
)

// Strategy is the closed set of solver methods a caller can request.
type Strategy string

const (
	LU       Strategy = "lu"
	Cholesky Strategy = "cholesky"
	GMRES    Strategy = "gmres"
	CG       Strategy = "cg"
	BiCGSTAB Strategy = "bicgstab"
)

// Options configures a Solve call. Zero values are replaced by sane
// defaults in normalize.
type Options struct {
	Strategy      Strategy
	Tolerance     float64 // iterative stopping residual, default 1e-10
	MaxIterations int     // default 1000
	Restart       int     // GMRES(k) restart length, default min(N, 50)

	// AutoRetry, when true, retries a direct-solver breakdown once with
	// GMRES(Restart) before returning an error. It is false in the zero
	// value of Options, and Solve then returns the breakdown without a retry.
	AutoRetry bool
}

func (o Options) normalize() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-10
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = 1000
	}
	if o.Restart <= 0 {
		o.Restart = 30
	}
	return o
}

// Result is the outcome of a Solve call.
type Result struct {
	X           []complex128
	Strategy    Strategy // the strategy that actually produced X
	Iterations  int
	Residual    float64
	AutoRetried bool // true when a requested direct solve broke down and GMRES retried it
}

// Solve dispatches to the requested strategy, applying the context's
// deadline/cancellation to the iterative methods between iterations.
func Solve(ctx context.Context, A *mat.CDense, b []complex128, opts Options) (Result, error) {
	n, _ := A.Dims()
	if opts.Restart <= 0 {
		opts.Restart = min(n, 50)
	}
	opts = opts.normalize()
	if n != len(b) {
		return Result{}, bemerr.New(bemerr.InputValidation, "matrix/rhs dimension mismatch")
	}

	switch opts.Strategy {
	case Cholesky:
		x, err := choleskySolve(A, b)
		if err != nil && bemerr.Is(err, bemerr.NumericalBreakdown) && opts.AutoRetry {
			return retryWithGMRES(ctx, A, b, opts, err)
		}
		if err != nil {
			return Result{}, err
		}
		return Result{X: x, Strategy: Cholesky}, nil

	case GMRES:
		return gmres(ctx, A, b, opts)

	case CG:
		return cg(ctx, A, b, opts)

	case BiCGSTAB:
		return bicgstab(ctx, A, b, opts)

	default: // LU
		x, err := luSolve(A, b)
		if err != nil && bemerr.Is(err, bemerr.NumericalBreakdown) && opts.AutoRetry {
			return retryWithGMRES(ctx, A, b, opts, err)
		}
		if err != nil {
			return Result{}, err
		}
		return Result{X: x, Strategy: LU}, nil
	}
}

func retryWithGMRES(ctx context.Context, A *mat.CDense, b []complex128, opts Options, cause error) (Result, error) {
	opts.Strategy = GMRES
	res, err := gmres(ctx, A, b, opts)
	if err != nil {
		return Result{}, bemerr.Wrap(bemerr.NumericalBreakdown, "direct solve broke down and GMRES retry failed", err)
	}
	res.AutoRetried = true
	return res, nil
}
