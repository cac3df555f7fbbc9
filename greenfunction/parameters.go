// Package greenfunction evaluates the free-surface frequency-domain Green
// function G(x,x';omega,h) and its gradient, in three method variants
// (Delhommeau, HAMS, LiangWuNoblesse), plus the Rankine singular parts the
// assembler needs to apply self-term treatment separately.
//
// Grounded on the teacher package (green_functions/abstract.go,
// green_functions/delhommeau.go, green_functions/hams.go,
// green_functions/fingreen3d.go) and on original_source/green_functions/src
// for the method split. Unlike the teacher's placeholder Evaluate methods
// (which built zero-filled matrices and left the kernel as TODO), every
// method here performs the real evaluation described in spec.md §4.2.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package greenfunction

import (
	"math"

	"github.com/capytaine/go-capytaine/bemerr"
	"github.com/capytaine/go-capytaine/config"
)

// Method is the closed set of Green function evaluation strategies. The
// outer per-omega dispatch switches on Method; the inner hot path below is
// monomorphic, per spec.md §9.
type Method string

const (
	MethodDelhommeau      Method = "delhommeau"
	MethodHAMS            Method = "hams"
	MethodLiangWuNoblesse Method = "liang_wu_noblesse"
)

// Parameters bundles the inputs that fully determine a Green function
// evaluation, per spec.md §3 GreenFunctionParameters.
type Parameters struct {
	Method    Method
	Omega     float64
	Depth     float64 // positive finite, or +Inf for deep water
	Tolerance float64 // series/quadrature truncation tolerance
	MaxPoints int     // truncation bound for HAMS-style series

	Gravity float64 // defaults to config.GravityAccel when zero
}

// ParametersFromConfig builds Parameters from a config.Config's
// green_function.* options and a problem's omega.
func ParametersFromConfig(cfg config.GreenFunctionConfig, omega float64) Parameters {
	var method Method
	switch cfg.Method {
	case config.HAMS:
		method = MethodHAMS
	case config.LiangWuNoblesse:
		method = MethodLiangWuNoblesse
	default:
		method = MethodDelhommeau
	}
	return Parameters{
		Method:    method,
		Omega:     omega,
		Depth:     cfg.Depth,
		Tolerance: cfg.Tolerance,
		MaxPoints: cfg.MaxPoints,
		Gravity:   config.GravityAccel,
	}
}

func (p Parameters) validate() error {
	if p.Omega <= 0 {
		return bemerr.New(bemerr.InputValidation, "omega must be strictly positive").WithOmega(p.Omega)
	}
	if p.Depth <= 0 {
		return bemerr.New(bemerr.InputValidation, "depth must be positive or +Inf")
	}
	return nil
}

func (p Parameters) gravity() float64 {
	if p.Gravity == 0 {
		return config.GravityAccel
	}
	return p.Gravity
}

func (p Parameters) tolerance() float64 {
	if p.Tolerance <= 0 {
		return 1e-8
	}
	return p.Tolerance
}

func (p Parameters) maxPoints() int {
	if p.MaxPoints <= 0 {
		return 10000
	}
	return p.MaxPoints
}

// deepWater reports whether Depth should be treated as infinite.
func (p Parameters) deepWater() bool {
	return math.IsInf(p.Depth, 1)
}

// Evaluation is the full output of a single-point Green function
// evaluation: the wave part G and its gradient, plus the Rankine source
// 1/r and mirror-Rankine 1/r' singular parts and their gradients, returned
// separately so the assembler can apply near/diagonal self-term treatment
// to the singular parts while integrating the (smooth) wave part normally,
// per spec.md §4.2.
type Evaluation struct {
	Wave        complex128
	WaveGrad    [3]complex128
	Rankine     float64    // 1/r
	RankineGrad [3]float64 // gradient of 1/r w.r.t. field point x
	Mirror      float64    // 1/r'
	MirrorGrad  [3]float64 // gradient of 1/r' w.r.t. field point x
}

// Total returns the combined Green function value and gradient (wave part
// plus both Rankine parts), the quantity used directly when the assembler
// does not need the singular parts isolated.
func (e Evaluation) Total() (complex128, [3]complex128) {
	g := e.Wave + complex(e.Rankine+e.Mirror, 0)
	var grad [3]complex128
	for i := 0; i < 3; i++ {
		grad[i] = e.WaveGrad[i] + complex(e.RankineGrad[i]+e.MirrorGrad[i], 0)
	}
	return g, grad
}

// Evaluator computes the free-surface Green function between a source point
// x' and a field point x. Implementations are pure (no hidden state) and
// safe for concurrent use by multiple goroutines, per spec.md §4.2.
type Evaluator interface {
	Evaluate(params Parameters, field, source [3]float64) (Evaluation, error)
	Method() Method
}

// New returns the Evaluator for the given method.
func New(method Method) Evaluator {
	switch method {
	case MethodHAMS:
		return HAMS{}
	case MethodLiangWuNoblesse:
		return LiangWuNoblesse{}
	default:
		return Delhommeau{}
	}
}
