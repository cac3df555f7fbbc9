package problem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/capytaine/go-capytaine/accelerate"
	"github.com/capytaine/go-capytaine/assembly"
	"github.com/capytaine/go-capytaine/bemerr"
	"github.com/capytaine/go-capytaine/config"
	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/linsolve"
	"github.com/capytaine/go-capytaine/mesh"
	"golang.org/x/sync/errgroup"
)

// ModeResult is the solution for one radiation mode or the diffraction
// problem: the source strength distribution sigma solving D*sigma=v_n,
// the resulting velocity potential phi=S*sigma on the boundary, and the
// solver diagnostics that produced sigma.
type ModeResult struct {
	Source    []complex128
	Potential []complex128
	Solver    linsolve.Result
}

// Result is the outcome of one Orchestrator.Solve call. Modes is keyed by
// DOF.String() for radiation modes and by "diffraction" for the
// diffraction problem; a Combined specification populates every key it
// was asked to solve.
type Result struct {
	Omega float64
	Kind  Kind
	Modes map[string]ModeResult
}

type factorKey struct {
	omega, depth float64
	method       greenfunction.Method
}

// Orchestrator drives one or more solves against a shared LU factor cache
// keyed by (omega, depth, method), so a Combined problem's radiation modes
// and diffraction problem reuse a single factorisation instead of paying
// the O(n^3) elimination cost once per right-hand side, per spec.md §4.4.
//
// Grounded on original_source/bem/src/engines.rs (StandardBEMEngine),
// whose placeholder solve returned a zero vector with no factor reuse at
// all.
type Orchestrator struct {
	Config         config.Config
	SolverStrategy linsolve.Strategy // default linsolve.LU

	mu    sync.Mutex
	cache map[factorKey]*linsolve.Factorization
}

func NewOrchestrator(cfg config.Config) *Orchestrator {
	return &Orchestrator{Config: cfg, SolverStrategy: linsolve.LU, cache: make(map[factorKey]*linsolve.Factorization)}
}

func (o *Orchestrator) greenMethod() greenfunction.Method {
	switch o.Config.GreenFunction.Method {
	case config.HAMS:
		return greenfunction.MethodHAMS
	case config.LiangWuNoblesse:
		return greenfunction.MethodLiangWuNoblesse
	default:
		return greenfunction.MethodDelhommeau
	}
}

// Solve assembles the influence matrices for m at spec.Omega/spec.Depth,
// factorises the system once, and solves every right-hand side the
// specification requires.
func (o *Orchestrator) Solve(ctx context.Context, m *mesh.Mesh, spec Specification) (Result, error) {
	if spec.Omega <= 0 {
		return Result{}, bemerr.New(bemerr.InputValidation, "omega must be strictly positive").WithOmega(spec.Omega)
	}

	method := o.greenMethod()
	engine, fallbackReason := accelerate.ChooseEngine(o.Config, m.NbFaces())
	if fallbackReason != "" {
		slog.InfoContext(ctx, "engine fallback", "requested", string(o.Config.Engine), "reason", fallbackReason)
	}

	assembleOpts := assembly.Options{
		Method:      method,
		Omega:       spec.Omega,
		Depth:       spec.Depth,
		Tolerance:   o.Config.GreenFunction.Tolerance,
		MaxPoints:   o.Config.GreenFunction.MaxPoints,
		MemoryLimit: o.Config.MemoryLimit,
		MaxWorkers:  o.Config.MaxWorkers,
	}
	im, err := engine.Assemble(ctx, m, assembleOpts)
	if err != nil {
		return Result{}, err
	}

	factorization, err := o.factorization(factorKey{spec.Omega, spec.Depth, method}, im)
	if err != nil {
		return Result{}, err
	}

	panels, err := m.Panels()
	if err != nil {
		return Result{}, err
	}

	modes, includeDiffraction, err := rhsPlan(spec)
	if err != nil {
		return Result{}, err
	}

	result := Result{Omega: spec.Omega, Kind: spec.Kind, Modes: make(map[string]ModeResult)}
	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)

	solveOne := func(name string, rhs []complex128) error {
		mr, err := o.solveRHS(gctx, im, factorization, rhs)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		mu.Lock()
		result.Modes[name] = mr
		mu.Unlock()
		return nil
	}

	for _, mode := range modes {
		mode := mode
		group.Go(func() error {
			rhs := buildRadiationRHS(mode, spec.RotationCenter, panels)
			return solveOne(mode.String(), rhs)
		})
	}
	if includeDiffraction {
		group.Go(func() error {
			k := greenfunction.WaveNumber(spec.Omega, spec.Depth, config.GravityAccel)
			rhs := buildDiffractionRHS(spec, k, panels)
			return solveOne("diffraction", rhs)
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// rhsPlan reports which radiation modes to solve and whether the
// diffraction problem is also part of this specification.
func rhsPlan(spec Specification) ([]DOF, bool, error) {
	switch spec.Kind {
	case Radiation:
		return []DOF{spec.Mode}, false, nil
	case Diffraction:
		return nil, true, nil
	case Combined:
		return spec.RadiationModes, spec.IncludeDiffraction, nil
	default:
		return nil, false, bemerr.New(bemerr.InputValidation, fmt.Sprintf("unknown problem kind %q", spec.Kind))
	}
}

func (o *Orchestrator) factorization(key factorKey, im *assembly.InfluenceMatrix) (*linsolve.Factorization, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if f, ok := o.cache[key]; ok {
		return f, nil
	}
	f, err := linsolve.Factorize(im.D)
	if err != nil {
		return nil, err
	}
	o.cache[key] = f
	return f, nil
}

func (o *Orchestrator) solveRHS(ctx context.Context, im *assembly.InfluenceMatrix, f *linsolve.Factorization,
	rhs []complex128) (ModeResult, error) {

	var sigma []complex128
	var solverResult linsolve.Result
	var err error
	if o.SolverStrategy == linsolve.LU {
		sigma, err = f.Solve(rhs)
		solverResult = linsolve.Result{X: sigma, Strategy: linsolve.LU}
	} else {
		opts := linsolve.Options{
			Strategy:      o.SolverStrategy,
			Tolerance:     o.Config.SolverTolerance,
			MaxIterations: o.Config.MaxIterations,
		}
		solverResult, err = linsolve.Solve(ctx, im.D, rhs, opts)
		sigma = solverResult.X
	}
	if err != nil {
		return ModeResult{}, err
	}

	potential := matVecCDense(im.S, sigma)
	return ModeResult{Source: sigma, Potential: potential, Solver: solverResult}, nil
}
