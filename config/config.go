// Package config binds the engine-wide configuration options enumerated in
// the specification: engine selection, solver tolerances, iteration caps,
// parallelism, memory ceiling, and Green function parameters.
//
// The shape mirrors the teacher green-function package's own parameter
// struct: a plain struct plus a Default*() constructor, generalised here to
// the whole engine and exposed additionally through functional options so
// call sites can override only what they need.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package config

import (
	"math"
	"time"
)

// EngineKind selects the assembly/solve acceleration strategy. Only
// Standard is mandatory; the others are acceleration strategies that must
// not change results beyond documented tolerance, and fall back to Standard
// when unavailable.
type EngineKind string

const (
	Standard           EngineKind = "standard"
	FastMultipole      EngineKind = "fast_multipole"
	HierarchicalMatrix EngineKind = "hierarchical_matrix"
	Adaptive           EngineKind = "adaptive"
)

// GreenFunctionMethod selects the free-surface Green function evaluator.
type GreenFunctionMethod string

const (
	Delhommeau      GreenFunctionMethod = "delhommeau"
	HAMS            GreenFunctionMethod = "hams"
	LiangWuNoblesse GreenFunctionMethod = "liang_wu_noblesse"
)

// GreenFunctionConfig holds the green_function.* options from spec.md §6.
type GreenFunctionConfig struct {
	Method    GreenFunctionMethod
	Depth     float64 // +Inf for deep water
	Tolerance float64
	MaxPoints int
}

// DefaultGreenFunctionConfig returns the deep-water Delhommeau default.
func DefaultGreenFunctionConfig() GreenFunctionConfig {
	return GreenFunctionConfig{
		Method:    Delhommeau,
		Depth:     math.Inf(1),
		Tolerance: 1e-8,
		MaxPoints: 10000,
	}
}

// Config is the full set of core options a caller can set; it has no
// knowledge of file formats, servers, or exporters (those live outside the
// core, per spec.md §1).
type Config struct {
	Engine            EngineKind
	Tolerance         float64 // outer assembly-agreement tolerance, default 1e-6
	SolverTolerance   float64 // linear-solver stop criterion, default 1e-10
	MaxIterations     int
	Parallel          bool
	MaxWorkers        int
	MemoryLimit       uint64        // bytes; 0 means "no explicit ceiling"
	Budget            time.Duration // 0 means "no wall-clock budget"
	GreenFunction     GreenFunctionConfig
	GPUMemoryLimit    uint64 // bytes available to an accelerator, if any
	GPUPanelThreshold int    // panel count below which the CPU path always runs
}

// Option mutates a Config being built by New.
type Option func(*Config)

// Default returns the engine defaults named throughout spec.md §4/§6.
func Default() Config {
	return Config{
		Engine:            Standard,
		Tolerance:         1e-6,
		SolverTolerance:   1e-10,
		MaxIterations:     1000,
		Parallel:          true,
		MaxWorkers:        0, // 0 => runtime.GOMAXPROCS(0)
		MemoryLimit:       0,
		Budget:            0,
		GreenFunction:     DefaultGreenFunctionConfig(),
		GPUMemoryLimit:    0,
		GPUPanelThreshold: 100,
	}
}

// New builds a Config from the defaults plus any options.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithEngine(e EngineKind) Option       { return func(c *Config) { c.Engine = e } }
func WithTolerance(t float64) Option       { return func(c *Config) { c.Tolerance = t } }
func WithSolverTolerance(t float64) Option { return func(c *Config) { c.SolverTolerance = t } }
func WithMaxIterations(n int) Option       { return func(c *Config) { c.MaxIterations = n } }
func WithParallel(p bool) Option           { return func(c *Config) { c.Parallel = p } }
func WithMaxWorkers(n int) Option          { return func(c *Config) { c.MaxWorkers = n } }
func WithMemoryLimit(bytes uint64) Option  { return func(c *Config) { c.MemoryLimit = bytes } }
func WithBudget(d time.Duration) Option    { return func(c *Config) { c.Budget = d } }
func WithGreenFunction(g GreenFunctionConfig) Option {
	return func(c *Config) { c.GreenFunction = g }
}

// GravityAccel is the gravitational acceleration used throughout the engine,
// matching the teacher's green-function Gravity constant.
const GravityAccel = 9.81
