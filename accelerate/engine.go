// Package accelerate selects and runs the assembly acceleration strategy:
// the mandatory Standard (dense, CPU) engine, and three declared-but-
// unimplemented accelerators (FastMultipole, HierarchicalMatrix, Adaptive)
// that fall back to Standard explicitly and observably rather than
// silently, per spec.md §4.5/§9.
//
// Grounded on original_source/gpu/src/fallback.rs and lib.rs, which
// implement the same "declare an accelerated path, fall back to the CPU
// engine, log that the fallback happened" pattern this package follows.
//
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package accelerate

import (
	"context"
	"log/slog"

	"github.com/capytaine/go-capytaine/assembly"
	"github.com/capytaine/go-capytaine/config"
	"github.com/capytaine/go-capytaine/mesh"
)

// Engine assembles the influence matrices for a mesh under one
// acceleration strategy.
type Engine interface {
	Kind() config.EngineKind
	Assemble(ctx context.Context, m *mesh.Mesh, opts assembly.Options) (*assembly.InfluenceMatrix, error)
}

// Standard is the mandatory dense CPU assembly path; every other Engine in
// this package ultimately delegates to one.
type Standard struct{}

func (Standard) Kind() config.EngineKind { return config.Standard }

func (Standard) Assemble(ctx context.Context, m *mesh.Mesh, opts assembly.Options) (*assembly.InfluenceMatrix, error) {
	return assembly.Assemble(ctx, m, opts)
}

// fallbackEngine wraps Standard for an accelerator that is declared but
// not implemented, logging the fallback via log/slog on every Assemble
// call, matching the teacher stack's ambient logging choice
// (see SPEC_FULL.md's ambient stack section).
type fallbackEngine struct {
	kind   config.EngineKind
	reason string
}

func (f fallbackEngine) Kind() config.EngineKind { return f.kind }

func (f fallbackEngine) Assemble(ctx context.Context, m *mesh.Mesh, opts assembly.Options) (*assembly.InfluenceMatrix, error) {
	slog.WarnContext(ctx, "accelerator unavailable, falling back to standard engine",
		"requested_engine", string(f.kind), "reason", f.reason)
	return Standard{}.Assemble(ctx, m, opts)
}

// FastMultipole, HierarchicalMatrix, and Adaptive are declared per
// spec.md's engine taxonomy; none has a CPU-cluster/GPU backend in this
// repository, so each always falls back to Standard with a named reason
// rather than panicking or silently degrading.
func FastMultipole() Engine {
	return fallbackEngine{kind: config.FastMultipole, reason: "fast multipole tree code not built"}
}

func HierarchicalMatrix() Engine {
	return fallbackEngine{kind: config.HierarchicalMatrix, reason: "hierarchical matrix compression not built"}
}

func Adaptive() Engine {
	return fallbackEngine{kind: config.Adaptive, reason: "adaptive engine selection not built"}
}

// ChooseEngine applies the panel-count/memory threshold named in
// spec.md §4.5: below cfg.GPUPanelThreshold panels, or when no GPU memory
// budget is configured, the Standard engine always runs regardless of
// what was requested, since there is no accelerated backend to route to.
// The second return value is non-empty whenever the requested engine was
// overridden, so callers can log it without treating a routine fallback
// as a failed call.
func ChooseEngine(cfg config.Config, nPanels int) (Engine, string) {
	if cfg.Engine == config.Standard {
		return Standard{}, ""
	}
	if nPanels < cfg.GPUPanelThreshold || cfg.GPUMemoryLimit == 0 {
		return Standard{}, "panel count below threshold or no accelerator memory budget configured"
	}
	switch cfg.Engine {
	case config.FastMultipole:
		return FastMultipole(), ""
	case config.HierarchicalMatrix:
		return HierarchicalMatrix(), ""
	case config.Adaptive:
		return Adaptive(), ""
	default:
		return Standard{}, "unrecognised engine kind"
	}
}
