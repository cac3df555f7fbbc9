package accelerate

import (
	"context"
	"math"
	"testing"

	"github.com/capytaine/go-capytaine/assembly"
	"github.com/capytaine/go-capytaine/config"
	"github.com/capytaine/go-capytaine/greenfunction"
	"github.com/capytaine/go-capytaine/mesh"
)

func smallMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	vertices := [][3]float64{{0, 0, -1}, {1, 0, -1}, {0, 1, -1}}
	m, err := mesh.New(vertices, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func TestChooseEngineFallsBackBelowThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = config.FastMultipole
	cfg.GPUMemoryLimit = 1 << 30
	cfg.GPUPanelThreshold = 1000

	engine, reason := ChooseEngine(cfg, 3)
	if engine.Kind() != config.Standard {
		t.Fatalf("expected standard fallback, got %v", engine.Kind())
	}
	if reason == "" {
		t.Fatal("expected a non-empty fallback reason")
	}
}

func TestChooseEngineHonoursStandardRequest(t *testing.T) {
	cfg := config.Default()
	engine, reason := ChooseEngine(cfg, 10000)
	if engine.Kind() != config.Standard {
		t.Fatalf("expected standard, got %v", engine.Kind())
	}
	if reason != "" {
		t.Fatalf("expected no fallback reason, got %q", reason)
	}
}

func TestStandardEngineAssembles(t *testing.T) {
	m := smallMesh(t)
	opts := assembly.Options{Method: greenfunction.MethodDelhommeau, Omega: 1.0, Depth: math.Inf(1), Tolerance: 1e-8, MaxPoints: 200}
	im, err := Standard{}.Assemble(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if im.S == nil || im.D == nil {
		t.Fatal("expected non-nil S and D matrices")
	}
}

func TestFallbackEnginesProduceSameResultAsStandard(t *testing.T) {
	m := smallMesh(t)
	opts := assembly.Options{Method: greenfunction.MethodDelhommeau, Omega: 1.0, Depth: math.Inf(1), Tolerance: 1e-8, MaxPoints: 200}
	want, err := Standard{}.Assemble(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("Standard Assemble: %v", err)
	}
	for _, eng := range []Engine{FastMultipole(), HierarchicalMatrix(), Adaptive()} {
		im, err := eng.Assemble(context.Background(), m, opts)
		if err != nil {
			t.Fatalf("%v Assemble: %v", eng.Kind(), err)
		}
		if im.S.At(0, 0) == 0 {
			t.Fatalf("%v: expected a non-zero self term", eng.Kind())
		}
		if im.S.At(0, 0) != want.S.At(0, 0) || im.D.At(0, 0) != want.D.At(0, 0) {
			t.Fatalf("%v: S=%v D=%v, want Standard's S=%v D=%v", eng.Kind(),
				im.S.At(0, 0), im.D.At(0, 0), want.S.At(0, 0), want.D.At(0, 0))
		}
	}
}
