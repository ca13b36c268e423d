package planner_test

import (
	"errors"
	"testing"

	"github.com/dshills/fieldplan/pkg/planconfig"
	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/planner"
	"github.com/dshills/fieldplan/pkg/portal"
	"github.com/dshills/fieldplan/pkg/rng"
)

func trianglePortals() []portal.Portal {
	return []portal.Portal{
		{Name: "A", LonDeg: -122.41, LatDeg: 37.77},
		{Name: "B", LonDeg: -122.42, LatDeg: 37.78},
		{Name: "C", LonDeg: -122.40, LatDeg: 37.76},
	}
}

func squarePortals() []portal.Portal {
	return []portal.Portal{
		{Name: "A", LonDeg: -122.40, LatDeg: 37.76},
		{Name: "B", LonDeg: -122.41, LatDeg: 37.76},
		{Name: "C", LonDeg: -122.41, LatDeg: 37.77},
		{Name: "D", LonDeg: -122.40, LatDeg: 37.77},
	}
}

func testConfigHash(t *testing.T, cfg planconfig.Config) []byte {
	t.Helper()
	h, err := cfg.Hash()
	if err != nil {
		t.Fatalf("hashing config: %v", err)
	}
	return h
}

func TestGenerateTriangleProducesOneFieldThreeLinks(t *testing.T) {
	sc, err := portal.NewScenario(trianglePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)
	seed := planner.NewSeedGraph(sc)
	r := rng.NewRNG(1, "fielder-0", hash)

	result, err := planner.Generate(seed, sc, cfg, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Feasible {
		t.Fatal("expected a feasible result for a simple triangle")
	}
	if result.NumLinks != 3 {
		t.Fatalf("expected 3 links, got %d", result.NumLinks)
	}
	if result.NumFields != 1 {
		t.Fatalf("expected 1 field, got %d", result.NumFields)
	}
	if result.AP != result.APPortals+result.APLinks+result.APFields {
		t.Fatalf("AP breakdown does not sum: %+v", result)
	}
}

func TestGenerateIsDeterministicForASeed(t *testing.T) {
	sc, err := portal.NewScenario(squarePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)
	seed := planner.NewSeedGraph(sc)

	r1 := rng.NewRNG(42, "fielder-0", hash)
	res1, err := planner.Generate(seed, sc, cfg, r1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2 := rng.NewRNG(42, "fielder-0", hash)
	res2, err := planner.Generate(seed, sc, cfg, r2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res1.AP != res2.AP || res1.Length != res2.Length || res1.NumLinks != res2.NumLinks {
		t.Fatalf("expected identical seeds to produce identical plans, got %+v vs %+v", res1, res2)
	}
}

func TestOptimiseSequentialPicksAFeasiblePlan(t *testing.T) {
	sc, err := portal.NewScenario(squarePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	cfg.NumFieldIterations = 5
	cfg.WorkerPoolSize = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)

	result, err := planner.Optimise(sc, cfg, 7, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Feasible || result.Graph == nil {
		t.Fatal("expected a feasible winning plan")
	}
}

func TestOptimiseWorkerPoolMatchesSequentialScore(t *testing.T) {
	sc, err := portal.NewScenario(squarePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	cfg.NumFieldIterations = 8
	cfg.WorkerPoolSize = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)
	seq, err := planner.Optimise(sc, cfg, 99, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.WorkerPoolSize = 4
	pooled, err := planner.Optimise(sc, cfg, 99, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seq.AP != pooled.AP || seq.Length != pooled.Length {
		t.Fatalf("expected worker pool fan-out to reach the same best score, got %+v vs %+v", seq, pooled)
	}
}

func TestSummaryAndFieldsByDepthForASimpleTriangle(t *testing.T) {
	sc, err := portal.NewScenario(trianglePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)
	seed := planner.NewSeedGraph(sc)
	r := rng.NewRNG(3, "fielder-0", hash)

	result, err := planner.Generate(seed, sc, cfg, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := result.Summary(len(sc.Portals))
	if s.NumPortals != 3 || s.NumLinks != result.NumLinks || s.APTotal != result.AP {
		t.Fatalf("summary does not reflect the result: %+v vs %+v", s, result)
	}

	levels := result.FieldsByDepth()
	if len(levels) == 0 || len(levels[0]) != 1 {
		t.Fatalf("expected exactly one root field at depth 0, got %+v", levels)
	}
}

// TestGenerateOverCapReturnsTriangulationFailed pins every portal's
// outgoing-link capacity at 1, which caps the whole graph at 4 directed
// edges total (one per portal). Triangulating a quadrilateral perimeter
// needs 4 perimeter links plus a diagonal, 5 edges, so every permutation
// the Fielder tries exhausts its reversibility rescues and backtracks
// through the entire search: scenario S5 of spec.md §8.
func TestGenerateOverCapReturnsTriangulationFailed(t *testing.T) {
	sc, err := portal.NewScenario(squarePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	cfg.Constants.OutgoingLimit = 1
	cfg.Constants.OutgoingLimitSBUL = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)
	seed := planner.NewSeedGraph(sc)
	r := rng.NewRNG(1, "fielder-0", hash)

	_, err = planner.Generate(seed, sc, cfg, r)
	if err == nil {
		t.Fatal("expected an over-cap quadrilateral to fail to triangulate")
	}
	if !errors.Is(err, planerr.ErrTriangulationFailed) {
		t.Fatalf("expected ErrTriangulationFailed, got %v", err)
	}
}

// TestOptimiseOverCapReturnsTriangulationFailed checks the same over-cap
// scenario propagates through Optimise once every attempt fails.
func TestOptimiseOverCapReturnsTriangulationFailed(t *testing.T) {
	sc, err := portal.NewScenario(squarePortals())
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}
	cfg := planconfig.Default()
	cfg.Constants.OutgoingLimit = 1
	cfg.Constants.OutgoingLimitSBUL = 1
	cfg.NumFieldIterations = 3
	cfg.WorkerPoolSize = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	hash := testConfigHash(t, cfg)

	_, err = planner.Optimise(sc, cfg, 5, hash)
	if !errors.Is(err, planerr.ErrTriangulationFailed) {
		t.Fatalf("expected ErrTriangulationFailed, got %v", err)
	}
}

func TestOptimiseHashSensitivity(t *testing.T) {
	cfgA := planconfig.Default()
	cfgB := planconfig.Default()
	cfgB.NumAgents = 2
	if err := cfgA.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	if err := cfgB.Validate(); err != nil {
		t.Fatalf("validating config: %v", err)
	}
	ha := testConfigHash(t, cfgA)
	hb := testConfigHash(t, cfgB)
	if string(ha) == string(hb) {
		t.Fatal("expected differing configs to hash differently")
	}
}
