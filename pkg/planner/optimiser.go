package planner

import (
	"fmt"
	"sync"

	"github.com/dshills/fieldplan/pkg/planconfig"
	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/portal"
	"github.com/dshills/fieldplan/pkg/rng"
)

// Optimise runs cfg.NumFieldIterations independent Generate attempts over
// the scenario — sequentially if cfg.WorkerPoolSize is 1, otherwise fanned
// out across a fixed-size worker pool — and keeps the one that ranks best:
// highest AP, then shortest single-agent walking length, then fewest keys
// needed. Each attempt owns its own cloned graph and its own RNG derived
// from masterSeed and its iteration index, so no state is shared between
// workers. It fails only if every attempt came back infeasible.
func Optimise(sc *portal.Scenario, cfg planconfig.Config, masterSeed uint64, configHash []byte) (PlanResult, error) {
	seed := NewSeedGraph(sc)

	results := make([]PlanResult, cfg.NumFieldIterations)
	feasible := make([]bool, cfg.NumFieldIterations)

	run := func(i int) {
		stage := fmt.Sprintf("fielder-%d", i)
		r := rng.NewRNG(masterSeed, stage, configHash)
		res, err := Generate(seed, sc, cfg, r)
		if err != nil {
			return
		}
		results[i] = res
		feasible[i] = true
	}

	if cfg.WorkerPoolSize <= 1 {
		for i := 0; i < cfg.NumFieldIterations; i++ {
			run(i)
		}
	} else {
		sem := make(chan struct{}, cfg.WorkerPoolSize)
		var wg sync.WaitGroup
		for i := 0; i < cfg.NumFieldIterations; i++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				run(i)
			}(i)
		}
		wg.Wait()
	}

	best := -1
	for i := range results {
		if !feasible[i] {
			continue
		}
		if best == -1 || ranksBetter(results[i], results[best]) {
			best = i
		}
	}
	if best == -1 {
		return PlanResult{}, fmt.Errorf("every field generation attempt failed to converge: %w", planerr.ErrTriangulationFailed)
	}
	return results[best], nil
}

// ranksBetter reports whether a is strictly preferable to b: higher AP
// first, then shorter walking length, then fewer keys needed.
func ranksBetter(a, b PlanResult) bool {
	if a.AP != b.AP {
		return a.AP > b.AP
	}
	if a.Length != b.Length {
		return a.Length < b.Length
	}
	return a.MaxKeys < b.MaxKeys
}
