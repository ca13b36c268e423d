// Package rng provides deterministic random number generation for the field
// planner.
//
// # Overview
//
// The RNG type ensures reproducible plans by deriving stage-specific seeds
// from a master seed. This allows each randomised pipeline stage (field
// building, agent routing) to have an independent random sequence while
// the overall plan remains reproducible given the same seed.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: top-level seed for the whole Generator
//   - stageName: pipeline stage identifier (e.g. "fielder")
//   - configHash: hash of the scenario configuration
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different stages get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
//	configHash, err := cfg.Hash()
//	if err != nil {
//		return err
//	}
//	fielderRNG := rng.NewRNG(masterSeed, "fielder", configHash)
//	routerRNG := rng.NewRNG(masterSeed, "router", configHash)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each Generator worker should own its
// own RNG instance, created before the worker goroutine starts.
package rng
