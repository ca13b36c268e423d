// Package planconfig holds the YAML-serialisable configuration for a
// planning run: agent count, the Optimiser's iteration budget, the
// Router's solution-count and wall-clock budgets, and the game-rule
// constants (outgoing-link caps, AP rewards, walk speed, link/comm
// times) with their spec defaults, each independently overridable. Its
// Hash feeds pkg/rng's per-stage seed derivation so that two runs over
// an identical config (and identical master seed) reproduce the same
// plan.
package planconfig
