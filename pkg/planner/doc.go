// Package planner drives one end-to-end fielding attempt over a scenario's
// seed graph — triangulate, annotate, reorder for single-agent walking
// distance — and the Optimiser that runs many such attempts and keeps the
// best one. A single Generate call never shares graph state with another:
// every attempt clones the seed graph and owns its clone exclusively, so the
// Optimiser can fan attempts out across a worker pool with no locking.
package planner
