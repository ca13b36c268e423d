// Package router assigns the link-building graph's ordered links to a
// fleet of agents and schedules their walking routes to minimize total
// build time. With a single agent the build order is already fixed by the
// graph's dense Order and the schedule is a straight walk. With more than
// one agent this is a constrained vehicle-routing problem: links sharing
// an origin are compressed into one visit, a dummy depot lets every agent
// start and finish anywhere, and a dependency between adjacent compressed
// visits forces the later one to wait for the earlier one's links to be
// built and communicated (a looser, non-conflicting pair may proceed in
// parallel). The solver is a randomized local search bounded by a
// solution-count and wall-clock budget, seeded from a naive round-robin
// assignment, since there is no constraint-programming library in the
// dependency set to reach for instead.
package router
