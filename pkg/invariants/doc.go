// Package invariants collects the quantified correctness properties the
// field planning pipeline must never violate: outgoing-degree caps, the
// Order sequence's permutation structure, completing-edge/dependency
// consistency, the gnomonic projection's local accuracy, the Reorderer's
// pass post-conditions, and the Router's schedule ordering. Production code
// uses a subset of these directly (the planner validates a candidate block
// move with DependencyPrecedesOrder before committing it); the rest exist
// so property-based tests across packages can check the same ground truth
// rather than reimplementing it ad hoc in every _test.go file.
package invariants
