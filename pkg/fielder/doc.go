// Package fielder implements the recursive, backtracking construction of
// a first-generation triangulation over a convex-hull perimeter: at each
// level it tries every perimeter portal (in random order) as the seed of
// a new triangle with its two neighbours, retries a deadend locally up
// to NFieldAttempts times, and recurses on the reduced perimeter before
// committing. Failure of an entire level rolls the graph and the
// first-generation field list back to a snapshot taken before the
// attempt.
package fielder
