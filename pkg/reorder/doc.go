// Package reorder implements the two independent link-ordering passes:
// a local origin-grouping pass that lets an agent make consecutive links
// from one stop, and a global dependency-safe block-move pass that
// relocates contiguous runs of links to reduce total single-agent
// walking distance. Both work on linkgraph.Graph's edge order, reading
// the existing Fields/Depends annotations (the origin pass may also
// reverse a reversible edge); neither re-derives those annotations —
// that is the caller's job after a block move changes which edge of a
// field has the maximal Order.
package reorder
