// Package linkgraph implements the directed multigraph of portal links:
// dense node indexing 0..N-1, O(log N) edge lookup by (from, to), and the
// mutators (AddEdge, ReverseEdge, bulk truncation) the Field Builder uses
// to place and backtrack links. It knows nothing about triangles, fields,
// or routing — those live in pkg/field, pkg/fielder, and pkg/router,
// layered on top of the primitives here.
package linkgraph
