package invariants

import (
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/reorder"
)

// OutgoingDegreeWithinLimit reports whether every node's outgoing degree
// respects its SBUL-dependent cap.
func OutgoingDegreeWithinLimit(g *linkgraph.Graph) bool {
	for p := 0; p < g.NumNodes; p++ {
		if g.OutDegree(p) > g.OutgoingLimit(p) {
			return false
		}
	}
	return true
}

// OrderIsPermutation reports whether every edge's Order forms a dense
// permutation of 0..NumEdges-1 with no gaps or repeats.
func OrderIsPermutation(g *linkgraph.Graph) bool {
	n := g.NumEdges()
	seen := make([]bool, n)
	for _, e := range g.Edges() {
		if e.Order < 0 || e.Order >= n || seen[e.Order] {
			return false
		}
		seen[e.Order] = true
	}
	return true
}

// CompletingEdgeHasMaxOrder reports whether, for every field recorded on an
// edge, that edge's Order is the maximum among the field's three edges —
// the edge that "completes" a field must be the last of its three built.
func CompletingEdgeHasMaxOrder(g *linkgraph.Graph) bool {
	for _, e := range g.Edges() {
		for _, tri := range e.Fields {
			for i := 0; i < 3; i++ {
				for j := i + 1; j < 3; j++ {
					other, ok := g.FindEitherDirection(tri[i], tri[j])
					if !ok {
						continue
					}
					if other != e && other.Order > e.Order {
						return false
					}
				}
			}
		}
	}
	return true
}

// DependencyPrecedesOrder reports whether every edge's Depends list is
// satisfied by the graph's current Order. It is the same check the
// Generator uses to validate a candidate block move before committing it.
func DependencyPrecedesOrder(g *linkgraph.Graph) bool {
	return reorder.DependenciesRespectOrder(g)
}

// ReversalPreservesOrderSlot reverses the edge between from and to in
// place and reports whether its Order slot and position in the dense
// edge list were preserved across the flip. It mutates g; callers
// checking this as a property should operate on a disposable clone.
func ReversalPreservesOrderSlot(g *linkgraph.Graph, from, to int) bool {
	e, ok := g.GetEdge(from, to)
	if !ok {
		return false
	}
	before := e.Order
	if err := g.ReverseEdge(from, to); err != nil {
		return false
	}
	return e.Order == before && g.EdgeAt(before) == e
}

// OriginGroupingConverged reports whether every edge that completes no
// field either has no earlier edge sharing its origin or sits directly
// beside an edge with the same origin — the post-condition
// reorder.OriginGroupingPass establishes.
func OriginGroupingConverged(g *linkgraph.Graph) bool {
	edges := g.Edges()
	for i, e := range edges {
		if len(e.Fields) > 0 {
			continue
		}
		if (i > 0 && edges[i-1].From == e.From) || (i+1 < len(edges) && edges[i+1].From == e.From) {
			continue
		}
		for j := 0; j < i; j++ {
			if edges[j].From == e.From {
				return false
			}
		}
	}
	return true
}

// BlockMoveDeltaMatchesRecompute reports whether reorder's incremental
// path-length delta for move m exactly matches a full recomputation after
// actually applying it to a clone of g — the shortcut calcNewLength takes
// must never drift from ground truth.
func BlockMoveDeltaMatchesRecompute(g *linkgraph.Graph, dists [][]int, m reorder.Move) bool {
	predicted := reorder.PredictedLength(g, dists, m)
	clone := g.Clone()
	reorder.ApplyMove(clone, m)
	actual := reorder.PathLength(clone, dists)
	return predicted == actual
}
