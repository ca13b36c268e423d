package reorder

import "github.com/dshills/fieldplan/pkg/linkgraph"

// DependenciesRespectOrder reports whether every edge's Depends list is
// satisfied by the graph's current Order: an edge-form dependency must name
// an edge whose Order is strictly less than the dependent edge's, and a
// node-form dependency requires every edge originating at that node to
// precede the dependent edge. A block move that relocates a dependent edge
// ahead of something it depends on fails this check; the planner uses it to
// validate a candidate move before committing, falling back to the next
// candidate otherwise.
func DependenciesRespectOrder(g *linkgraph.Graph) bool {
	edges := g.Edges()
	for _, e := range edges {
		for _, d := range e.Depends {
			if d.IsEdge {
				de, ok := g.GetEdge(d.From, d.To)
				if ok && de.Order >= e.Order {
					return false
				}
				continue
			}
			for _, other := range edges {
				if other.From == d.Node && other.Order >= e.Order {
					return false
				}
			}
		}
	}
	return true
}
