package invariants

import (
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/router"
)

// AssignmentsRespectDependencyOrder reports whether, for every edge with a
// recorded dependency, the assignment that builds it arrives no earlier
// than the assignment that builds whatever it depends on. The Router only
// imposes a strict wait between adjacent origin groups, so this checks the
// weaker, always-guaranteed ordering rather than a full wait-for-depart
// bound between arbitrarily distant links.
func AssignmentsRespectDependencyOrder(g *linkgraph.Graph, assignments []router.Assignment) bool {
	type key struct{ from, to int }
	byLink := make(map[key]router.Assignment, len(assignments))
	for _, a := range assignments {
		byLink[key{a.Location, a.Link}] = a
	}

	for _, e := range g.Edges() {
		self, ok := byLink[key{e.From, e.To}]
		if !ok {
			continue
		}
		for _, d := range e.Depends {
			if d.IsEdge {
				dep, ok := byLink[key{d.From, d.To}]
				if ok && self.Arrive < dep.Arrive {
					return false
				}
				continue
			}
			for _, other := range g.Edges() {
				if other.From != d.Node {
					continue
				}
				dep, ok := byLink[key{other.From, other.To}]
				if ok && self.Arrive < dep.Arrive {
					return false
				}
			}
		}
	}
	return true
}

// AssignmentsSortedByArrive reports whether assignments are in
// non-decreasing order of Arrive, the Router's documented output order.
func AssignmentsSortedByArrive(assignments []router.Assignment) bool {
	for i := 1; i < len(assignments); i++ {
		if assignments[i].Arrive < assignments[i-1].Arrive {
			return false
		}
	}
	return true
}
