package reorder

import "github.com/dshills/fieldplan/pkg/linkgraph"

// OriginGroupingPass walks the ordered edge list once. For any edge that
// completes no field, it tries to move the edge earlier to sit at the
// first earlier occurrence of an edge with the same origin. Failing
// that, if the edge is reversible and there is an earlier edge whose
// origin matches this edge's destination, and that destination has
// outgoing capacity, the edge is flipped and moved there instead. Order
// is reassigned densely once the full pass completes.
func OriginGroupingPass(g *linkgraph.Graph) {
	links := append([]*linkgraph.Edge(nil), g.Edges()...)
	n := len(links)

	for i := 0; i < n; i++ {
		link := links[i]
		if len(link.Fields) > 0 {
			continue
		}

		first := indexOfOrigin(links, link.From)
		if first < i {
			moveTo(links, i, first)
			continue
		}

		if !link.Reversible {
			continue
		}
		altFirst := indexOfOrigin(links, link.To)
		if altFirst >= 0 && altFirst < i && g.HasCapacity(link.To) {
			_ = g.ReverseEdge(link.From, link.To)
			moveTo(links, i, altFirst)
		}
	}

	g.SetOrder(links)
}

func indexOfOrigin(links []*linkgraph.Edge, origin int) int {
	for j, e := range links {
		if e.From == origin {
			return j
		}
	}
	return -1
}

// moveTo relocates the element at index from to index to (to < from),
// shifting the intervening elements right by one, mirroring Python's
// list.insert(to, list.pop(from)).
func moveTo(links []*linkgraph.Edge, from, to int) {
	e := links[from]
	copy(links[to+1:from+1], links[to:from])
	links[to] = e
}

// PathLength sums the great-circle distance between consecutive origin
// portals across the full ordered edge list.
func PathLength(g *linkgraph.Graph, dists [][]int) int {
	links := g.Edges()
	total := 0
	for i := 0; i+1 < len(links); i++ {
		total += dists[links[i].From][links[i+1].From]
	}
	return total
}
