package field

import (
	"fmt"

	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/planerr"
)

// TryAddLink is the Field Builder's edge-placement policy. It places a
// link between p and q, in priority order:
//  1. Refuse silently if the pair is already adjacent in either direction.
//  2. If p has outgoing capacity, add p->q.
//  3. Else if reversible and q has outgoing capacity, add q->p.
//  4. Else attempt to free capacity at p: flip the first reversible
//     outgoing edge of p whose destination has spare capacity (that edge
//     keeps its order slot), then add p->q.
//  5. Else, symmetrically, if reversible, attempt to free capacity at q.
//  6. Otherwise fail with ErrDeadend.
func TryAddLink(g *linkgraph.Graph, p, q int, reversible bool) error {
	if g.HasEdge(p, q) {
		return nil
	}

	if g.HasCapacity(p) {
		_, err := g.AddEdge(p, q, reversible)
		return err
	}

	if reversible && g.HasCapacity(q) {
		_, err := g.AddEdge(q, p, reversible)
		return err
	}

	if freed := freeOutgoingCapacity(g, p); freed {
		_, err := g.AddEdge(p, q, reversible)
		return err
	}

	if reversible {
		if freed := freeOutgoingCapacity(g, q); freed {
			_, err := g.AddEdge(q, p, reversible)
			return err
		}
	}

	return fmt.Errorf("no placement possible between %d and %d: %w", p, q, planerr.ErrDeadend)
}

// freeOutgoingCapacity scans the outgoing edges of p in order and flips
// the first reversible one whose destination has spare outgoing
// capacity, freeing one outgoing slot at p. The flipped edge keeps its
// order slot. Reports whether a slot was freed.
func freeOutgoingCapacity(g *linkgraph.Graph, p int) bool {
	for _, e := range g.Edges() {
		if e.From != p || !e.Reversible {
			continue
		}
		if g.HasCapacity(e.To) {
			_ = g.ReverseEdge(e.From, e.To)
			return true
		}
	}
	return false
}
