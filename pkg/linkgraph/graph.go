package linkgraph

import (
	"fmt"

	"github.com/dshills/fieldplan/pkg/planerr"
)

// Dependency is a predecessor requirement on an edge's Depends list: either
// a specific edge (From, To) or a node, meaning "every outgoing edge from
// that node must precede this one".
type Dependency struct {
	IsEdge bool
	From   int
	To     int
	Node   int
}

// EdgeDependency builds an edge-form Dependency.
func EdgeDependency(from, to int) Dependency {
	return Dependency{IsEdge: true, From: from, To: to}
}

// NodeDependency builds a node-form Dependency.
func NodeDependency(node int) Dependency {
	return Dependency{IsEdge: false, Node: node}
}

// Triangle is an ordered triple of portal indices identifying a field.
type Triangle [3]int

// Edge is a directed link between two portals, carrying the attributes
// the Field Builder, Reorderer and Router all read and mutate: its dense
// build-order position, whether it may be flipped, the fields it
// completes, and the dependencies that must precede it.
type Edge struct {
	From       int
	To         int
	Order      int
	Reversible bool
	Fields     []Triangle
	Depends    []Dependency
}

// Graph is a directed multigraph over dense node indices 0..N-1. Outgoing
// capacity per node is governed by the node's SBUL flag (see
// portal.Portal.OutgoingLimit). Edge lookup is by a from->to map, O(1)
// average case.
type Graph struct {
	NumNodes int
	SBUL     []bool
	Keys     []int

	baseLimit int
	sbulLimit int

	out       []map[int]*Edge // out[from][to] = edge
	linkOrder []*Edge         // dense, ordered by Edge.Order
}

const (
	outgoingLimit     = 8
	outgoingLimitSBUL = 40
)

// NewGraph creates an empty graph over numNodes portals with the given
// per-node SBUL flags and initial key counts, using the spec-default
// outgoing-link caps. Use SetLimits to override them from a config.
func NewGraph(numNodes int, sbul []bool, keys []int) *Graph {
	g := &Graph{
		NumNodes:  numNodes,
		SBUL:      append([]bool(nil), sbul...),
		Keys:      append([]int(nil), keys...),
		baseLimit: outgoingLimit,
		sbulLimit: outgoingLimitSBUL,
		out:       make([]map[int]*Edge, numNodes),
	}
	for i := range g.out {
		g.out[i] = make(map[int]*Edge)
	}
	return g
}

// SetLimits overrides the base and SBUL outgoing-link caps, letting a
// caller honor a non-default planconfig.Constants.
func (g *Graph) SetLimits(base, sbul int) {
	g.baseLimit = base
	g.sbulLimit = sbul
}

// OutgoingLimit returns the maximum outgoing degree allowed at node p.
func (g *Graph) OutgoingLimit(p int) int {
	if g.SBUL[p] {
		return g.sbulLimit
	}
	return g.baseLimit
}

// OutDegree returns the number of edges currently originating at p.
func (g *Graph) OutDegree(p int) int {
	return len(g.out[p])
}

// HasCapacity reports whether p may originate another outgoing edge.
func (g *Graph) HasCapacity(p int) bool {
	return g.OutDegree(p) < g.OutgoingLimit(p)
}

// HasEdge reports whether an edge exists between p and q in either
// direction.
func (g *Graph) HasEdge(p, q int) bool {
	if _, ok := g.out[p][q]; ok {
		return true
	}
	_, ok := g.out[q][p]
	return ok
}

// GetEdge returns the edge from p to q (that exact direction only), if
// any.
func (g *Graph) GetEdge(p, q int) (*Edge, bool) {
	e, ok := g.out[p][q]
	return e, ok
}

// FindEitherDirection returns the edge between p and q regardless of
// orientation, if any.
func (g *Graph) FindEitherDirection(p, q int) (*Edge, bool) {
	if e, ok := g.out[p][q]; ok {
		return e, true
	}
	if e, ok := g.out[q][p]; ok {
		return e, true
	}
	return nil, false
}

// AddEdge places a new directed edge p->q with a freshly assigned dense
// order slot at the end of link_order. It fails with ErrDuplicateEdge if
// (p,q) or (q,p) already exists; it does not check outgoing capacity —
// callers (the Field Builder's placement policy) are responsible for that.
func (g *Graph) AddEdge(p, q int, reversible bool) (*Edge, error) {
	if g.HasEdge(p, q) {
		return nil, fmt.Errorf("edge between %d and %d already exists: %w", p, q, planerr.ErrDuplicateEdge)
	}
	e := &Edge{From: p, To: q, Order: len(g.linkOrder), Reversible: reversible}
	g.out[p][q] = e
	g.linkOrder = append(g.linkOrder, e)
	return e, nil
}

// ReverseEdge flips the edge from p to q into one from q to p, preserving
// its Order slot (and therefore its position in link_order), Reversible
// flag, Fields and Depends.
func (g *Graph) ReverseEdge(p, q int) error {
	e, ok := g.out[p][q]
	if !ok {
		return fmt.Errorf("no edge from %d to %d to reverse: %w", p, q, planerr.ErrInternalInvariant)
	}
	delete(g.out[p], q)
	e.From, e.To = q, p
	g.out[q][p] = e
	return nil
}

// NumEdges returns the number of edges currently in the graph.
func (g *Graph) NumEdges() int {
	return len(g.linkOrder)
}

// EdgeAt returns the edge currently occupying the given order slot.
func (g *Graph) EdgeAt(order int) *Edge {
	return g.linkOrder[order]
}

// Edges returns the dense, order-sorted edge list. The returned slice
// shares storage with the graph's internal state and must not be mutated
// by the caller beyond the Edge fields themselves.
func (g *Graph) Edges() []*Edge {
	return g.linkOrder
}

// TruncateFrom removes every edge whose Order is >= index, regardless of
// current orientation (a reversed edge may occupy any removed slot). This
// is the bulk-truncation primitive the Field Builder uses to backtrack to
// a snapshot taken before a failed placement attempt.
func (g *Graph) TruncateFrom(index int) {
	for i := index; i < len(g.linkOrder); i++ {
		e := g.linkOrder[i]
		delete(g.out[e.From], e.To)
	}
	g.linkOrder = g.linkOrder[:index]
}

// RenumberOrder reassigns dense Order values 0..len-1 matching the
// current link_order slice, used after a reordering pass relocates
// edges within the slice.
func (g *Graph) RenumberOrder() {
	for i, e := range g.linkOrder {
		e.Order = i
	}
}

// SetOrder replaces the link_order slice wholesale (used by the
// Reorderer after computing a new arrangement) and renumbers Order to
// match.
func (g *Graph) SetOrder(edges []*Edge) {
	g.linkOrder = edges
	g.RenumberOrder()
}

// ClearAnnotations clears Fields and Depends on every edge, used before
// re-deriving field/dependency annotations from firstgen_fields.
func (g *Graph) ClearAnnotations() {
	for _, e := range g.linkOrder {
		e.Fields = nil
		e.Depends = nil
	}
}

// Clone returns a deep copy of the graph: distinct Edge objects, distinct
// adjacency maps, distinct link_order slice, so that a Generator can own
// its copy exclusively with no shared mutable state with any other
// Generator's copy.
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		NumNodes:  g.NumNodes,
		SBUL:      append([]bool(nil), g.SBUL...),
		Keys:      append([]int(nil), g.Keys...),
		baseLimit: g.baseLimit,
		sbulLimit: g.sbulLimit,
		out:       make([]map[int]*Edge, g.NumNodes),
	}
	edgeCopy := make(map[*Edge]*Edge, len(g.linkOrder))
	cp.linkOrder = make([]*Edge, len(g.linkOrder))
	for i, e := range g.linkOrder {
		ne := &Edge{
			From:       e.From,
			To:         e.To,
			Order:      e.Order,
			Reversible: e.Reversible,
			Fields:     append([]Triangle(nil), e.Fields...),
			Depends:    append([]Dependency(nil), e.Depends...),
		}
		edgeCopy[e] = ne
		cp.linkOrder[i] = ne
	}
	for n := 0; n < g.NumNodes; n++ {
		cp.out[n] = make(map[int]*Edge, len(g.out[n]))
		for to, e := range g.out[n] {
			cp.out[n][to] = edgeCopy[e]
		}
	}
	return cp
}
