package field

import (
	"fmt"

	"github.com/dshills/fieldplan/pkg/geometry"
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/rng"
)

// State is a Field's position in its build lifecycle. Transitions are
// forward-only; Reset rolls an entire first-generation subtree back to
// StateNew.
type State int

const (
	StateNew State = iota
	StateContentsPopulated
	StateSplit
	StateBuiltNonFinal
	StateBuiltFinal
	StateAnnotated
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateContentsPopulated:
		return "contents-populated"
	case StateSplit:
		return "split"
	case StateBuiltNonFinal:
		return "built-non-final"
	case StateBuiltFinal:
		return "built-final"
	case StateAnnotated:
		return "annotated"
	default:
		return "unknown"
	}
}

// Field is a triangular region bounded by three portals. Vertices[0] is
// the anchor ("nose") portal: for a non-exterior field, the two edges
// incident on it (the "jet" links) are built last.
type Field struct {
	Vertices [3]int
	Exterior bool
	Contents []int
	Splitter int // -1 if this field has not been split
	Children [3]*Field
	State    State
}

// New creates a field over the given vertex triple. vertices[0] is the
// anchor.
func New(vertices [3]int, exterior bool) *Field {
	return &Field{Vertices: vertices, Exterior: exterior, Splitter: -1, State: StateNew}
}

// PopulateContents finds every portal strictly interior to this field's
// triangle, using the gnomonic projection and the point-in-triangle
// predicate.
func (f *Field) PopulateContents(gno []geometry.Point) {
	a, b, c := gno[f.Vertices[0]], gno[f.Vertices[1]], gno[f.Vertices[2]]
	f.Contents = f.Contents[:0]
	for i, p := range gno {
		if i == f.Vertices[0] || i == f.Vertices[1] || i == f.Vertices[2] {
			continue
		}
		if geometry.PointInTriangle(p, a, b, c) {
			f.Contents = append(f.Contents, i)
		}
	}
	f.State = StateContentsPopulated
}

// Split picks a random interior portal as the splitter and produces three
// children: the anchor-opposite child (marked exterior, since it can be
// built independently of the rest of the tree) and the two children
// sharing the anchor. A no-op if there are no interior portals.
func (f *Field) Split(r *rng.RNG) {
	if len(f.Contents) == 0 {
		f.State = StateSplit
		return
	}
	f.Splitter = f.Contents[r.Intn(len(f.Contents))]

	f.Children[0] = New([3]int{f.Splitter, f.Vertices[1], f.Vertices[2]}, true)
	f.Children[1] = New([3]int{f.Vertices[0], f.Vertices[1], f.Splitter}, false)
	f.Children[2] = New([3]int{f.Vertices[0], f.Vertices[2], f.Splitter}, false)
	f.State = StateSplit
}

// BuildLinks builds every link within this field except its two jet
// links. If the field's two anchor-incident edges already exist (placed
// while building a neighbouring field) and its third edge also exists,
// this field has been ambiguously completed by its neighbours and
// BuildLinks fails with ErrDeadend.
func (f *Field) BuildLinks(g *linkgraph.Graph, gno []geometry.Point, r *rng.RNG) error {
	v0, v1, v2 := f.Vertices[0], f.Vertices[1], f.Vertices[2]
	if g.HasEdge(v0, v1) && g.HasEdge(v0, v2) && g.HasEdge(v1, v2) {
		return fmt.Errorf("field %v completed by neighbor(s): %w", f.Vertices, planerr.ErrDeadend)
	}

	if len(f.Contents) == 0 && f.State < StateContentsPopulated {
		f.PopulateContents(gno)
	}
	f.Split(r)

	if f.Children[0] == nil {
		if err := TryAddLink(g, v2, v1, true); err != nil {
			return err
		}
	} else {
		if err := f.Children[0].BuildLinks(g, gno, r); err != nil {
			return err
		}
		if err := f.Children[0].BuildFinalLinks(g, gno, r); err != nil {
			return err
		}
		if err := f.Children[1].BuildLinks(g, gno, r); err != nil {
			return err
		}
		if err := f.Children[2].BuildLinks(g, gno, r); err != nil {
			return err
		}
	}
	f.State = StateBuiltNonFinal
	return nil
}

// BuildFinalLinks adds this field's two jet links (anchor-incident,
// reversible iff the field is exterior) and recurses into the two
// anchor-sharing children, if any.
func (f *Field) BuildFinalLinks(g *linkgraph.Graph, gno []geometry.Point, r *rng.RNG) error {
	v0, v1, v2 := f.Vertices[0], f.Vertices[1], f.Vertices[2]
	if f.Exterior {
		if err := TryAddLink(g, v1, v0, true); err != nil {
			return err
		}
		if err := TryAddLink(g, v2, v0, true); err != nil {
			return err
		}
	} else {
		if err := TryAddLink(g, v0, v1, false); err != nil {
			return err
		}
		if err := TryAddLink(g, v0, v2, false); err != nil {
			return err
		}
	}

	if f.Children[0] != nil {
		if err := f.Children[1].BuildFinalLinks(g, gno, r); err != nil {
			return err
		}
		if err := f.Children[2].BuildFinalLinks(g, gno, r); err != nil {
			return err
		}
	}
	f.State = StateBuiltFinal
	return nil
}

type linkPair struct {
	a, b int
}

// AssignFieldsToLinks walks the field tree, annotating each field before
// recursing into its children: it identifies for each field the edge
// with maximal Order among its three (that edge
// "completes" the field) and appending the vertex triple to its Fields
// list. Non-exterior fields make the completing edge depend on its two
// companion edges; exterior fields with children make it depend only on
// the anchor-opposite edge. Once the children are annotated, every
// interior portal of the field is appended to the completing edge's
// Depends.
func (f *Field) AssignFieldsToLinks(g *linkgraph.Graph) error {
	v := f.Vertices
	var links []linkPair
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if _, ok := g.GetEdge(v[i], v[j]); ok {
				links = append(links, linkPair{v[i], v[j]})
			}
		}
	}
	if len(links) != 3 {
		return fmt.Errorf("field %v has %d edges, want 3: %w", v, len(links), planerr.ErrInternalInvariant)
	}

	lastIdx := 0
	lastEdge, _ := g.GetEdge(links[0].a, links[0].b)
	for i := 1; i < len(links); i++ {
		e, _ := g.GetEdge(links[i].a, links[i].b)
		if e.Order > lastEdge.Order {
			lastEdge = e
			lastIdx = i
		}
	}
	lastEdge.Fields = append(lastEdge.Fields, linkgraph.Triangle{v[0], v[1], v[2]})

	if !f.Exterior {
		for i, l := range links {
			if i == lastIdx {
				continue
			}
			lastEdge.Depends = append(lastEdge.Depends, linkgraph.EdgeDependency(l.a, l.b))
		}
	} else if f.Children[0] != nil {
		for _, l := range links {
			if l.a != v[0] && l.b != v[0] {
				lastEdge.Depends = append(lastEdge.Depends, linkgraph.EdgeDependency(l.a, l.b))
				break
			}
		}
	}

	for _, child := range f.Children {
		if child == nil {
			continue
		}
		if err := child.AssignFieldsToLinks(g); err != nil {
			return err
		}
	}

	for _, c := range f.Contents {
		lastEdge.Depends = append(lastEdge.Depends, linkgraph.NodeDependency(c))
	}
	f.State = StateAnnotated
	return nil
}

// Reset rolls this field and its entire subtree back to StateNew,
// clearing contents, splitter and children, used when a build attempt
// fails and the Fielder backtracks to a snapshot.
func (f *Field) Reset() {
	f.Contents = nil
	f.Splitter = -1
	f.Children = [3]*Field{}
	f.State = StateNew
}
