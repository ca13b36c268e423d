package field_test

import (
	"crypto/sha256"
	"testing"

	"github.com/dshills/fieldplan/pkg/field"
	"github.com/dshills/fieldplan/pkg/geometry"
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/rng"
)

func newRNG() *rng.RNG {
	hash := sha256.Sum256([]byte("field_test"))
	return rng.NewRNG(1, "fielder", hash[:])
}

// triangleGno returns gnomonic coordinates for a simple triangle (indices
// 0,1,2) plus one interior point (index 3).
func triangleGno() []geometry.Point {
	return []geometry.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
		{X: 2, Y: 2}, // interior
	}
}

func TestPopulateContentsFindsInteriorPortal(t *testing.T) {
	gno := triangleGno()
	f := field.New([3]int{0, 1, 2}, true)
	f.PopulateContents(gno)
	if len(f.Contents) != 1 || f.Contents[0] != 3 {
		t.Fatalf("expected contents [3], got %v", f.Contents)
	}
	if f.State != field.StateContentsPopulated {
		t.Fatalf("expected state contents-populated, got %v", f.State)
	}
}

func TestSplitProducesThreeChildrenWithExpectedVertices(t *testing.T) {
	f := field.New([3]int{0, 1, 2}, true)
	f.Contents = []int{3}
	f.Split(newRNG())

	if f.Splitter != 3 {
		t.Fatalf("expected splitter 3 (only candidate), got %d", f.Splitter)
	}
	if f.Children[0] == nil || f.Children[1] == nil || f.Children[2] == nil {
		t.Fatal("expected three children after split")
	}
	if f.Children[0].Vertices != [3]int{3, 1, 2} || !f.Children[0].Exterior {
		t.Fatalf("expected opposite child [splitter,v1,v2] marked exterior, got %+v", f.Children[0])
	}
	if f.Children[1].Vertices != [3]int{0, 1, 3} || f.Children[1].Exterior {
		t.Fatalf("unexpected child 1: %+v", f.Children[1])
	}
	if f.Children[2].Vertices != [3]int{0, 2, 3} || f.Children[2].Exterior {
		t.Fatalf("unexpected child 2: %+v", f.Children[2])
	}
}

func TestSplitNoOpWithoutContents(t *testing.T) {
	f := field.New([3]int{0, 1, 2}, true)
	f.Split(newRNG())
	if f.Children[0] != nil {
		t.Fatal("expected no children when contents is empty")
	}
	if f.State != field.StateSplit {
		t.Fatalf("expected state split even on no-op, got %v", f.State)
	}
}

func newTestGraph(n int) *linkgraph.Graph {
	sbul := make([]bool, n)
	keys := make([]int, n)
	return linkgraph.NewGraph(n, sbul, keys)
}

func TestBuildLinksChildlessTriangleAddsSingleReversibleEdge(t *testing.T) {
	g := newTestGraph(3)
	gno := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	f := field.New([3]int{0, 1, 2}, true)

	if err := f.BuildLinks(g, gno, newRNG()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NumEdges() != 1 {
		t.Fatalf("expected 1 edge after childless build_links, got %d", g.NumEdges())
	}
	e, ok := g.FindEitherDirection(2, 1)
	if !ok {
		t.Fatal("expected edge between vertices 1 and 2")
	}
	if !e.Reversible {
		t.Fatal("expected the base-case opposite edge to be reversible")
	}
}

func TestBuildLinksThenFinalLinksCompletesTriangle(t *testing.T) {
	g := newTestGraph(3)
	gno := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	f := field.New([3]int{0, 1, 2}, true)

	if err := f.BuildLinks(g, gno, newRNG()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.BuildFinalLinks(g, gno, newRNG()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NumEdges() != 3 {
		t.Fatalf("expected 3 edges for a complete triangle, got %d", g.NumEdges())
	}

	if err := f.AssignFieldsToLinks(g); err != nil {
		t.Fatalf("unexpected error annotating: %v", err)
	}

	var completing *linkgraph.Edge
	for _, e := range g.Edges() {
		if len(e.Fields) > 0 {
			completing = e
		}
	}
	if completing == nil {
		t.Fatal("expected exactly one edge to complete the field")
	}
	maxOrder := -1
	for _, e := range g.Edges() {
		if e.Order > maxOrder {
			maxOrder = e.Order
		}
	}
	if completing.Order != maxOrder {
		t.Fatalf("expected completing edge to have the maximal order %d, got %d", maxOrder, completing.Order)
	}
	if f.State != field.StateAnnotated {
		t.Fatalf("expected state annotated, got %v", f.State)
	}
}

func TestBuildLinksDeadendWhenNeighborsAlreadyCompleteTriangle(t *testing.T) {
	g := newTestGraph(3)
	gno := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	// Simulate neighbours having already placed all three edges.
	_, _ = g.AddEdge(0, 1, false)
	_, _ = g.AddEdge(0, 2, false)
	_, _ = g.AddEdge(1, 2, false)

	f := field.New([3]int{0, 1, 2}, true)
	if err := f.BuildLinks(g, gno, newRNG()); err == nil {
		t.Fatal("expected ErrDeadend when all three edges already exist")
	}
}

func TestResetClearsSubtreeToStateNew(t *testing.T) {
	f := field.New([3]int{0, 1, 2}, true)
	f.Contents = []int{3}
	f.Split(newRNG())
	f.Reset()

	if f.State != field.StateNew {
		t.Fatalf("expected state new after reset, got %v", f.State)
	}
	if f.Children[0] != nil || len(f.Contents) != 0 || f.Splitter != -1 {
		t.Fatalf("expected reset field to have no children/contents and splitter -1, got %+v", f)
	}
}
