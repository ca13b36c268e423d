package fielder

import (
	"errors"
	"fmt"

	"github.com/dshills/fieldplan/pkg/field"
	"github.com/dshills/fieldplan/pkg/geometry"
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/rng"
)

// NFieldAttempts bounds how many times a single candidate triangle is
// retried (with fresh randomness for anchor and splitter choice) before
// the Fielder gives up on it and moves to the next permutation.
const NFieldAttempts = 100

// Fielder owns the graph being fielded and the first-generation field
// roots produced so far.
type Fielder struct {
	Graph          *linkgraph.Graph
	Gno            []geometry.Point
	FirstGenFields []*field.Field
}

// New creates a Fielder over g, whose links it will place, using gno for
// every point-in-triangle test.
func New(g *linkgraph.Graph, gno []geometry.Point) *Fielder {
	return &Fielder{Graph: g, Gno: gno}
}

// Run triangulates the full convex-hull perimeter, returning
// ErrTriangulationFailed if every random permutation at the top level is
// exhausted without converging.
func (fd *Fielder) Run(perimPortals []int, r *rng.RNG) error {
	ok, err := fd.MakeFields(perimPortals, r)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("exhausted all perimeter permutations: %w", planerr.ErrTriangulationFailed)
	}
	return nil
}

// MakeFields recursively fields the given perimeter. Base case: fewer
// than three perimeter portals remain, trivially successful. Otherwise
// it tries every perimeter portal (random order) as the seed of a new
// triangle with its two perimeter neighbours, retries a deadend on that
// triangle up to NFieldAttempts times, and on success recurses on the
// perimeter with that portal removed. The first successful permutation
// wins; if none succeed the whole level fails and the caller must roll
// back. A non-deadend error is fatal and propagates immediately.
func (fd *Fielder) MakeFields(perimPortals []int, r *rng.RNG) (bool, error) {
	numPerim := len(perimPortals)
	if numPerim < 3 {
		return true, nil
	}

	numLinks := fd.Graph.NumEdges()
	numFirstGen := len(fd.FirstGenFields)

	for _, i := range r.Permutation(numPerim) {
		prev := perimPortals[(i-1+numPerim)%numPerim]
		next := perimPortals[(i+1)%numPerim]
		cur := perimPortals[i]

		candidates := [3]int{cur, prev, next}
		var verts [3]int
		for k, idx := range r.Permutation(3) {
			verts[k] = candidates[idx]
		}
		fld := field.New(verts, true)

		succeeded, fatalErr := fd.tryBuildTriangle(fld, numLinks, numFirstGen, r)
		if fatalErr != nil {
			return false, fatalErr
		}
		if !succeeded {
			continue
		}

		newPerim := removeValue(perimPortals, cur)
		ok, err := fd.MakeFields(newPerim, r)
		if err != nil {
			return false, err
		}
		if !ok {
			fd.reset(numLinks, numFirstGen)
			continue
		}

		fd.FirstGenFields = append(fd.FirstGenFields, fld)
		return true, nil
	}

	return false, nil
}

func (fd *Fielder) tryBuildTriangle(fld *field.Field, numLinks, numFirstGen int, r *rng.RNG) (bool, error) {
	for attempt := 0; attempt < NFieldAttempts; attempt++ {
		err := fld.BuildLinks(fd.Graph, fd.Gno, r)
		if err == nil {
			err = fld.BuildFinalLinks(fd.Graph, fd.Gno, r)
		}
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, planerr.ErrDeadend) {
			return false, err
		}
		fd.reset(numLinks, numFirstGen)
		fld.Reset()
	}
	return false, nil
}

func (fd *Fielder) reset(numLinks, numFirstGen int) {
	fd.Graph.TruncateFrom(numLinks)
	fd.FirstGenFields = fd.FirstGenFields[:numFirstGen]
}

func removeValue(perim []int, v int) []int {
	out := make([]int, 0, len(perim)-1)
	for _, p := range perim {
		if p != v {
			out = append(out, p)
		}
	}
	return out
}
