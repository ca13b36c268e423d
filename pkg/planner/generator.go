package planner

import (
	"github.com/dshills/fieldplan/pkg/field"
	"github.com/dshills/fieldplan/pkg/fielder"
	"github.com/dshills/fieldplan/pkg/invariants"
	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/planconfig"
	"github.com/dshills/fieldplan/pkg/portal"
	"github.com/dshills/fieldplan/pkg/reorder"
	"github.com/dshills/fieldplan/pkg/rng"
)

// PlanResult is one Generator attempt's completed fielding plan together
// with every attribute the Optimiser ranks candidates by. Feasible is false
// only when the Fielder never converged on a full triangulation; every
// other field is meaningless in that case.
type PlanResult struct {
	Feasible bool
	Graph    *linkgraph.Graph
	// FirstGen holds the root of each first-generation field's split tree,
	// the same depth-ordered structure the original redraw tooling walks.
	FirstGen []*field.Field

	MaxKeys   int
	NumLinks  int
	NumFields int
	Length    int

	APPortals int
	APLinks   int
	APFields  int
	AP        int
}

// Summary is a plain, json-serialisable projection of a PlanResult for an
// external collaborator (CLI printer, report writer) that has no business
// holding a *linkgraph.Graph.
type Summary struct {
	NumPortals  int `json:"num_portals"`
	NumLinks    int `json:"num_links"`
	NumFields   int `json:"num_fields"`
	MaxKeys     int `json:"max_keys"`
	Length      int `json:"length_meters"`
	APPortals   int `json:"ap_portals"`
	APLinks     int `json:"ap_links"`
	APFields    int `json:"ap_fields"`
	APTotal     int `json:"ap_total"`
}

// Summary projects r into its external, graph-free representation.
func (r PlanResult) Summary(numPortals int) Summary {
	return Summary{
		NumPortals: numPortals,
		NumLinks:   r.NumLinks,
		NumFields:  r.NumFields,
		MaxKeys:    r.MaxKeys,
		Length:     r.Length,
		APPortals:  r.APPortals,
		APLinks:    r.APLinks,
		APFields:   r.APFields,
		APTotal:    r.AP,
	}
}

// FieldsByDepth walks every first-generation field's split tree and groups
// its nodes by depth from the root, the shape the original plotting tool
// redraws layer by layer (shallow fields first).
func (r PlanResult) FieldsByDepth() [][]*field.Field {
	var levels [][]*field.Field
	var walk func(f *field.Field, depth int)
	walk = func(f *field.Field, depth int) {
		if f == nil {
			return
		}
		for len(levels) <= depth {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], f)
		for _, c := range f.Children {
			walk(c, depth+1)
		}
	}
	for _, root := range r.FirstGen {
		walk(root, 0)
	}
	return levels
}

// NewSeedGraph builds the empty link graph for a scenario: one node per
// portal, carrying its SBUL flag and initial key count, with no edges.
func NewSeedGraph(sc *portal.Scenario) *linkgraph.Graph {
	sbul := make([]bool, len(sc.Portals))
	keys := make([]int, len(sc.Portals))
	for i, p := range sc.Portals {
		sbul[i] = p.SBUL
		keys[i] = p.Keys
	}
	return linkgraph.NewGraph(len(sc.Portals), sbul, keys)
}

// resetAnnotations clears every edge's Fields and Depends and re-derives
// them from scratch by walking each first-generation field's tree. Reorder
// passes relocate edges within the dense Order sequence; whatever
// annotations they carried no longer mean anything until this runs again.
func resetAnnotations(g *linkgraph.Graph, firstGen []*field.Field) error {
	g.ClearAnnotations()
	for _, fld := range firstGen {
		if err := fld.AssignFieldsToLinks(g); err != nil {
			return err
		}
	}
	return nil
}

// Generate runs one full triangulate-annotate-reorder attempt against a
// fresh clone of seed, returning a Feasible PlanResult on success or an
// infeasible one (with the Fielder's error) if the triangulation never
// converged.
func Generate(seed *linkgraph.Graph, sc *portal.Scenario, cfg planconfig.Config, r *rng.RNG) (PlanResult, error) {
	graph := seed.Clone()
	graph.SetLimits(cfg.Constants.OutgoingLimit, cfg.Constants.OutgoingLimitSBUL)

	fd := fielder.New(graph, sc.Gnomonic)
	if err := fd.Run(sc.Perimeter, r); err != nil {
		return PlanResult{}, err
	}

	for _, fld := range fd.FirstGenFields {
		if err := fld.AssignFieldsToLinks(graph); err != nil {
			return PlanResult{}, err
		}
	}

	// Group links by common origin to shorten single-agent walking time.
	reorder.OriginGroupingPass(graph)
	if err := resetAnnotations(graph, fd.FirstGenFields); err != nil {
		return PlanResult{}, err
	}

	// Relocate blocks of links to shorten the walk further, validating
	// each candidate's resulting dependency order before committing and
	// falling through to the next candidate in search order if it would
	// break a dependency, rather than trusting the first one blindly.
	for attempt := 0; attempt < cfg.Constants.NReorderAttempts; attempt++ {
		originalOrder := append([]*linkgraph.Edge(nil), graph.Edges()...)
		moves := reorder.FindImprovingMoves(graph, sc.Distances)

		committed := false
		for _, m := range moves {
			reorder.ApplyMove(graph, m)
			if err := resetAnnotations(graph, fd.FirstGenFields); err != nil {
				return PlanResult{}, err
			}
			if invariants.DependencyPrecedesOrder(graph) {
				committed = true
				break
			}
			graph.SetOrder(append([]*linkgraph.Edge(nil), originalOrder...))
			if err := resetAnnotations(graph, fd.FirstGenFields); err != nil {
				return PlanResult{}, err
			}
		}
		if !committed {
			break
		}
	}

	return score(graph, sc, cfg, fd.FirstGenFields), nil
}

// score computes every attribute the Optimiser ranks a completed plan by.
func score(graph *linkgraph.Graph, sc *portal.Scenario, cfg planconfig.Config, firstGen []*field.Field) PlanResult {
	numPortals := len(sc.Portals)
	destCounts := make([]int, numPortals)
	for _, e := range graph.Edges() {
		destCounts[e.To]++
	}
	maxKeys := destCounts[0] - sc.Portals[0].Keys
	for i, p := range sc.Portals {
		if d := destCounts[i] - p.Keys; d > maxKeys {
			maxKeys = d
		}
	}

	numLinks := graph.NumEdges()
	numFields := 0
	for _, e := range graph.Edges() {
		numFields += len(e.Fields)
	}
	length := reorder.PathLength(graph, sc.Distances)

	apPortals := cfg.Constants.APPerPortal * numPortals
	apLinks := cfg.Constants.APPerLink * numLinks
	apFields := cfg.Constants.APPerField * numFields

	return PlanResult{
		Feasible:  true,
		Graph:     graph,
		FirstGen:  firstGen,
		MaxKeys:   maxKeys,
		NumLinks:  numLinks,
		NumFields: numFields,
		Length:    length,
		APPortals: apPortals,
		APLinks:   apLinks,
		APFields:  apFields,
		AP:        apPortals + apLinks + apFields,
	}
}
